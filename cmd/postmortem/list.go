package main

import (
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/postmortem/pkg/artifact"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crash artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd.OutOrStdout())
		},
	}
}

func (a *app) runList(w io.Writer) error {
	entries, err := a.artifacts(a.dirs())
	if err != nil {
		return err
	}

	tbl := defaultTable(w)
	tbl.SetHeader([]string{"PID", "Kind", "Packed", "Size", "Modified", "Path"})
	for _, e := range entries {
		kind := "info"
		if e.Name.Ext == artifact.DumpExt {
			kind = "dump"
		}
		tbl.Append([]string{
			strconv.Itoa(e.Name.PID),
			kind,
			strconv.FormatBool(e.Name.Packed),
			strconv.FormatInt(e.Size, 10),
			e.ModTime.Format(time.RFC3339),
			e.Path,
		})
	}
	tbl.Render()
	return nil
}
