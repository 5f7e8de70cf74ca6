package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/postmortem/pkg/postmortem"
	"github.com/willibrandon/postmortem/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
			fmt.Fprintf(cmd.OutOrStdout(), "full dump: %t\n", postmortem.FullDump)
		},
	}
}
