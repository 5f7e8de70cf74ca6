package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/willibrandon/postmortem/pkg/artifact"
)

func newPackCmd(a *app) *cobra.Command {
	var (
		compression string
		remove      bool
	)
	cmd := &cobra.Command{
		Use:   "pack [path...]",
		Short: "Compress crash artifacts",
		Long:  "Compress the given artifacts, or every unpacked artifact when no path is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if compression == "" {
				compression = a.cfg.Compression
			}
			ct, err := artifact.ParseCompression(compression)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				if paths, err = a.unpacked(); err != nil {
					return err
				}
			}
			for _, path := range paths {
				if err := a.pack(cmd, path, ct, remove); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&compression, "compression", "c", "", "compression: zstd or none (default from config)")
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the original after packing")
	return cmd
}

func (a *app) unpacked() ([]string, error) {
	entries, err := a.artifacts(a.dirs())
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.Name.Packed {
			paths = append(paths, e.Path)
		}
	}
	return paths, nil
}

func (a *app) pack(cmd *cobra.Command, path string, ct artifact.CompressionType, remove bool) error {
	if name, ok := artifact.ParseName(path); ok && name.Packed {
		return errors.Errorf("%s is already packed", path)
	}
	dst, err := artifact.Pack(path, ct)
	if err != nil {
		return err
	}
	if remove && dst != path {
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "remove %s", path)
		}
	}
	a.log.WithField("artifact", dst).Info("Packed")
	fmt.Fprintln(cmd.OutOrStdout(), dst)
	return nil
}
