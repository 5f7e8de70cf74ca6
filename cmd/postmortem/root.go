package main

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willibrandon/postmortem/pkg/artifact"
	"github.com/willibrandon/postmortem/pkg/config"
	"github.com/willibrandon/postmortem/pkg/logging"
	"github.com/willibrandon/postmortem/pkg/postmortem"
)

// app carries the settings every subcommand shares.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *log.Entry

	// resolver finds the handler's output directories
	resolver postmortem.DirResolver
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "postmortem",
		Short: "Inspect crash artifacts written by the postmortem handler",

		// Silence unnecessary messages.
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("dir", "", "artifact directory (default is the per-user local data directory)")
	flags.String("log-level", "", "log level (default is info)")
	for _, name := range []string{"config", "dir", "log-level"} {
		a.v.BindPFlag(name, flags.Lookup(name))
	}
	a.v.SetEnvPrefix("POSTMORTEM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newPackCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Default()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if dir := a.v.GetString("dir"); dir != "" {
		cfg.Dir = dir
	}
	if level := a.v.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.NewEntry(logger)
	if a.resolver == nil {
		a.resolver = postmortem.SystemPlatform().Dirs()
	}
	return nil
}

// dirs returns the directories the handler may have written to, in the order
// it tries them. Nothing is created.
func (a *app) dirs() []string {
	if a.cfg.Dir != "" {
		return []string{a.cfg.Dir}
	}

	var dirs []string
	if dir, err := a.resolver.Locate(a.cfg.SubDir); err == nil {
		dirs = append(dirs, dir)
	} else {
		a.log.WithError(err).Debug("No local data directory")
	}
	if dir, err := a.resolver.Fallback(); err == nil && !slices.Contains(dirs, dir) {
		dirs = append(dirs, dir)
	}
	return dirs
}

type entry struct {
	Path    string
	Name    artifact.Name
	Size    int64
	ModTime time.Time
}

// artifacts lists the artifacts in dirs, newest first.
func (a *app) artifacts(dirs []string) ([]entry, error) {
	var out []entry
	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "read %s", dir)
		}
		for _, f := range files {
			name, ok := artifact.ParseName(f.Name())
			if !ok || f.IsDir() {
				continue
			}
			info, err := f.Info()
			if err != nil {
				a.log.WithError(err).WithField("file", f.Name()).Debug("Skipping artifact")
				continue
			}
			out = append(out, entry{
				Path:    filepath.Join(dir, f.Name()),
				Name:    name,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}
	slices.SortStableFunc(out, func(x, y entry) int {
		return y.ModTime.Compare(x.ModTime)
	})
	return out, nil
}

func defaultTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetCenterSeparator(" ")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetColWidth(120)
	return table
}
