package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/willibrandon/postmortem/pkg/artifact"
	"github.com/willibrandon/postmortem/pkg/report"
)

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <path|pid>",
		Short: "Show the exception info of a crash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.locate(args[0])
			if err != nil {
				return err
			}
			r, err := report.ParseFile(path)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), r, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

// locate accepts an artifact path or the pid of a crashed process.
func (a *app) locate(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	pid, err := strconv.Atoi(arg)
	if err != nil {
		return "", errors.Errorf("%s is neither an artifact nor a pid", arg)
	}

	entries, err := a.artifacts(a.dirs())
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Name.PID == pid && e.Name.Ext == artifact.InfoExt {
			return e.Path, nil
		}
	}
	return "", errors.Errorf("no exception info for pid %d", pid)
}

func writeReport(w io.Writer, r *report.Report, format string) error {
	switch format {
	case "json":
		return r.WriteJSON(w)
	case "yaml":
		return r.WriteYAML(w)
	case "table":
		writeReportTable(w, r)
		return nil
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

func writeReportTable(w io.Writer, r *report.Report) {
	fmt.Fprintf(w, "Exception: %s (%s) at %s, flags %s\n", r.Code, r.CodeName, r.Address, r.Flags)
	if r.Instruction != "" {
		fmt.Fprintf(w, "Instruction: %s\n", r.Instruction)
	}

	fmt.Fprintln(w, "\nRegisters:")
	tbl := defaultTable(w)
	tbl.SetHeader([]string{"Register", "Value"})
	for _, name := range registerOrder(r.Registers) {
		tbl.Append([]string{name, r.Registers[name]})
	}
	tbl.Render()

	fmt.Fprintf(w, "\n%s:\n", artifact.SectionStack)
	tbl = defaultTable(w)
	tbl.SetHeader([]string{"#", "Location", "PC"})
	for _, f := range r.Stack {
		loc := f.Location
		if !f.Resolved() {
			loc = "?"
		}
		tbl.Append([]string{strconv.Itoa(f.Index), loc, f.PC})
	}
	tbl.Render()

	fmt.Fprintf(w, "\n%s:\n", artifact.SectionMappedModules)
	tbl = defaultTable(w)
	tbl.SetHeader([]string{"Base", "End", "Name"})
	for _, m := range r.MappedModules {
		tbl.Append([]string{m.Base, m.End, m.Name})
	}
	tbl.Render()

	fmt.Fprintf(w, "\n%s:\n", artifact.SectionModules)
	tbl = defaultTable(w)
	tbl.SetHeader([]string{"Base", "Path"})
	for _, m := range r.Modules {
		tbl.Append([]string{m.Base, m.Name})
	}
	tbl.Render()

	if len(r.Interpreter) > 0 {
		fmt.Fprintf(w, "\n%s:\n", artifact.SectionInterpreter)
		tbl = defaultTable(w)
		tbl.SetHeader([]string{"Function", "File", "Line"})
		for _, f := range r.Interpreter {
			tbl.Append([]string{f.Function, f.File, strconv.Itoa(f.Line)})
		}
		tbl.Render()
	}
}

var registerNames = []string{
	"RIP", "RSP", "RBP", "RAX", "RBX", "RCX", "RDX", "RSI", "RDI",
	"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
	"EIP", "ESP", "EBP", "EAX", "EBX", "ECX", "EDX", "ESI", "EDI",
}

// registerOrder lists the registers present in regs, instruction pointer
// first.
func registerOrder(regs map[string]string) []string {
	var names []string
	for _, name := range registerNames {
		if _, ok := regs[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
