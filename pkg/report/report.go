// Package report reads exception-info artifacts back into structured form.
package report

import (
	"bufio"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/postmortem/pkg/artifact"
)

// Report is the parsed content of one .einfo artifact.
type Report struct {
	Path        string            `json:"path,omitempty" yaml:"path,omitempty"`
	PID         int               `json:"pid,omitempty" yaml:"pid,omitempty"`
	Code        string            `json:"code" yaml:"code"`
	CodeName    string            `json:"code_name" yaml:"code_name"`
	Flags       string            `json:"flags" yaml:"flags"`
	Address     string            `json:"address" yaml:"address"`
	Registers   map[string]string `json:"registers" yaml:"registers"`
	Instruction string            `json:"instruction,omitempty" yaml:"instruction,omitempty"`

	MappedModules []Module           `json:"mapped_modules" yaml:"mapped_modules"`
	Modules       []Module           `json:"modules" yaml:"modules"`
	Stack         []Frame            `json:"stack" yaml:"stack"`
	Interpreter   []InterpreterFrame `json:"interpreter_stack,omitempty" yaml:"interpreter_stack,omitempty"`
}

// Module is one line of a module section.
type Module struct {
	Name string `json:"name" yaml:"name"`
	Base string `json:"base" yaml:"base"`
	End  string `json:"end,omitempty" yaml:"end,omitempty"`
}

// Frame is one native stack frame.
type Frame struct {
	Index    int    `json:"index" yaml:"index"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	PC       string `json:"pc" yaml:"pc"`
}

// Resolved reports whether the frame was named by symbol or module.
func (f Frame) Resolved() bool {
	return f.Location != ""
}

// InterpreterFrame is one embedded-interpreter frame.
type InterpreterFrame struct {
	Function string `json:"function" yaml:"function"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
}

// ParseFile parses the artifact at path, unpacking it first when packed.
func ParseFile(path string) (*Report, error) {
	rc, err := artifact.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := Parse(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	r.Path = path
	if name, ok := artifact.ParseName(filepath.Base(path)); ok {
		r.PID = name.PID
	}
	return r, nil
}

type parser struct {
	r       *Report
	section string
	inRegs  bool
}

// Parse reads an artifact. A truncated artifact yields the sections written
// before the truncation; an unterminated last line that does not parse is
// dropped.
func Parse(rd io.Reader) (*Report, error) {
	p := &parser{r: &Report{Registers: map[string]string{}}}

	br := bufio.NewReader(rd)
	for n := 1; ; n++ {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "read artifact")
		}
		complete := strings.HasSuffix(s, "\n")
		s = strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
		if complete || s != "" {
			if perr := p.line(s); perr != nil && complete {
				return nil, errors.Wrapf(perr, "line %d", n)
			}
		}
		if err == io.EOF {
			break
		}
	}
	if p.r.Code == "" {
		return nil, errors.New("no exception header")
	}
	return p.r, nil
}

func (p *parser) line(s string) error {
	if s == "" {
		p.inRegs = false
		return nil
	}
	if title, ok := strings.CutSuffix(s, ":"); ok && isSection(title) {
		p.section = title
		p.inRegs = false
		return nil
	}

	switch p.section {
	case "":
		return p.header(s)
	case artifact.SectionMappedModules:
		return p.mapped(s)
	case artifact.SectionModules:
		return p.module(s)
	case artifact.SectionStack:
		return p.frame(s)
	case artifact.SectionInterpreter:
		return p.interpreter(s)
	}
	return nil
}

func isSection(title string) bool {
	for _, s := range artifact.Sections {
		if s == title {
			return true
		}
	}
	return false
}

func (p *parser) header(s string) error {
	switch {
	case strings.HasPrefix(s, "Catch fatal exception: Code: "):
		rest := strings.TrimPrefix(s, "Catch fatal exception: Code: ")
		code, name, ok := strings.Cut(rest, " ")
		if !ok {
			return errors.Errorf("malformed exception line %q", s)
		}
		p.r.Code = code
		p.r.CodeName = strings.TrimSuffix(strings.TrimPrefix(name, "("), ")")
	case strings.HasPrefix(s, "Flags: "):
		fields := strings.Fields(s)
		if len(fields) != 4 || fields[2] != "Address:" {
			return errors.Errorf("malformed flags line %q", s)
		}
		p.r.Flags, p.r.Address = fields[1], fields[3]
	case s == "Registers:":
		p.inRegs = true
	case strings.HasPrefix(s, "Instruction: "):
		p.inRegs = false
		p.r.Instruction = strings.TrimPrefix(s, "Instruction: ")
	case p.inRegs:
		fields := strings.Fields(s)
		if len(fields)%2 != 0 {
			return errors.Errorf("malformed register line %q", s)
		}
		for i := 0; i < len(fields); i += 2 {
			p.r.Registers[strings.TrimSuffix(fields[i], ":")] = fields[i+1]
		}
	default:
		return errors.Errorf("unexpected header line %q", s)
	}
	return nil
}

// <base> - <end>\t<name>
func (p *parser) mapped(s string) error {
	rng, name, ok := strings.Cut(s, "\t")
	if !ok {
		return errors.Errorf("malformed mapped module %q", s)
	}
	base, end, ok := strings.Cut(rng, " - ")
	if !ok {
		return errors.Errorf("malformed mapped module %q", s)
	}
	p.r.MappedModules = append(p.r.MappedModules, Module{Name: name, Base: base, End: end})
	return nil
}

// + <base>\t<path>
func (p *parser) module(s string) error {
	base, name, ok := strings.Cut(strings.TrimPrefix(s, "+ "), "\t")
	if !ok {
		return errors.Errorf("malformed module %q", s)
	}
	p.r.Modules = append(p.r.Modules, Module{Name: name, Base: base})
	return nil
}

// + <n>:\t<location>\t(PC <pc>), with "?" and empty fields for unresolved frames
func (p *parser) frame(s string) error {
	fields := strings.Split(strings.TrimPrefix(s, "+ "), "\t")
	if len(fields) < 3 {
		return errors.Errorf("malformed frame %q", s)
	}
	index, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":"))
	if err != nil {
		return errors.Wrapf(err, "frame index %q", fields[0])
	}
	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, "(PC ") || !strings.HasSuffix(last, ")") {
		return errors.Errorf("malformed frame %q", s)
	}

	f := Frame{Index: index, PC: strings.TrimSuffix(strings.TrimPrefix(last, "(PC "), ")")}
	if loc := fields[1]; loc != "?" {
		f.Location = loc
	}
	p.r.Stack = append(p.r.Stack, f)
	return nil
}

// + <function>\t<file>:<line>
func (p *parser) interpreter(s string) error {
	fn, loc, ok := strings.Cut(strings.TrimPrefix(s, "+ "), "\t")
	if !ok {
		return errors.Errorf("malformed interpreter frame %q", s)
	}
	i := strings.LastIndex(loc, ":")
	if i < 0 {
		return errors.Errorf("malformed interpreter frame %q", s)
	}
	line, err := strconv.Atoi(loc[i+1:])
	if err != nil {
		return errors.Wrapf(err, "interpreter line %q", loc[i+1:])
	}
	p.r.Interpreter = append(p.r.Interpreter, InterpreterFrame{Function: fn, File: loc[:i], Line: line})
	return nil
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "encode json")
}

// WriteYAML writes r as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(enc.Close(), "encode yaml")
}
