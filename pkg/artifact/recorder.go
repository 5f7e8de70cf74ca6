// Package artifact owns the files a crash capture produces.
package artifact

import "io"

// Section titles, in the order they appear in an exception-info artifact.
const (
	SectionMappedModules = "Memory modules"
	SectionModules       = "Normal modules"
	SectionStack         = "Stack trace"
	SectionInterpreter   = "Current interpreter stack (if any)"
)

// Sections lists the section titles in artifact order.
var Sections = []string{SectionMappedModules, SectionModules, SectionStack, SectionInterpreter}

// Recorder receives the text of one artifact. Writes are best effort.
type Recorder interface {
	io.Writer
	// Section starts a new section with the given title.
	Section(title string)
	Close() error
}
