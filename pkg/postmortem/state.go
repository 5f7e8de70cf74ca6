package postmortem

// State is a stage of the capture pipeline.
type State int

const (
	Start State = iota
	ClassifyAndLog
	ResolveOutputDir
	Abort
	CaptureProceed
	Finished
)

var stateNames = [...]string{
	Start:            "Start",
	ClassifyAndLog:   "ClassifyAndLog",
	ResolveOutputDir: "ResolveOutputDir",
	Abort:            "Abort",
	CaptureProceed:   "CaptureProceed",
	Finished:         "Finished",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
