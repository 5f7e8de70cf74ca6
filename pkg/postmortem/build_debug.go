//go:build debug

package postmortem

// FullDump reports whether captures also write a full memory dump. Only
// builds tagged debug do.
const FullDump = true
