package config

import (
	"runtime"
)

// Validator applies smart defaults to a loaded ToolSettings. FlagConfig's own
// validation (at least one flag, no empty names, disjoint aliases) happens
// inline in shapeAndValidate, since those rules can fail the load outright;
// ToolSettings defaults are never fatal, only filled in.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ApplyDefaults fills in auto-detected values ToolSettings leaves at its
// zero value, using a cores-minus-one default for worker concurrency.
func (v *Validator) ApplyDefaults(settings *ToolSettings) {
	if settings.Workers == 0 {
		numCPU := runtime.NumCPU()
		settings.Workers = max(1, numCPU-1)
	}
	if settings.WatchDebounceMs == 0 {
		settings.WatchDebounceMs = 300
	}
	if settings.MCPBindAddress == "" {
		settings.MCPBindAddress = "127.0.0.1:8947"
	}
}
