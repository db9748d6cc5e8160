package trace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of split tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every fork and emission.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SplitTrace collects decision records during a split run.
type SplitTrace struct {
	Level     TraceLevel   `yaml:"level"`
	Forks     []ForkRecord `yaml:"forks"`
	Emissions []EmitRecord `yaml:"emissions"`
}

// NewSplitTrace creates a SplitTrace ready for recording.
func NewSplitTrace(level TraceLevel) *SplitTrace {
	return &SplitTrace{
		Level:     level,
		Forks:     make([]ForkRecord, 0),
		Emissions: make([]EmitRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil trace.
func (st *SplitTrace) Enabled() bool {
	return st != nil && st.Level == TraceLevelDecisions
}

// RecordFork appends a fork record.
func (st *SplitTrace) RecordFork(record ForkRecord) {
	if !st.Enabled() {
		return
	}
	st.Forks = append(st.Forks, record)
}

// RecordEmit appends an emission record.
func (st *SplitTrace) RecordEmit(record EmitRecord) {
	if !st.Enabled() {
		return
	}
	st.Emissions = append(st.Emissions, record)
}

// Export writes the trace and its summary as YAML to path.
func (st *SplitTrace) Export(path string) error {
	doc := struct {
		Summary *TraceSummary `yaml:"summary"`
		Trace   *SplitTrace   `yaml:"trace"`
	}{Summarize(st), st}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling split trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing split trace: %w", err)
	}
	return nil
}
