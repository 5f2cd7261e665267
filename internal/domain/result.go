package domain

import "time"

// Stage names identify where in the v1→v2 cycle a project failed.
const (
	StageCopyV1    = "copy-v1"
	StageCompileV1 = "compile-v1"
	StageRunV1     = "run-v1"
	StageCopyV2    = "copy-v2"
	StageCompileV2 = "compile-v2"
	StageRunV2     = "run-v2"
	StageExpected  = "expected"
	StageParse     = "parse"
)

// VersionRun captures one compile+run pass over a source variant.
type VersionRun struct {
	Version       string // "v1" or "v2"
	CompileOutput string // Captured javac output
	Output        string // Captured java/agent output
	Duration      time.Duration
}

// ProjectResult is the outcome of running the full v1→v2 cycle for a project.
type ProjectResult struct {
	Project  Project
	Expected int  // Count read from the expected file
	Selected int  // Count the agent actually executed on the v2 run
	Matched  bool // Expected == Selected and no error
	V1       VersionRun
	V2       VersionRun
	Stage    string // Failing stage, empty on success
	Err      error  // Error if the cycle could not complete
	Duration time.Duration
}

// Failed reports whether the cycle errored or the counts disagreed.
func (r ProjectResult) Failed() bool {
	return r.Err != nil || !r.Matched
}

// ResultsMeta contains metadata about one harness run.
type ResultsMeta struct {
	TotalProjects      int     `json:"total_projects"`
	MatchedProjects    int     `json:"matched_projects"`
	MismatchedProjects int     `json:"mismatched_projects"`
	ErroredProjects    int     `json:"errored_projects"`
	Duration           string  `json:"duration"`
	DurationSeconds    float64 `json:"duration_seconds"`
	Workers            int     `json:"workers"`
	Timestamp          string  `json:"timestamp"`
}

// ResultsOutput is the complete JSON shape persisted after a run.
type ResultsOutput struct {
	Meta    ResultsMeta `json:"meta"`
	Details []Mismatch  `json:"details"`
}
