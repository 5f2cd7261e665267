package domain

// Mismatch represents a project whose v2 run did not behave as expected:
// either the selected-test count disagreed with the expected file, or the
// cycle failed outright.
type Mismatch struct {
	ProjectName string `json:"project_name"`
	ProjectPath string `json:"project_path"`
	Expected    int    `json:"expected"`
	Selected    int    `json:"selected"`
	Stage       string `json:"stage,omitempty"` // Failing stage for errored cycles
	Message     string `json:"message"`
	Output      string `json:"output,omitempty"` // Captured v2 agent output
	Resolved    bool   `json:"resolved,omitempty"`

	Failures []CaseFailure `json:"failures,omitempty"`
}

// CaseFailure is one failed test case parsed from the runner's output.
type CaseFailure struct {
	TestName   string   `json:"test_name"`
	ClassName  string   `json:"class_name"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stack_trace"`
}
