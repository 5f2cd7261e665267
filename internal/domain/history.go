package domain

// RunRecord is one row of the persisted run history.
type RunRecord struct {
	ID                 int64
	TotalProjects      int
	MatchedProjects    int
	MismatchedProjects int
	ErroredProjects    int
	DurationSeconds    float64
	Workers            int
	Timestamp          string
}
