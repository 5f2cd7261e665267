package cli

import "rts/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers       int
	ProjectsPath  string
	NameFilter    string
	TestClasses   bool
	FailFast      bool
	OnlyFailed    bool
	RerunFailures bool
	KeepScratch   bool
	Record        bool
	OpenReport    bool
	Limit         int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:       f.Workers,
		ProjectsPath:  f.ProjectsPath,
		NameFilter:    f.NameFilter,
		TestClasses:   f.TestClasses,
		FailFast:      f.FailFast,
		OnlyFailed:    f.OnlyFailed,
		RerunFailures: f.RerunFailures,
		KeepScratch:   f.KeepScratch,
		Record:        f.Record,
		OpenReport:    f.OpenReport,
		Limit:         f.Limit,
	}
}
