package domain

import "path/filepath"

// Project represents one experiment project on disk: paired v1/v2 source
// variants plus an expected selected-test count.
type Project struct {
	Name         string // Directory name, used in reports
	Path         string // Full path to the project directory
	V1Path       string // Path to the "before" sources
	V2Path       string // Path to the "after" sources
	ExpectedPath string // Path to the expected file
}

// NewProject builds a Project from its directory path.
func NewProject(path string) Project {
	return Project{
		Name:         filepath.Base(path),
		Path:         path,
		V1Path:       filepath.Join(path, "v1"),
		V2Path:       filepath.Join(path, "v2"),
		ExpectedPath: filepath.Join(path, "expected"),
	}
}

// TestClass represents a JUnit test class found in a project's sources.
type TestClass struct {
	Name     string // Fully usable class name (e.g. "CalculatorTest")
	FilePath string // Path to the .java file declaring it
}
