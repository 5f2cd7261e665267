package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rts/internal/domain"
)

// Scanner scans for experiment projects in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directory names to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all experiment projects under the given root. A directory is a
// project when it has a v1/ subdirectory and an expected file; v2/ is
// optional (a project without it reruns v1 unchanged). Project directories
// are not descended into, so a project can carry arbitrary fixture trees.
func (s *Scanner) Scan(root string) ([]domain.Project, error) {
	var projects []domain.Project

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("projects path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("projects path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if path != root && s.skipDirs[name] {
			return filepath.SkipDir
		}

		if isProjectDir(path) {
			projects = append(projects, domain.NewProject(path))
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// isProjectDir checks for the v1/ + expected layout.
func isProjectDir(path string) bool {
	v1, err := os.Stat(filepath.Join(path, "v1"))
	if err != nil || !v1.IsDir() {
		return false
	}
	exp, err := os.Stat(filepath.Join(path, "expected"))
	if err != nil || exp.IsDir() {
		return false
	}
	return true
}
