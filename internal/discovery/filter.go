package discovery

import (
	"path/filepath"
	"strings"

	"rts/internal/domain"
)

// Filter filters projects by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters projects by name pattern using wildcard matching.
// Supports patterns like "unitAnnotation*" or "*Enum*".
func (f *Filter) FilterByName(projects []domain.Project, pattern string) []domain.Project {
	if pattern == "" {
		return projects
	}

	var filtered []domain.Project

	for _, project := range projects {
		name := project.Name

		// filepath.Match covers * and ? wildcards
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			filtered = append(filtered, project)
			continue
		}

		// Flexible substring match for patterns like "*Enum*" where the
		// wildcard positions don't line up with filepath.Match semantics
		if strings.Contains(pattern, "*") {
			if matchesAllParts(name, pattern) {
				filtered = append(filtered, project)
			}
			continue
		}

		// No wildcards: plain contains check
		if !strings.Contains(pattern, "?") && strings.Contains(name, pattern) {
			filtered = append(filtered, project)
		}
	}

	return filtered
}

// matchesAllParts reports whether every non-wildcard segment of the pattern
// occurs in the name, with at least one non-empty segment present.
func matchesAllParts(name, pattern string) bool {
	parts := strings.Split(pattern, "*")
	hasNonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasNonEmpty = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmpty
}
