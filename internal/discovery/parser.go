package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"rts/internal/domain"
)

// Parser inspects Java sources to find JUnit test classes
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	// @Test / @org.junit.Test starting a line, with or without arguments and
	// with or without the method on the same line. Not @TestFactory etc.
	testAnnotationPattern = regexp.MustCompile(`(?m)^\s*@(?:org\.junit\.)?Test\b`)
	// JUnit 3 style classes
	testCasePattern = regexp.MustCompile(`class\s+\w+\s+extends\s+(?:junit\.framework\.)?TestCase\b`)
	// Runner-annotated classes (parameterized tests, theories, suites)
	runWithPattern = regexp.MustCompile(`(?m)^\s*@RunWith\s*\(`)
	// Declared name of the primary class
	classNamePattern = regexp.MustCompile(`(?:public\s+)?(?:final\s+|abstract\s+)*class\s+(\w+)`)
	abstractPattern  = regexp.MustCompile(`\babstract\b(?:\s+\w+)*\s+class\s+\w+`)
)

// ListSources returns all .java files under the given version directory.
func (p *Parser) ListSources(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sources in %s: %w", dir, err)
	}
	sort.Strings(sources)
	return sources, nil
}

// FindTestClasses finds the JUnit test classes among the sources of a version
// directory. A class qualifies when it declares @Test methods, extends the
// JUnit 3 TestCase, or carries a @RunWith runner (suites, parameterized
// tests, theories). Abstract classes are skipped; they only run through
// their concrete subclasses.
func (p *Parser) FindTestClasses(dir string) ([]domain.TestClass, error) {
	sources, err := p.ListSources(dir)
	if err != nil {
		return nil, err
	}

	var classes []domain.TestClass
	for _, src := range sources {
		content, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", src, err)
		}
		text := string(content)

		if !testAnnotationPattern.MatchString(text) &&
			!testCasePattern.MatchString(text) &&
			!runWithPattern.MatchString(text) {
			continue
		}
		if isAbstract(text) {
			continue
		}

		classes = append(classes, domain.TestClass{
			Name:     className(src, text),
			FilePath: src,
		})
	}
	return classes, nil
}

// className resolves the class name to hand to the JUnit runner. The declared
// name wins; the file name (sans extension) is the fallback. Mini-projects
// use the default package, so no package prefix is applied.
func className(path, text string) string {
	if m := classNamePattern.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return strings.TrimSuffix(filepath.Base(path), ".java")
}

func isAbstract(text string) bool {
	return abstractPattern.MatchString(text)
}
