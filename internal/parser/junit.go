package parser

import (
	"fmt"
	"regexp"
	"strings"

	"rts/internal/domain"
)

// JUnitParser parses the textual summary JUnitCore prints at the end of a
// run. Two shapes exist: "OK (N tests)" when everything passed, and
// "Tests run: N,  Failures: F" after a FAILURES!!! banner.
type JUnitParser struct{}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser() *JUnitParser {
	return &JUnitParser{}
}

var (
	// OK (1 test) / OK (12 tests)
	okPattern = regexp.MustCompile(`OK\s*\(\s*(\d+)\s+tests?\s*\)`)
	// Tests run: 2,  Failures: 1
	testsRunPattern = regexp.MustCompile(`Tests run:\s*(\d+)\s*,\s*Failures:\s*(\d+)`)
	// 1) testName(ClassName)
	failureHeaderPattern = regexp.MustCompile(`^\d+\)\s+(\w+)\(([\w.$]+)\)`)
)

// ParseTestCount extracts the number of executed tests from the runner
// output. Both the OK and the FAILURES summary carry a count. Output with
// neither (crashed JVM, agent misconfiguration) is an error, not a zero,
// since "ran nothing" and "summary missing" are different outcomes.
func (p *JUnitParser) ParseTestCount(output string) (int, error) {
	if m := okPattern.FindStringSubmatch(output); len(m) >= 2 {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		return n, nil
	}
	if m := testsRunPattern.FindStringSubmatch(output); len(m) >= 3 {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		return n, nil
	}
	return 0, fmt.Errorf("no test summary found in runner output")
}

// FailureCount extracts the number of failed tests, zero for an OK run.
func (p *JUnitParser) FailureCount(output string) int {
	if m := testsRunPattern.FindStringSubmatch(output); len(m) >= 3 {
		var f int
		fmt.Sscanf(m[2], "%d", &f)
		return f
	}
	return 0
}

// ParseFailures parses the numbered failure blocks JUnitCore prints between
// the dotted progress line and the summary. Each block is a
// "N) testName(ClassName)" header followed by the exception message and its
// stack trace.
func (p *JUnitParser) ParseFailures(output string) []domain.CaseFailure {
	var failures []domain.CaseFailure
	lines := strings.Split(output, "\n")

	for i := 0; i < len(lines); i++ {
		m := failureHeaderPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}

		failure := domain.CaseFailure{
			TestName:   m[1],
			ClassName:  m[2],
			StackTrace: []string{},
		}

		var messageLines []string
		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			trimmed := strings.TrimSpace(line)

			// Next failure block or the final summary ends this one
			if failureHeaderPattern.MatchString(trimmed) ||
				strings.HasPrefix(trimmed, "FAILURES!!!") ||
				testsRunPattern.MatchString(trimmed) {
				break
			}

			if strings.HasPrefix(trimmed, "at ") {
				failure.StackTrace = append(failure.StackTrace, trimmed)
				continue
			}
			if strings.HasPrefix(trimmed, "...") {
				// JUnit's elided-frames marker, part of the trace
				failure.StackTrace = append(failure.StackTrace, trimmed)
				continue
			}
			if len(messageLines) == 0 && trimmed == "" {
				continue
			}
			if len(failure.StackTrace) == 0 {
				messageLines = append(messageLines, line)
			}
		}
		i = j - 1

		for len(messageLines) > 0 && strings.TrimSpace(messageLines[len(messageLines)-1]) == "" {
			messageLines = messageLines[:len(messageLines)-1]
		}
		failure.Message = strings.Join(messageLines, "\n")
		failures = append(failures, failure)
	}

	return failures
}
