package parser

import "rts/internal/domain"

// Parser extracts test counts and failures from captured runner output
type Parser interface {
	ParseTestCount(output string) (int, error)
	ParseFailures(output string) []domain.CaseFailure
}
