package domain

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadExpected reads the expected selected-test count from a project's
// expected file. The file holds a single integer; surrounding whitespace and
// a trailing newline are allowed.
func ReadExpected(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read expected file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, fmt.Errorf("expected file is empty: %s", path)
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("expected file does not contain a single integer: %q", text)
	}
	if n < 0 {
		return 0, fmt.Errorf("expected count must not be negative: %d", n)
	}
	return n, nil
}
