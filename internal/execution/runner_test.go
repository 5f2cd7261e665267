package execution

import (
	"os"
	"path/filepath"
	"testing"

	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/domain"
	"rts/internal/parser"
)

// writeScript drops an executable stub standing in for javac or java.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// makeRunnerProject builds a one-test project with the given expected count.
func makeRunnerProject(t *testing.T, expected string) domain.Project {
	t.Helper()
	dir := t.TempDir()
	v1 := filepath.Join(dir, "v1")
	if err := os.MkdirAll(v1, 0755); err != nil {
		t.Fatalf("mkdir v1: %v", err)
	}
	source := `import org.junit.Test;
public class CalculatorTest {
	@Test
	public void testAdd() {}
}
`
	if err := os.WriteFile(filepath.Join(v1, "CalculatorTest.java"), []byte(source), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "expected"), []byte(expected), 0644); err != nil {
		t.Fatalf("write expected: %v", err)
	}
	return domain.NewProject(dir)
}

func newTestRunner(t *testing.T, javacBody, javaBody string) *Runner {
	t.Helper()
	binDir := t.TempDir()
	cfg := config.New()
	cfg.JavacBin = writeScript(t, binDir, "javac", javacBody)
	cfg.JavaBin = writeScript(t, binDir, "java", javaBody)

	return NewRunner(cfg, NewCompiler(cfg), discovery.NewParser(), parser.NewJUnitParser())
}

func TestRunner_Run_Match(t *testing.T) {
	runner := newTestRunner(t,
		"exit 0",
		`echo "JUnit version 4.12"
echo "."
echo "OK (1 test)"
`)
	project := makeRunnerProject(t, "1\n")

	result := runner.Run(project, 91)
	if result.Err != nil {
		t.Fatalf("unexpected error at stage %s: %v", result.Stage, result.Err)
	}
	if result.Expected != 1 || result.Selected != 1 {
		t.Errorf("expected 1/1, got %d/%d", result.Expected, result.Selected)
	}
	if !result.Matched {
		t.Error("expected a match")
	}
	if result.V1.Output == "" || result.V2.Output == "" {
		t.Error("both version runs should capture output")
	}
	if result.Duration <= 0 {
		t.Error("expected a positive duration")
	}
}

func TestRunner_Run_Mismatch(t *testing.T) {
	runner := newTestRunner(t,
		"exit 0",
		`echo "OK (1 test)"`)
	project := makeRunnerProject(t, "2\n")

	result := runner.Run(project, 92)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Matched {
		t.Error("counts disagree, should not match")
	}
	if !result.Failed() {
		t.Error("mismatch should count as failed")
	}
}

func TestRunner_Run_TestFailuresStillParse(t *testing.T) {
	// JUnitCore exits nonzero when tests fail; the summary still carries
	// the executed count.
	runner := newTestRunner(t,
		"exit 0",
		`echo "FAILURES!!!"
echo "Tests run: 2,  Failures: 1"
exit 1
`)
	project := makeRunnerProject(t, "2\n")

	result := runner.Run(project, 93)
	if result.Err != nil {
		t.Fatalf("unexpected error at stage %s: %v", result.Stage, result.Err)
	}
	if result.Selected != 2 {
		t.Errorf("expected 2 selected, got %d", result.Selected)
	}
	if !result.Matched {
		t.Error("expected a match despite failing tests")
	}
}

func TestRunner_Run_CompileFailure(t *testing.T) {
	runner := newTestRunner(t,
		`echo "CalculatorTest.java:3: error: cannot find symbol" >&2
exit 1
`,
		`echo "OK (1 test)"`)
	project := makeRunnerProject(t, "1\n")

	result := runner.Run(project, 94)
	if result.Err == nil {
		t.Fatal("expected an error")
	}
	if result.Stage != domain.StageCompileV1 {
		t.Errorf("expected stage %s, got %s", domain.StageCompileV1, result.Stage)
	}
	if result.V1.CompileOutput == "" {
		t.Error("compile output should be captured on failure")
	}
}

func TestRunner_Run_BadExpectedFile(t *testing.T) {
	runner := newTestRunner(t, "exit 0", `echo "OK (1 test)"`)
	project := makeRunnerProject(t, "not-a-number\n")

	result := runner.Run(project, 95)
	if result.Err == nil {
		t.Fatal("expected an error")
	}
	if result.Stage != domain.StageExpected {
		t.Errorf("expected stage %s, got %s", domain.StageExpected, result.Stage)
	}
}

func TestRunner_Run_NoSummary(t *testing.T) {
	runner := newTestRunner(t, "exit 0", `echo "JVM crashed"`)
	project := makeRunnerProject(t, "1\n")

	result := runner.Run(project, 96)
	if result.Err == nil {
		t.Fatal("expected an error")
	}
	if result.Stage != domain.StageParse {
		t.Errorf("expected stage %s, got %s", domain.StageParse, result.Stage)
	}
}
