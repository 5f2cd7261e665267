package parser

import (
	"testing"
)

const okOutput = `JUnit version 4.12
.
Time: 0.006

OK (1 test)

`

const okPluralOutput = `JUnit version 4.12
.....
Time: 0.011

OK (5 tests)
`

const failureOutput = `JUnit version 4.12
..E.
Time: 0.014
There was 1 failure:
1) testAdd(CalculatorTest)
java.lang.AssertionError: expected:<3> but was:<4>
	at org.junit.Assert.fail(Assert.java:88)
	at org.junit.Assert.failNotEquals(Assert.java:834)
	at CalculatorTest.testAdd(CalculatorTest.java:9)
	... 20 more

FAILURES!!!
Tests run: 3,  Failures: 1

`

const multiFailureOutput = `JUnit version 4.12
.E.E
Time: 0.021
There were 2 failures:
1) testPush(StackTest)
java.lang.AssertionError: stack should not be empty
	at StackTest.testPush(StackTest.java:12)
2) testPop(StackTest)
java.lang.IllegalStateException: pop from empty stack
	at SimpleStack.pop(SimpleStack.java:18)
	at StackTest.testPop(StackTest.java:19)

FAILURES!!!
Tests run: 4,  Failures: 2
`

func TestJUnitParser_ParseTestCount(t *testing.T) {
	parser := NewJUnitParser()

	tests := []struct {
		name     string
		output   string
		expected int
		wantErr  bool
	}{
		{
			name:     "single passing test",
			output:   okOutput,
			expected: 1,
		},
		{
			name:     "plural passing tests",
			output:   okPluralOutput,
			expected: 5,
		},
		{
			name:     "zero tests selected",
			output:   "JUnit version 4.12\n\nTime: 0.001\n\nOK (0 tests)\n",
			expected: 0,
		},
		{
			name:     "failure summary",
			output:   failureOutput,
			expected: 3,
		},
		{
			name:     "multiple failures",
			output:   multiFailureOutput,
			expected: 4,
		},
		{
			name:    "no summary at all",
			output:  "Error: Could not find or load main class org.junit.runner.JUnitCore\n",
			wantErr: true,
		},
		{
			name:    "empty output",
			output:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := parser.ParseTestCount(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if count != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, count)
			}
		})
	}
}

func TestJUnitParser_FailureCount(t *testing.T) {
	parser := NewJUnitParser()

	tests := []struct {
		name     string
		output   string
		expected int
	}{
		{name: "ok run has zero failures", output: okPluralOutput, expected: 0},
		{name: "one failure", output: failureOutput, expected: 1},
		{name: "two failures", output: multiFailureOutput, expected: 2},
		{name: "unparseable output", output: "garbage", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.FailureCount(tt.output); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestJUnitParser_ParseFailures(t *testing.T) {
	parser := NewJUnitParser()

	t.Run("ok output has no failures", func(t *testing.T) {
		if failures := parser.ParseFailures(okOutput); len(failures) != 0 {
			t.Errorf("expected no failures, got %d", len(failures))
		}
	})

	t.Run("single failure block", func(t *testing.T) {
		failures := parser.ParseFailures(failureOutput)
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}

		f := failures[0]
		if f.TestName != "testAdd" {
			t.Errorf("expected testAdd, got %s", f.TestName)
		}
		if f.ClassName != "CalculatorTest" {
			t.Errorf("expected CalculatorTest, got %s", f.ClassName)
		}
		if f.Message != "java.lang.AssertionError: expected:<3> but was:<4>" {
			t.Errorf("unexpected message: %q", f.Message)
		}
		if len(f.StackTrace) != 4 {
			t.Errorf("expected 4 stack trace lines, got %d", len(f.StackTrace))
		}
	})

	t.Run("multiple failure blocks", func(t *testing.T) {
		failures := parser.ParseFailures(multiFailureOutput)
		if len(failures) != 2 {
			t.Fatalf("expected 2 failures, got %d", len(failures))
		}

		if failures[0].TestName != "testPush" || failures[1].TestName != "testPop" {
			t.Errorf("unexpected failure order: %s, %s", failures[0].TestName, failures[1].TestName)
		}
		if len(failures[1].StackTrace) != 2 {
			t.Errorf("expected 2 stack trace lines for testPop, got %d", len(failures[1].StackTrace))
		}
	})
}
