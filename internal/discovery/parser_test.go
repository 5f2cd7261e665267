package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestParser_FindTestClasses(t *testing.T) {
	tmpDir := t.TempDir()
	parser := NewParser()

	writeSource(t, tmpDir, "CalculatorTest.java", `
import org.junit.Test;
import static org.junit.Assert.assertEquals;

public class CalculatorTest {
	@Test
	public void testAdd() {
		assertEquals(3, new Calculator().add(1, 2));
	}
}
`)

	writeSource(t, tmpDir, "Calculator.java", `
public class Calculator {
	public int add(int a, int b) { return a + b; }
}
`)

	writeSource(t, tmpDir, "LegacyStackTest.java", `
import junit.framework.TestCase;

public class LegacyStackTest extends TestCase {
	public void testPush() {}
}
`)

	writeSource(t, tmpDir, "AllTests.java", `
import org.junit.runner.RunWith;
import org.junit.runners.Suite;

@RunWith(Suite.class)
@Suite.SuiteClasses({CalculatorTest.class, LegacyStackTest.class})
public class AllTests {
}
`)

	writeSource(t, tmpDir, "AbstractBaseTest.java", `
import org.junit.Test;

public abstract class AbstractBaseTest {
	@Test
	public void testShared() {}
}
`)

	classes, err := parser.FindTestClasses(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := make(map[string]bool)
	for _, class := range classes {
		found[class.Name] = true
	}

	for _, want := range []string{"CalculatorTest", "LegacyStackTest", "AllTests"} {
		if !found[want] {
			t.Errorf("expected test class %s, got %v", want, found)
		}
	}
	if found["Calculator"] {
		t.Error("class under test should not be detected as a test class")
	}
	if found["AbstractBaseTest"] {
		t.Error("abstract classes should be skipped")
	}
}

func TestParser_FindTestClasses_AnnotationForms(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name   string
		source string
		isTest bool
	}{
		{
			name: "fully qualified annotation",
			source: `public class QualifiedTest {
	@org.junit.Test
	public void testSomething() {}
}`,
			isTest: true,
		},
		{
			name: "annotation with parameters",
			source: `import org.junit.Test;
public class TimeoutTest {
	@Test(timeout = 1000)
	public void testFast() {}
}`,
			isTest: true,
		},
		{
			name: "parameterized runner without plain tests",
			source: `import org.junit.runner.RunWith;
import org.junit.runners.Parameterized;
@RunWith(Parameterized.class)
public class PrimeTest {
}`,
			isTest: true,
		},
		{
			name: "annotation and method on the same line",
			source: `import org.junit.Test;
public class CompactTest {
	@Test public void testIt() {}
}`,
			isTest: true,
		},
		{
			name: "annotation with parameters and method on the same line",
			source: `import org.junit.Test;
public class CompactTimeoutTest {
	@Test(expected = IllegalStateException.class) public void testBoom() {}
}`,
			isTest: true,
		},
		{
			name: "TestFactory-like identifier is not a Test annotation",
			source: `public class Helper {
	@Testable
	public void helper() {}
}`,
			isTest: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSource(t, dir, "Some.java", tt.source)

			classes, err := parser.FindTestClasses(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.isTest && len(classes) != 1 {
				t.Errorf("expected 1 test class, got %d", len(classes))
			}
			if !tt.isTest && len(classes) != 0 {
				t.Errorf("expected no test classes, got %d", len(classes))
			}
		})
	}
}

func TestParser_FindTestClasses_AbstractModifierOrders(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name    string
		source  string
		skipped bool
	}{
		{
			name: "abstract before class",
			source: `import org.junit.Test;
abstract class BareBaseTest {
	@Test
	public void testShared() {}
}`,
			skipped: true,
		},
		{
			name: "public abstract class",
			source: `import org.junit.Test;
public abstract class SharedBaseTest {
	@Test
	public void testShared() {}
}`,
			skipped: true,
		},
		{
			name: "abstract public class",
			source: `import org.junit.Test;
abstract public class ReorderedBaseTest {
	@Test
	public void testShared() {}
}`,
			skipped: true,
		},
		{
			name: "concrete class stays detected",
			source: `import org.junit.Test;
public class ConcreteTest {
	@Test
	public void testIt() {}
}`,
			skipped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSource(t, dir, "Some.java", tt.source)

			classes, err := parser.FindTestClasses(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.skipped && len(classes) != 0 {
				t.Errorf("expected abstract class to be skipped, got %d classes", len(classes))
			}
			if !tt.skipped && len(classes) != 1 {
				t.Errorf("expected 1 test class, got %d", len(classes))
			}
		})
	}
}

func TestParser_ClassNameFromDeclaration(t *testing.T) {
	parser := NewParser()
	dir := t.TempDir()

	// Declared name wins over the file name
	writeSource(t, dir, "misnamed.java", `
import org.junit.Test;
public class ActualNameTest {
	@Test
	public void testIt() {}
}
`)

	classes, err := parser.FindTestClasses(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected 1 test class, got %d", len(classes))
	}
	if classes[0].Name != "ActualNameTest" {
		t.Errorf("expected ActualNameTest, got %s", classes[0].Name)
	}
}

func TestParser_ListSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "B.java", "class B {}")
	writeSource(t, dir, "A.java", "class A {}")
	writeSource(t, dir, "notes.txt", "not java")

	parser := NewParser()
	sources, err := parser.ListSources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if filepath.Base(sources[0]) != "A.java" {
		t.Errorf("sources not sorted: %v", sources)
	}
}
