package inspector_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-object-inspector/internal/fixtures"
	"go-object-inspector/internal/inspector"
)

func report(t *testing.T, obj any, recursive bool) string {
	t.Helper()
	var buf bytes.Buffer
	in := inspector.New(
		inspector.WithOutput(&buf),
		inspector.WithLogger(zapr.NewLogger(zaptest.NewLogger(t))),
	)
	require.NoError(t, in.Inspect(obj, recursive))
	return buf.String()
}

func join(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestClassAReport(t *testing.T) {
	expected := join(
		"Class name: ClassA",
		"[ClassA] No super-class",
		"[ClassA] Interface(s) information",
		"\tClass name: Serializable",
		"\t[Serializable] No super-class",
		"\t[Serializable] No interface(s)",
		"\t[Serializable] Constructor(s) information",
		"\t[Serializable] Method(s) information",
		"\t[Serializable] Field(s) information",
		"\tClass name: Runnable",
		"\t[Runnable] No super-class",
		"\t[Runnable] No interface(s)",
		"\t[Runnable] Constructor(s) information",
		"\t[Runnable] Method(s) information",
		"\t\tMethod name: Run",
		"\t\tExceptions thrown (0): Empty",
		"\t\tParameter types (0): Empty",
		"\t\tReturn type: void",
		"\t\tModifiers: public abstract",
		"",
		"\t[Runnable] Field(s) information",
		"[ClassA] Constructor(s) information",
		"\tConstructor name: NewClassA",
		"\tParameter types (0): Empty",
		"\tModifiers: public",
		"",
		"[ClassA] Method(s) information",
		"\tMethod name: Run",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (0): Empty",
		"\tReturn type: void",
		"\tModifiers: public",
		"",
		"[ClassA] Field(s) information",
		"\tField name: val",
		"\tType: int",
		"\tModifiers: private",
		"\tCurrent value: 3",
		"",
		"\tField name: val2",
		"\tType: float64",
		"\tModifiers: private",
		"\tCurrent value: 0.2",
		"",
		"\tField name: val3",
		"\tType: bool",
		"\tModifiers: private",
		"\tCurrent value: true",
		"",
	)

	assert.Equal(t, expected, report(t, fixtures.NewClassA(), false))
}

func TestClassDConstructorsAndMethods(t *testing.T) {
	out := report(t, fixtures.NewClassD(), false)

	assert.Contains(t, out, join(
		"[ClassD] Constructor(s) information",
		"\tConstructor name: NewClassD",
		"\tParameter types (0): Empty",
		"\tModifiers: public",
		"",
		"\tConstructor name: NewClassDWithVal",
		"\tParameter types (1): int",
		"\tModifiers: public",
		"",
		"[ClassD] Method(s) information",
		"\tMethod name: GetVal3",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (0): Empty",
		"\tReturn type: int",
		"\tModifiers: public",
		"",
		"\tMethod name: Scale",
		"\tExceptions thrown (1): error",
		"\tParameter types (1): int",
		"\tReturn type: int",
		"\tModifiers: public",
		"",
		"\tMethod name: String",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (0): Empty",
		"\tReturn type: string",
		"\tModifiers: public",
		"",
		"\tMethod name: scaled",
		"\tExceptions thrown (1): error",
		"\tParameter types (1): int",
		"\tReturn type: int",
		"\tModifiers: private",
		"",
		"[ClassD] Field(s) information",
	))
	assert.Contains(t, out, "[ClassD] Interface(s) information\n\tClass name: Stringer\n")
}

func TestClassBParentAndNestedInterfaces(t *testing.T) {
	out := report(t, fixtures.NewClassB(), false)

	assert.True(t, strings.HasPrefix(out, join(
		"Class name: ClassB",
		"[ClassB] Super-class information",
		"\tClass name: ClassC",
		"\t[ClassC] No super-class",
		"\t[ClassC] No interface(s)",
		"\t[ClassC] Constructor(s) information",
		"\t\tConstructor name: NewClassC",
		"\t\tParameter types (0): Empty",
		"\t\tModifiers: public",
		"",
		"\t[ClassC] Method(s) information",
		"\t\tMethod name: Describe",
		"\t\tExceptions thrown (0): Empty",
		"\t\tParameter types (0): Empty",
		"\t\tReturn type: string",
		"\t\tModifiers: public",
		"",
		"\t[ClassC] Field(s) information",
		"\t\tField name: val",
		"\t\tType: int",
		"\t\tModifiers: private",
		"\t\tCurrent value: 7",
		"",
		"\t\tField name: val2",
		"\t\tType: string",
		"\t\tModifiers: private",
		"\t\tCurrent value: class c",
		"",
		"[ClassB] Interface(s) information",
		"\tClass name: Resetter",
		"\t[Resetter] No super-class",
		"\t[Resetter] Interface(s) information",
		"\t\tClass name: Runnable",
	)), out)
	assert.Contains(t, out, join(
		"\tMethod name: Reset",
		"\tExceptions thrown (1): error",
		"\tParameter types (0): Empty",
		"\tReturn type: void",
		"\tModifiers: public",
	))
	assert.Contains(t, out, "[ClassB] Method(s) information\n\tMethod name: Describe\n", "redeclared method stays with ClassB")
	assert.Contains(t, out, "\tField name: vals\n\tType: []int\n\tModifiers: private\n\tCurrent value: Name: array | Component type: int | Length: 3 | Content: [1, 2, 3]\n")
	assert.Contains(t, out, "\tField name: a\n\tType: *fixtures.ClassA\n\tModifiers: private\n\tCurrent value: *go-object-inspector/internal/fixtures.ClassA@")
	assert.Contains(t, out, "\tField name: next\n\tType: *fixtures.ClassB\n\tModifiers: private\n\tCurrent value: nil\n")
	assert.NotContains(t, out, "Field name: ClassC")
}

func TestRecursiveReportIsBoundedAndRepeatable(t *testing.T) {
	loop := fixtures.NewClassB().Loop()

	first := report(t, loop, true)
	second := report(t, loop, true)

	assert.Equal(t, first, second)
	for _, l := range strings.Split(first, "\n") {
		require.False(t, strings.HasPrefix(l, "\t\t\t\t\t\t"), "unexpected nesting: %q", l)
	}
}

// section returns the lines of out from the first line equal to start up to,
// not including, the first following line equal to end.
func section(t *testing.T, out, start, end string) string {
	t.Helper()
	i := strings.Index(out, start+"\n")
	require.GreaterOrEqual(t, i, 0, "missing %q", start)
	rest := out[i:]
	j := strings.Index(rest, end+"\n")
	require.GreaterOrEqual(t, j, 0, "missing %q", end)
	return rest[:j]
}

func TestNestedCapabilityListsOnlyItsOwnMethods(t *testing.T) {
	out := report(t, fixtures.NewClassB(), false)

	resetter := section(t, out, "\t[Resetter] Method(s) information", "\t[Resetter] Field(s) information")
	assert.Contains(t, resetter, "\t\tMethod name: Reset\n")
	assert.NotContains(t, resetter, "Method name: Run")

	runnable := section(t, out, "\t\t[Runnable] Method(s) information", "\t\t[Runnable] Field(s) information")
	assert.Contains(t, runnable, "\t\t\tMethod name: Run\n")
}

func TestUnexportedMethodSignaturesUseReflectedNames(t *testing.T) {
	out := report(t, fixtures.NewChain(2), false)

	assert.Contains(t, out, join(
		"\tMethod name: Append",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (1): int",
		"\tReturn type: *fixtures.Node",
		"\tModifiers: public",
		"",
		"\tMethod name: last",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (0): Empty",
		"\tReturn type: *fixtures.Node",
		"\tModifiers: private",
		"",
		"\tMethod name: link",
		"\tExceptions thrown (0): Empty",
		"\tParameter types (1): *fixtures.Node",
		"\tReturn type: *fixtures.Node",
		"\tModifiers: private",
	))
}
