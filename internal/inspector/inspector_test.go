package inspector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func inspect(t *testing.T, obj any, recursive bool, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]Option{WithOutput(&buf), WithRegistry(testRegistry(t))}, opts...)
	require.NoError(t, New(opts...).Inspect(obj, recursive))
	return buf.String()
}

func countLines(report, line string) int {
	n := 0
	for _, l := range strings.Split(report, "\n") {
		if strings.TrimLeft(l, "\t") == line {
			n++
		}
	}
	return n
}

func TestInspectNilObject(t *testing.T) {
	var buf bytes.Buffer
	in := New(WithOutput(&buf))

	assert.ErrorIs(t, in.Inspect(nil, false), ErrNilObject)
	assert.ErrorIs(t, in.Inspect((*ClassA)(nil), true), ErrNilObject)
	assert.Empty(t, buf.String())
}

func TestInspectByValueAndPointerMatch(t *testing.T) {
	obj := ClassA{val: 3, val2: 0.2, val3: true}

	assert.Equal(t, inspect(t, &obj, false), inspect(t, obj, false))
}

func TestInspectNonRecursiveDoesNotDescend(t *testing.T) {
	out := inspect(t, &Node{Value: 1, Next: &Node{Value: 2}}, false)

	assert.Equal(t, 1, countLines(out, "Class name: Node"))
	assert.NotContains(t, out, "Class name: int")
}

func TestInspectRecursiveDepthCeiling(t *testing.T) {
	var head *Node
	for i := 10; i > 0; i-- {
		head = &Node{Value: i, Next: head}
	}

	out := inspect(t, head, true)

	assert.Equal(t, 3, countLines(out, "Class name: Node"))
	assert.Contains(t, out, "\tClass name: int\n")
	for _, l := range strings.Split(out, "\n") {
		assert.False(t, strings.HasPrefix(l, "\t\t\t\t"), "line nested deeper than the ceiling: %q", l)
	}
}

func TestInspectRecursiveSlices(t *testing.T) {
	obj := &Lists{
		vals:  []int{1, 2, 3},
		names: []string{"a", "b"},
		peers: []*ClassA{{val: 1}, nil, {val: 2}},
	}

	out := inspect(t, obj, true)

	assert.Contains(t, out, "\tCurrent value: Name: array | Component type: int | Length: 3 | Content: [1, 2, 3]\n")
	// Only the val fields of the two ClassA peers lead to int; vals is not descended into.
	assert.Equal(t, 2, countLines(out, "Class name: int"))
	assert.Equal(t, 2, countLines(out, "Class name: string"))
	assert.Equal(t, 2, countLines(out, "Class name: ClassA"))
	assert.Contains(t, out, "\tClass name: ClassA\n", "slice elements keep the field depth")
}

func TestInspectSelfReference(t *testing.T) {
	loop := &Loop{Label: "self"}
	loop.Next = loop

	out := inspect(t, loop, true)
	assert.Equal(t, 3, countLines(out, "Class name: Loop"))

	out = inspect(t, loop, true, WithCycleDetection(true))
	assert.Equal(t, 1, countLines(out, "Class name: Loop"))
}

func TestInspectIdempotent(t *testing.T) {
	d := NewClassDWithVal(5)
	d.a = &ClassA{val: 9}
	h := Holder{inner: Inner{n: 4}, ptr: &Inner{n: 5}, m: map[string]int{"a": 1}, dyn: Inner{n: 6}}

	assert.Equal(t, inspect(t, d, true), inspect(t, d, true))
	assert.Equal(t, inspect(t, h, true), inspect(t, h, true))
}

func TestInspectAccessDeniedIsLoggedAndReturned(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	var buf bytes.Buffer
	in := New(
		WithOutput(&buf),
		WithRegistry(testRegistry(t)),
		WithForceAccess(false),
		WithLogger(zapr.NewLogger(zap.New(core))),
	)

	err := in.Inspect(&ClassA{val: 3}, false)

	require.ErrorIs(t, err, ErrAccessDenied)
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\tField name: val\n\tType: int\n\tModifiers: private\n"), "report stops at the failing field:\n%s", out)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Inspection failed", logs.All()[0].Message)
	assert.Equal(t, "ClassA", logs.All()[0].ContextMap()["type"])
}

func TestInspectExportedFieldsWithoutForceAccess(t *testing.T) {
	out := inspect(t, &Node{Value: 1}, false, WithForceAccess(false))

	assert.Contains(t, out, "\tField name: Value\n\tType: int\n\tModifiers: public\n\tCurrent value: 1\n")
	assert.Contains(t, out, "\tField name: Next\n\tType: *inspector.Node\n\tModifiers: public\n\tCurrent value: nil\n")
}

var errBrokenSink = errors.New("broken sink")

type failingWriter struct {
	budget int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.budget == 0 {
		return 0, errBrokenSink
	}
	w.budget--
	return len(p), nil
}

func TestInspectWriteFailure(t *testing.T) {
	w := &failingWriter{budget: 2}
	in := New(WithOutput(w), WithRegistry(testRegistry(t)), WithLogger(zapr.NewLogger(zap.NewNop())))

	err := in.Inspect(&ClassA{}, false)

	assert.ErrorIs(t, err, errBrokenSink)
}
