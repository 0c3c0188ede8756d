package inspector

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type Serializable interface{}

type Runnable interface {
	Run()
}

type ClassA struct {
	val  int
	val2 float64
	val3 bool
}

func (a *ClassA) Run() {}

type ClassD struct {
	val3 int
	a    *ClassA
}

func NewClassD() *ClassD {
	return &ClassD{val3: 100}
}

func NewClassDWithVal(val3 int) *ClassD {
	return &ClassD{val3: val3}
}

func (d *ClassD) String() string {
	return fmt.Sprintf("ClassD(%d)", d.val3)
}

func (d *ClassD) GetVal3() int {
	return d.val3
}

type Base struct {
	id int
}

func (b *Base) ID() int {
	return b.id
}

type Derived struct {
	Base
	name string
}

func (d *Derived) Name() string {
	return d.name
}

type DerivedPtr struct {
	*Base
	tag string
}

type Greeter struct {
	greeting string
}

func (g *Greeter) Hello() string {
	return g.greeting
}

func (g *Greeter) Bye() string {
	return "bye"
}

// LoudGreeter redeclares Hello and inherits Bye.
type LoudGreeter struct {
	Greeter
	volume int
}

func (g *LoudGreeter) Hello() string {
	return strings.ToUpper(g.Greeter.Hello())
}

type Reader interface {
	Read() int
}

type ReadCloser interface {
	Reader
	Close() error
}

type Node struct {
	Value int
	Next  *Node
}

type Loop struct {
	Label string
	Next  *Loop
}

type Inner struct {
	n int
}

type Holder struct {
	inner Inner
	ptr   *Inner
	m     map[string]int
	dyn   interface{}
}

type Lists struct {
	vals  []int
	names []string
	peers []*ClassA
}

// testRegistry declares the capabilities and constructors the tests rely on.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.DeclareCapabilities((*ClassA)(nil), (*Serializable)(nil), (*Runnable)(nil)))
	require.NoError(t, reg.RegisterConstructor(NewClassD))
	require.NoError(t, reg.RegisterConstructor(NewClassDWithVal))
	return reg
}

// newTestRun returns a run writing into buf, as Inspect would set it up.
func newTestRun(t *testing.T, buf *bytes.Buffer, reg *Registry) *run {
	t.Helper()
	in := New(
		WithOutput(buf),
		WithRegistry(reg),
		WithLogger(zapr.NewLogger(zaptest.NewLogger(t))),
	)
	return &run{Inspector: in, w: &reportWriter{w: buf}}
}

// lines joins report lines, each terminated by a newline.
func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
