// Package fixtures holds sample types used to exercise the inspector from the
// CLI, the MCP server and tests.
package fixtures

//go:generate go run go-object-inspector/cmd/inspect-gen --dir .

import (
	"fmt"

	"github.com/pkg/errors"
)

// Serializable is a marker capability with no methods.
type Serializable interface{}

// Runnable is implemented by types that can be run.
type Runnable interface {
	Run()
}

// Resetter is a capability that embeds Runnable.
type Resetter interface {
	Runnable
	Reset() error
}

var (
	_ Serializable = (*ClassA)(nil)
	_ Runnable     = (*ClassA)(nil)
)

// ClassA has three unexported scalar fields.
type ClassA struct {
	val  int
	val2 float64
	val3 bool
}

func NewClassA() *ClassA {
	return &ClassA{val: 3, val2: 0.2, val3: true}
}

func (a *ClassA) Run() {
	a.val++
}

// ClassC is embedded by ClassB as its parent.
type ClassC struct {
	val  int
	val2 string
}

func NewClassC() *ClassC {
	return &ClassC{val: 7, val2: "class c"}
}

func (c *ClassC) Describe() string {
	return fmt.Sprintf("ClassC(%d, %s)", c.val, c.val2)
}

var _ Resetter = (*ClassB)(nil)

// ClassB extends ClassC and references other fixtures.
type ClassB struct {
	ClassC
	vals  []int
	names []string
	a     *ClassA
	peers []*ClassA
	next  *ClassB
}

func NewClassB() *ClassB {
	return &ClassB{
		ClassC: ClassC{val: 7, val2: "class c"},
		vals:   []int{1, 2, 3},
		names:  []string{"alpha", "beta"},
		a:      NewClassA(),
		peers:  []*ClassA{NewClassA(), nil},
	}
}

func (b *ClassB) Run() {
	b.a.Run()
}

func (b *ClassB) Reset() error {
	if b.a == nil {
		return errors.New("nothing to reset")
	}
	b.a = NewClassA()
	return nil
}

// Describe redeclares the method ClassB would otherwise get from ClassC.
func (b *ClassB) Describe() string {
	return fmt.Sprintf("ClassB(%d values) extends %s", len(b.vals), b.ClassC.Describe())
}

// Loop points next back at b itself.
func (b *ClassB) Loop() *ClassB {
	b.next = b
	return b
}

var _ fmt.Stringer = (*ClassD)(nil)

// ClassD has two constructors and a mix of exported and unexported methods.
type ClassD struct {
	val3  int
	label string
	a     *ClassA
}

func NewClassD() *ClassD {
	return &ClassD{val3: 100, label: "default"}
}

func NewClassDWithVal(val3 int) *ClassD {
	return &ClassD{val3: val3, label: "custom", a: NewClassA()}
}

func (d *ClassD) String() string {
	return fmt.Sprintf("ClassD(%d)", d.val3)
}

func (d *ClassD) GetVal3() int {
	return d.val3
}

func (d *ClassD) Scale(factor int) (int, error) {
	return d.scaled(factor)
}

func (d *ClassD) scaled(factor int) (int, error) {
	if factor == 0 {
		return 0, errors.New("factor must not be zero")
	}
	return d.val3 * factor, nil
}

// Node is a singly linked list element.
type Node struct {
	Value int
	Next  *Node
}

// NewChain links n nodes valued 1..n.
func NewChain(n int) *Node {
	if n <= 0 {
		return nil
	}
	head := &Node{Value: 1}
	for i := 2; i <= n; i++ {
		head.Append(i)
	}
	return head
}

// Append adds a node valued value after the last node of the chain.
func (n *Node) Append(value int) *Node {
	return n.last().link(&Node{Value: value})
}

func (n *Node) last() *Node {
	for n.Next != nil {
		n = n.Next
	}
	return n
}

func (n *Node) link(next *Node) *Node {
	n.Next = next
	return next
}
