// internal/inspector/inspector.go
package inspector

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"go-object-inspector/internal/log"
)

// MaxRecursionDepth bounds the descent into field values.
const MaxRecursionDepth = 3

// Inspector writes reports describing objects and their types.
type Inspector struct {
	out            io.Writer
	logger         logr.Logger
	registry       *Registry
	forceAccess    bool
	cycleDetection bool
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithOutput sets the sink the report is written to.
func WithOutput(w io.Writer) Option {
	return func(i *Inspector) { i.out = w }
}

// WithLogger sets the logger failures are reported on.
func WithLogger(l logr.Logger) Option {
	return func(i *Inspector) { i.logger = l }
}

// WithRegistry sets where constructors, capabilities and unexported methods
// are looked up.
func WithRegistry(r *Registry) Option {
	return func(i *Inspector) { i.registry = r }
}

// WithForceAccess controls whether unexported fields may be read.
func WithForceAccess(force bool) Option {
	return func(i *Inspector) { i.forceAccess = force }
}

// WithCycleDetection stops field-value descent into an instance that is
// already being inspected higher up on the same path.
func WithCycleDetection(enabled bool) Option {
	return func(i *Inspector) { i.cycleDetection = enabled }
}

// New returns an Inspector writing to stdout with force access enabled.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		out:         os.Stdout,
		logger:      log.Log,
		registry:    DefaultRegistry,
		forceAccess: true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect writes the report for obj. obj must not be nil. A failure stops the
// report where it happened; it is logged with its stack trace and returned.
func (i *Inspector) Inspect(obj any, recursive bool) (err error) {
	root := reflect.ValueOf(obj)
	if isAbsent(root) {
		return ErrNilObject
	}
	root = addressable(root)
	desc := Describe(root.Type(), i.registry)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrUnsupported, "%v", r)
		}
		if err != nil {
			i.logger.Error(err, "Inspection failed", "type", desc.Name(), "recursive", recursive)
		}
	}()

	w := &reportWriter{w: i.out}
	rn := &run{Inspector: i, w: w}
	if i.cycleDetection {
		rn.active = make(map[visitKey]bool)
		if root.Kind() == reflect.Pointer {
			rn.active[visitKey{t: root.Type(), addr: root.Pointer()}] = true
		}
	}
	if err := rn.inspectType(traversal{desc: desc, instance: root, recursive: recursive}); err != nil {
		return err
	}
	return w.err
}

// addressable returns v backed by addressable storage so unexported fields
// can be read through their address.
func addressable(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer || v.CanAddr() {
		return v
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Elem()
}

type visitKey struct {
	t    reflect.Type
	addr uintptr
}

// run is the state of a single Inspect call.
type run struct {
	*Inspector
	w      *reportWriter
	active map[visitKey]bool
}

// reportWriter keeps the first write error and drops later writes.
type reportWriter struct {
	w   io.Writer
	err error
}

func (w *reportWriter) printf(depth int, format string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.w, indentation(depth)+format+"\n", args...); err != nil {
		w.err = errors.Wrap(err, "write report")
	}
}

func (w *reportWriter) blank() {
	w.printf(0, "")
}

// --- Traversal steps ---

func (r *run) inspectType(s traversal) error {
	name := s.desc.Name()
	r.w.printf(s.depth, "Class name: %s", name)
	if s.desc.IsUniversal() {
		return nil
	}
	if err := r.writeSuperClass(name, s); err != nil {
		return err
	}
	if err := r.writeInterfaces(name, s); err != nil {
		return err
	}
	r.writeConstructors(name, s)
	r.writeMethods(name, s)
	return r.writeFields(name, s)
}

func (r *run) writeSuperClass(name string, s traversal) error {
	parent, via, ok := s.desc.Parent()
	if !ok {
		r.w.printf(s.depth, "[%s] No super-class", name)
		return nil
	}
	r.w.printf(s.depth, "[%s] Super-class information", name)
	instance, err := s.desc.FieldValue(s.instance, via, r.forceAccess)
	if err != nil {
		return err
	}
	return r.inspectType(traversal{desc: parent, instance: instance, recursive: s.recursive, depth: s.depth + 1})
}

func (r *run) writeInterfaces(name string, s traversal) error {
	caps := s.desc.Capabilities()
	if len(caps) == 0 {
		r.w.printf(s.depth, "[%s] No interface(s)", name)
		return nil
	}
	r.w.printf(s.depth, "[%s] Interface(s) information", name)
	for _, c := range caps {
		if err := r.inspectType(traversal{desc: c, instance: s.instance, recursive: s.recursive, depth: s.depth + 1}); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) writeConstructors(name string, s traversal) {
	r.w.printf(s.depth, "[%s] Constructor(s) information", name)
	depth := s.depth + 1
	for _, c := range s.desc.Constructors() {
		r.w.printf(depth, "Constructor name: %s", c.Name)
		r.w.printf(depth, "Parameter types (%d): %s", len(c.ParameterTypes), joinTypes(c.ParameterTypes))
		r.w.printf(depth, "Modifiers: %s", c.Modifiers)
		r.w.blank()
	}
}

func (r *run) writeMethods(name string, s traversal) {
	r.w.printf(s.depth, "[%s] Method(s) information", name)
	depth := s.depth + 1
	for _, m := range s.desc.Methods() {
		r.w.printf(depth, "Method name: %s", m.Name)
		r.w.printf(depth, "Exceptions thrown (%d): %s", len(m.ExceptionTypes), joinTypes(m.ExceptionTypes))
		r.w.printf(depth, "Parameter types (%d): %s", len(m.ParameterTypes), joinTypes(m.ParameterTypes))
		r.w.printf(depth, "Return type: %s", m.ReturnType)
		r.w.printf(depth, "Modifiers: %s", m.Modifiers)
		r.w.blank()
	}
}

func (r *run) writeFields(name string, s traversal) error {
	r.w.printf(s.depth, "[%s] Field(s) information", name)
	depth := s.depth + 1
	for _, f := range s.desc.Fields() {
		r.w.printf(depth, "Field name: %s", f.Name)
		r.w.printf(depth, "Type: %s", f.Type)
		r.w.printf(depth, "Modifiers: %s", f.Modifiers)
		value, err := s.desc.FieldValue(s.instance, f, r.forceAccess)
		if err != nil {
			return err
		}
		r.w.printf(depth, "Current value: %s", RenderValue(value))
		if s.recursive {
			if err := r.inspectValue(value, depth); err != nil {
				return err
			}
		}
		r.w.blank()
	}
	return nil
}

// inspectValue descends into the dynamic type of a field value.
func (r *run) inspectValue(v reflect.Value, depth int) error {
	if depth >= MaxRecursionDepth {
		return nil
	}
	if v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if isAbsent(v) {
		return nil
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if isPrimitive(v.Type().Elem()) {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Interface && !elem.IsNil() {
				elem = elem.Elem()
			}
			if isAbsent(elem) {
				continue
			}
			if err := r.descend(elem, depth); err != nil {
				return err
			}
		}
		return nil
	}
	return r.descend(v, depth)
}

func (r *run) descend(v reflect.Value, depth int) error {
	if r.active != nil && v.Kind() == reflect.Pointer {
		key := visitKey{t: v.Type(), addr: v.Pointer()}
		if r.active[key] {
			return nil
		}
		r.active[key] = true
		defer delete(r.active, key)
	}
	return r.inspectType(traversal{desc: Describe(v.Type(), r.registry), instance: v, recursive: true, depth: depth})
}
