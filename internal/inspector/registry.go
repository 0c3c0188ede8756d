package inspector

import (
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Registry holds the metadata Go reflection cannot recover on its own:
// constructor functions, declared capability sets, the names of the methods a
// type declares itself and its unexported methods. It is normally filled by
// code produced by inspect-gen.
type Registry struct {
	mu           sync.RWMutex
	constructors map[reflect.Type][]ConstructorInfo
	capabilities map[reflect.Type][]reflect.Type
	declared     map[reflect.Type]map[string]bool
	methods      map[reflect.Type][]MethodInfo
}

// DefaultRegistry is used by inspectors created without WithRegistry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[reflect.Type][]ConstructorInfo),
		capabilities: make(map[reflect.Type][]reflect.Type),
		declared:     make(map[reflect.Type]map[string]bool),
		methods:      make(map[reflect.Type][]MethodInfo),
	}
}

// RegisterConstructor records fn as a constructor of the type of its first
// result (pointers are dereferenced).
func (r *Registry) RegisterConstructor(fn any) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return errors.Errorf("constructor must be a non-nil function, got %T", fn)
	}
	ft := v.Type()
	if ft.NumOut() == 0 {
		return errors.Errorf("constructor %s has no result", funcName(v))
	}
	owner := ft.Out(0)
	if owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}

	name := funcName(v)
	params := make([]string, 0, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		params = append(params, parameterTypeName(ft, i))
	}
	info := ConstructorInfo{Name: name, ParameterTypes: params, Modifiers: visibility(name)}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.constructors[owner] {
		if c.Name == name {
			return errors.Errorf("constructor %s already registered for %s", name, owner)
		}
	}
	r.constructors[owner] = append(r.constructors[owner], info)
	return nil
}

// DeclareCapabilities records, in order, the interfaces typ declares. Both
// arguments are given as typed nil pointers: (*T)(nil), (*I)(nil).
func (r *Registry) DeclareCapabilities(typ any, ifaces ...any) error {
	t, err := typeOfNilPointer(typ)
	if err != nil {
		return err
	}
	declared := make([]reflect.Type, 0, len(ifaces))
	for _, iface := range ifaces {
		it, err := typeOfNilPointer(iface)
		if err != nil {
			return err
		}
		if it.Kind() != reflect.Interface {
			return errors.Errorf("%s is not an interface", it)
		}
		if !t.Implements(it) && !reflect.PointerTo(t).Implements(it) {
			return errors.Errorf("%s does not implement %s", t, it)
		}
		declared = append(declared, it)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.capabilities[t]; ok {
		return errors.Errorf("capabilities of %s already declared", t)
	}
	r.capabilities[t] = declared
	return nil
}

// DeclareMethods records the names of the methods typ declares itself, as
// opposed to those promoted from embedded fields or inherited from embedded
// interfaces. Each name must be in the method set of typ, or of *typ for
// concrete types.
func (r *Registry) DeclareMethods(typ any, names ...string) error {
	t, err := typeOfNilPointer(typ)
	if err != nil {
		return err
	}
	set := t
	if t.Kind() != reflect.Interface {
		set = reflect.PointerTo(t)
	}
	declared := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := set.MethodByName(name); !ok {
			return errors.Errorf("%s has no method %s", t, name)
		}
		declared[name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.declared[t]; ok {
		return errors.Errorf("methods of %s already declared", t)
	}
	r.declared[t] = declared
	return nil
}

// RegisterMethod records a method reflection cannot enumerate, typically an
// unexported one.
func (r *Registry) RegisterMethod(typ any, m MethodInfo) error {
	t, err := typeOfNilPointer(typ)
	if err != nil {
		return err
	}
	if m.Name == "" {
		return errors.Errorf("method of %s has no name", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.methods[t] {
		if existing.Name == m.Name {
			return errors.Errorf("method %s.%s already registered", t, m.Name)
		}
	}
	r.methods[t] = append(r.methods[t], m)
	return nil
}

func (r *Registry) constructorsOf(t reflect.Type) []ConstructorInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.constructors[t]
}

func (r *Registry) capabilitiesOf(t reflect.Type) []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capabilities[t]
}

func (r *Registry) declaredMethodsOf(t reflect.Type) (map[string]bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	declared, ok := r.declared[t]
	return declared, ok
}

func (r *Registry) methodsOf(t reflect.Type) []MethodInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.methods[t]
}

// MustRegisterConstructor registers fn on DefaultRegistry and panics on error.
func MustRegisterConstructor(fn any) {
	if err := DefaultRegistry.RegisterConstructor(fn); err != nil {
		panic(err)
	}
}

// MustDeclareCapabilities declares capabilities on DefaultRegistry and panics on error.
func MustDeclareCapabilities(typ any, ifaces ...any) {
	if err := DefaultRegistry.DeclareCapabilities(typ, ifaces...); err != nil {
		panic(err)
	}
}

// MustDeclareMethods declares method names on DefaultRegistry and panics on error.
func MustDeclareMethods(typ any, names ...string) {
	if err := DefaultRegistry.DeclareMethods(typ, names...); err != nil {
		panic(err)
	}
}

// MustRegisterMethod registers m on DefaultRegistry and panics on error.
func MustRegisterMethod(typ any, m MethodInfo) {
	if err := DefaultRegistry.RegisterMethod(typ, m); err != nil {
		panic(err)
	}
}

func typeOfNilPointer(v any) (reflect.Type, error) {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		return nil, errors.Errorf("expected a typed nil pointer such as (*T)(nil), got %T", v)
	}
	return t.Elem(), nil
}

// funcName returns the short name of a top-level function.
func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return v.Type().String()
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
