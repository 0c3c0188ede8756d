package inspector

import (
	"reflect"
	"sort"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// reflectDescriptor implements TypeDescriptor over reflect.Type, filling the
// gaps of Go reflection from a Registry.
type reflectDescriptor struct {
	t   reflect.Type
	reg *Registry
}

// Describe returns the descriptor of t. Pointer types are described by the
// type they point to.
func Describe(t reflect.Type, reg *Registry) TypeDescriptor {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reg == nil {
		reg = DefaultRegistry
	}
	return &reflectDescriptor{t: t, reg: reg}
}

func (d *reflectDescriptor) Name() string {
	if name := d.t.Name(); name != "" {
		return name
	}
	return d.t.String()
}

func (d *reflectDescriptor) IsUniversal() bool {
	return d.t.Kind() == reflect.Interface && d.t.NumMethod() == 0 && d.t.Name() == ""
}

func (d *reflectDescriptor) Parent() (TypeDescriptor, FieldInfo, bool) {
	i, ok := d.parentIndex()
	if !ok {
		return nil, FieldInfo{}, false
	}
	return Describe(d.t.Field(i).Type, d.reg), d.fieldInfo(i), true
}

// parentIndex finds the first embedded field whose type is a struct.
func (d *reflectDescriptor) parentIndex() (int, bool) {
	if d.t.Kind() != reflect.Struct {
		return 0, false
	}
	for i := 0; i < d.t.NumField(); i++ {
		f := d.t.Field(i)
		if f.Anonymous && indirectType(f.Type).Kind() == reflect.Struct {
			return i, true
		}
	}
	return 0, false
}

func (d *reflectDescriptor) Capabilities() []TypeDescriptor {
	declared := d.reg.capabilitiesOf(d.t)
	caps := make([]TypeDescriptor, 0, len(declared))
	for _, it := range declared {
		caps = append(caps, Describe(it, d.reg))
	}
	return caps
}

func (d *reflectDescriptor) Constructors() []ConstructorInfo {
	return d.reg.constructorsOf(d.t)
}

// Methods lists the methods the type declares itself. Methods promoted from
// embedded fields, or inherited by an interface from the interfaces it embeds,
// belong to those types. When the registry knows which names the type
// declares, a redeclared method is kept even if an embedded type has one of
// the same name.
func (d *reflectDescriptor) Methods() []MethodInfo {
	set, skip, abstract := d.t, 0, Abstract
	if d.t.Kind() != reflect.Interface {
		if d.t.Name() != "" || d.t.Kind() == reflect.Struct {
			set = reflect.PointerTo(d.t)
		}
		// In(0) is the receiver.
		skip, abstract = 1, 0
	}
	declared, known := d.reg.declaredMethodsOf(d.t)
	var inherited map[string]bool
	if !known {
		inherited = d.inheritedMethods()
	}

	var methods []MethodInfo
	for i := 0; i < set.NumMethod(); i++ {
		m := set.Method(i)
		if known && !declared[m.Name] || !known && inherited[m.Name] {
			continue
		}
		methods = append(methods, methodInfo(m.Name, m.Type, skip, visibility(m.Name)|abstract))
	}
	methods = append(methods, d.reg.methodsOf(d.t)...)
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Name < methods[j].Name
	})
	return methods
}

// inheritedMethods collects method names reachable through embedded fields,
// or for an interface through its declared capabilities.
func (d *reflectDescriptor) inheritedMethods() map[string]bool {
	inherited := make(map[string]bool)
	switch d.t.Kind() {
	case reflect.Interface:
		for _, it := range d.reg.capabilitiesOf(d.t) {
			for j := 0; j < it.NumMethod(); j++ {
				inherited[it.Method(j).Name] = true
			}
		}
	case reflect.Struct:
		for i := 0; i < d.t.NumField(); i++ {
			f := d.t.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
				ft = reflect.PointerTo(ft)
			}
			for j := 0; j < ft.NumMethod(); j++ {
				inherited[ft.Method(j).Name] = true
			}
		}
	}
	return inherited
}

func (d *reflectDescriptor) Fields() []FieldInfo {
	if d.t.Kind() != reflect.Struct {
		return nil
	}
	parent, hasParent := d.parentIndex()
	fields := make([]FieldInfo, 0, d.t.NumField())
	for i := 0; i < d.t.NumField(); i++ {
		if hasParent && i == parent {
			continue
		}
		fields = append(fields, d.fieldInfo(i))
	}
	return fields
}

func (d *reflectDescriptor) fieldInfo(i int) FieldInfo {
	f := d.t.Field(i)
	mods := visibility(f.Name)
	if f.Anonymous {
		mods |= Embedded
	}
	return FieldInfo{Name: f.Name, Type: f.Type.String(), Modifiers: mods, Index: i}
}

func (d *reflectDescriptor) FieldValue(instance reflect.Value, f FieldInfo, force bool) (reflect.Value, error) {
	instance = indirect(instance)
	if !instance.IsValid() {
		return reflect.Value{}, nil
	}
	if instance.Kind() != reflect.Struct || instance.Type() != d.t {
		return reflect.Value{}, errors.Wrapf(ErrUnsupported, "read field %s of %s from a %s value", f.Name, d.Name(), instance.Type())
	}
	fv := instance.Field(f.Index)
	if fv.CanInterface() {
		return fv, nil
	}
	if !force {
		return reflect.Value{}, errors.Wrapf(ErrAccessDenied, "field %s.%s is unexported", d.Name(), f.Name)
	}
	if !fv.CanAddr() {
		tmp := reflect.New(instance.Type()).Elem()
		tmp.Set(instance)
		fv = tmp.Field(f.Index)
	}
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem(), nil
}

// methodInfo builds a MethodInfo from a func type, skipping the first skip
// parameters. Trailing error results are reported as thrown errors.
func methodInfo(name string, ft reflect.Type, skip int, mods Modifier) MethodInfo {
	params := make([]string, 0, ft.NumIn())
	for i := skip; i < ft.NumIn(); i++ {
		params = append(params, parameterTypeName(ft, i))
	}
	results := make([]string, 0, ft.NumOut())
	var thrown []string
	n := ft.NumOut()
	for n > 0 && ft.Out(n-1) == errorType {
		n--
	}
	for i := 0; i < ft.NumOut(); i++ {
		if i < n {
			results = append(results, ft.Out(i).String())
		} else {
			thrown = append(thrown, ft.Out(i).String())
		}
	}
	return MethodInfo{
		Name:           name,
		ExceptionTypes: thrown,
		ParameterTypes: params,
		ReturnType:     ReturnTypeName(results),
		Modifiers:      mods,
	}
}

// ReturnTypeName renders a result list: void, T, or (T1, T2).
func ReturnTypeName(results []string) string {
	switch len(results) {
	case 0:
		return "void"
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}

func parameterTypeName(ft reflect.Type, i int) string {
	if ft.IsVariadic() && i == ft.NumIn()-1 {
		return "..." + ft.In(i).Elem().String()
	}
	return ft.In(i).String()
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// indirect follows pointers and interfaces to the value they hold. The result
// is invalid if a nil is met on the way.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
