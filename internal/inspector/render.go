package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// absentValue is printed for values that hold nothing.
const absentValue = "nil"

func indentation(depth int) string {
	return strings.Repeat("\t", depth)
}

// joinTypes renders a type list as "Empty" or "T1, T2".
func joinTypes(types []string) string {
	if len(types) == 0 {
		return "Empty"
	}
	return strings.Join(types, ", ")
}

// RenderValue returns the printable form of v. It never fails: absent values,
// slices, scalars and opaque references all have a rendering.
func RenderValue(v reflect.Value) string {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return absentValue
		}
		v = v.Elem()
	}
	if isAbsent(v) {
		return absentValue
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]string, v.Len())
		for i := range elems {
			elems[i] = RenderValue(v.Index(i))
		}
		return fmt.Sprintf("Name: array | Component type: %s | Length: %d | Content: [%s]",
			v.Type().Elem(), v.Len(), strings.Join(elems, ", "))
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	case reflect.String:
		return v.String()
	}
	return qualifiedName(v.Type()) + "@" + identity(v)
}

// isAbsent reports whether v holds no value at all.
func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// isPrimitive reports whether values of t have no inner structure worth
// descending into.
func isPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// qualifiedName is the package-qualified name of t, e.g. "*example.com/pkg.Node".
func qualifiedName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + qualifiedName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// identity is an opaque hex token for v: the address for reference kinds,
// a hash of the Go-syntax rendering for plain values.
func identity(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return strconv.FormatUint(uint64(v.Pointer()), 16)
	}
	if !v.CanInterface() {
		return "0"
	}
	sum := xxhash.Sum64String(fmt.Sprintf("%#v", v.Interface()))
	return strconv.FormatUint(uint64(uint32(sum)), 16)
}
