// internal/inspector/types.go
package inspector

import (
	"reflect"
)

// TypeDescriptor exposes the shape of a runtime type: its name, its parent,
// the capability sets it declares and its members.
type TypeDescriptor interface {
	Name() string
	// IsUniversal reports whether the type is the root of every hierarchy (any).
	IsUniversal() bool
	// Parent returns the embedded parent type and the field that embeds it.
	Parent() (TypeDescriptor, FieldInfo, bool)
	Capabilities() []TypeDescriptor
	Constructors() []ConstructorInfo
	Methods() []MethodInfo
	Fields() []FieldInfo
	// FieldValue reads a field of instance. With force set, unexported
	// fields are read by bypassing the usual access checks.
	FieldValue(instance reflect.Value, f FieldInfo, force bool) (reflect.Value, error)
}

// ConstructorInfo describes a function that builds a value of a type.
type ConstructorInfo struct {
	Name           string
	ParameterTypes []string
	Modifiers      Modifier
}

// MethodInfo describes a declared method.
type MethodInfo struct {
	Name           string
	ExceptionTypes []string
	ParameterTypes []string
	ReturnType     string
	Modifiers      Modifier
}

// FieldInfo describes a declared struct field.
type FieldInfo struct {
	Name      string
	Type      string
	Modifiers Modifier
	Index     int
}

// traversal is the state threaded through one recursive step.
type traversal struct {
	desc      TypeDescriptor
	instance  reflect.Value
	recursive bool
	depth     int
}
