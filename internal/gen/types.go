// internal/gen/types.go
package gen

import "path"

// Package is the registry metadata collected from one Go package.
type Package struct {
	Name         string
	Path         string
	Dir          string
	Imports      []Import
	Constructors []Constructor
	Capabilities []Capability
	Declared     []MethodSet
	Methods      []Method
}

// Empty reports whether there is nothing to register for the package.
func (p *Package) Empty() bool {
	return len(p.Constructors) == 0 && len(p.Capabilities) == 0 && len(p.Declared) == 0 && len(p.Methods) == 0
}

// Import is an import the generated file needs for qualified interface names.
type Import struct {
	Name string
	Path string
}

// Aliased reports whether the import needs an explicit name.
func (i Import) Aliased() bool {
	return i.Name != path.Base(i.Path)
}

// Constructor is a top-level New... function returning a declared type.
type Constructor struct {
	Func string
	Type string
}

// Capability lists, in source order, the interfaces a type declares.
type Capability struct {
	Type   string
	Ifaces []string
}

// MethodSet lists, in source order, the methods a type declares itself. For
// concrete types only exported names are listed; unexported ones are Methods.
type MethodSet struct {
	Type  string
	Names []string
}

// Method is an unexported method reflection cannot enumerate.
type Method struct {
	Type       string
	Name       string
	Params     []string
	Results    []string
	Exceptions []string
}
