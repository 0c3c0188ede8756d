// internal/gen/collect.go
package gen

import (
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"sort"
	"strconv"
	"strings"
)

// collector walks the files of a package in source order.
type collector struct {
	pkg         *Package
	declared    map[string]bool // type name -> is interface
	capIndex    map[string]int
	methodIndex map[string]int
	imports     map[string]Import
	importNames map[string]string
	fileAlias   map[string]string
}

// Collect gathers constructors, capability declarations, declared method
// names and unexported methods from the syntax of a package. importNames maps
// import paths to package names; paths it lacks are named after their last
// element.
func Collect(name, path string, files []*ast.File, importNames map[string]string) *Package {
	c := &collector{
		pkg:         &Package{Name: name, Path: path},
		declared:    make(map[string]bool),
		capIndex:    make(map[string]int),
		methodIndex: make(map[string]int),
		imports:     make(map[string]Import),
		importNames: importNames,
	}
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				_, isIface := ts.Type.(*ast.InterfaceType)
				c.declared[ts.Name.Name] = isIface
			}
		}
	}

	for _, f := range files {
		c.fileAlias = c.fileImports(f)
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				switch d.Tok {
				case token.TYPE:
					c.typeDecl(d)
				case token.VAR:
					c.varDecl(d)
				}
			case *ast.FuncDecl:
				c.funcDecl(d)
			}
		}
	}

	for _, imp := range c.imports {
		c.pkg.Imports = append(c.pkg.Imports, imp)
	}
	sort.Slice(c.pkg.Imports, func(i, j int) bool {
		return c.pkg.Imports[i].Path < c.pkg.Imports[j].Path
	})
	return c.pkg
}

// typeDecl records the interfaces embedded by an interface declaration and
// the methods it declares itself.
func (c *collector) typeDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		ts := spec.(*ast.TypeSpec)
		it, ok := ts.Type.(*ast.InterfaceType)
		if !ok || ts.TypeParams != nil {
			continue
		}
		for _, m := range it.Methods.List {
			if len(m.Names) > 0 {
				for _, n := range m.Names {
					c.addDeclared(ts.Name.Name, n.Name)
				}
				continue
			}
			if iface, ok := c.interfaceName(m.Type); ok {
				c.addCapability(ts.Name.Name, iface)
			}
		}
	}
}

// varDecl records assertions of the form var _ I = (*T)(nil).
func (c *collector) varDecl(d *ast.GenDecl) {
	for _, spec := range d.Specs {
		vs := spec.(*ast.ValueSpec)
		if vs.Type == nil || len(vs.Values) != len(vs.Names) {
			continue
		}
		iface, ok := c.interfaceName(vs.Type)
		if !ok {
			continue
		}
		for i, n := range vs.Names {
			if n.Name != "_" {
				continue
			}
			if typ, ok := c.assertedType(vs.Values[i]); ok {
				c.addCapability(typ, iface)
			}
		}
	}
}

func (c *collector) funcDecl(fn *ast.FuncDecl) {
	if fn.Type.TypeParams != nil {
		return
	}
	if fn.Recv == nil {
		if !strings.HasPrefix(fn.Name.Name, "New") || fn.Type.Results == nil || len(fn.Type.Results.List) == 0 {
			return
		}
		if typ, ok := c.concreteType(fn.Type.Results.List[0].Type); ok {
			c.pkg.Constructors = append(c.pkg.Constructors, Constructor{Func: fn.Name.Name, Type: typ})
		}
		return
	}
	if len(fn.Recv.List) != 1 {
		return
	}
	typ, ok := c.concreteType(fn.Recv.List[0].Type)
	if !ok {
		return
	}
	if token.IsExported(fn.Name.Name) {
		c.addDeclared(typ, fn.Name.Name)
		return
	}
	m := Method{Type: typ, Name: fn.Name.Name, Params: c.fieldTypes(fn.Type.Params)}
	results := c.fieldTypes(fn.Type.Results)
	n := len(results)
	for n > 0 && results[n-1] == "error" {
		n--
	}
	m.Results = results[:n]
	m.Exceptions = results[n:]
	c.pkg.Methods = append(c.pkg.Methods, m)
}

func (c *collector) addCapability(typ, iface string) {
	i, ok := c.capIndex[typ]
	if !ok {
		i = len(c.pkg.Capabilities)
		c.capIndex[typ] = i
		c.pkg.Capabilities = append(c.pkg.Capabilities, Capability{Type: typ})
	}
	for _, existing := range c.pkg.Capabilities[i].Ifaces {
		if existing == iface {
			return
		}
	}
	c.pkg.Capabilities[i].Ifaces = append(c.pkg.Capabilities[i].Ifaces, iface)
}

func (c *collector) addDeclared(typ, name string) {
	i, ok := c.methodIndex[typ]
	if !ok {
		i = len(c.pkg.Declared)
		c.methodIndex[typ] = i
		c.pkg.Declared = append(c.pkg.Declared, MethodSet{Type: typ})
	}
	c.pkg.Declared[i].Names = append(c.pkg.Declared[i].Names, name)
}

// interfaceName resolves I or pkg.I, recording the import pkg needs.
func (c *collector) interfaceName(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		isIface, ok := c.declared[e.Name]
		return e.Name, ok && isIface
	case *ast.SelectorExpr:
		x, ok := e.X.(*ast.Ident)
		if !ok {
			return "", false
		}
		path, ok := c.fileAlias[x.Name]
		if !ok {
			return "", false
		}
		c.imports[path] = Import{Name: x.Name, Path: path}
		return x.Name + "." + e.Sel.Name, true
	}
	return "", false
}

// assertedType extracts T from (*T)(nil), T{} or &T{}.
func (c *collector) assertedType(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.CallExpr:
		if len(e.Args) != 1 {
			return "", false
		}
		if nilIdent, ok := e.Args[0].(*ast.Ident); !ok || nilIdent.Name != "nil" {
			return "", false
		}
		paren, ok := e.Fun.(*ast.ParenExpr)
		if !ok {
			return "", false
		}
		return c.concreteType(paren.X)
	case *ast.CompositeLit:
		return c.concreteType(e.Type)
	case *ast.UnaryExpr:
		if e.Op != token.AND {
			return "", false
		}
		if lit, ok := e.X.(*ast.CompositeLit); ok {
			return c.concreteType(lit.Type)
		}
	}
	return "", false
}

// concreteType resolves T or *T to a non-interface type declared in the package.
func (c *collector) concreteType(expr ast.Expr) (string, bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	isIface, declared := c.declared[ident.Name]
	if !declared || isIface {
		return "", false
	}
	return ident.Name, true
}

// fieldTypes renders a parameter or result list, one entry per name.
func (c *collector) fieldTypes(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var out []string
	for _, f := range fields.List {
		typ := c.typeString(f.Type)
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, typ)
		}
	}
	return out
}

// typeString spells a type expression the way reflect.Type.String does:
// package types are qualified by package name, aliases resolved.
func (c *collector) typeString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		switch e.Name {
		case "byte":
			return "uint8"
		case "rune":
			return "int32"
		case "any":
			return "interface {}"
		}
		if _, ok := c.declared[e.Name]; ok {
			return c.pkg.Name + "." + e.Name
		}
		return e.Name
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if path, ok := c.fileAlias[x.Name]; ok {
				return c.packageName(path) + "." + e.Sel.Name
			}
		}
	case *ast.ParenExpr:
		return c.typeString(e.X)
	case *ast.StarExpr:
		return "*" + c.typeString(e.X)
	case *ast.Ellipsis:
		return "..." + c.typeString(e.Elt)
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + c.typeString(e.Elt)
		}
		return "[" + types.ExprString(e.Len) + "]" + c.typeString(e.Elt)
	case *ast.MapType:
		return "map[" + c.typeString(e.Key) + "]" + c.typeString(e.Value)
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return "chan<- " + c.typeString(e.Value)
		case ast.RECV:
			return "<-chan " + c.typeString(e.Value)
		}
		return "chan " + c.typeString(e.Value)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "interface {}"
		}
	case *ast.FuncType:
		s := "func(" + strings.Join(c.fieldTypes(e.Params), ", ") + ")"
		switch results := c.fieldTypes(e.Results); len(results) {
		case 0:
			return s
		case 1:
			return s + " " + results[0]
		default:
			return s + " (" + strings.Join(results, ", ") + ")"
		}
	}
	return types.ExprString(expr)
}

// packageName returns the name of the package imported as importPath.
func (c *collector) packageName(importPath string) string {
	if name := c.importNames[importPath]; name != "" {
		return name
	}
	name := path.Base(importPath)
	if isMajorVersion(name) {
		name = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return strings.TrimPrefix(name, "go-")
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(elem[1:])
	return err == nil
}

// fileImports maps the local names of a file's imports to their paths.
func (c *collector) fileImports(f *ast.File) map[string]string {
	aliases := make(map[string]string)
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := c.packageName(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		aliases[name] = path
	}
	return aliases
}
