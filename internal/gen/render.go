package gen

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"go-object-inspector/internal/inspector"
)

// DefaultInspectorPath is the import path of the package the generated code registers with.
const DefaultInspectorPath = "go-object-inspector/internal/inspector"

// DefaultOutput is the file name generated code is written to.
const DefaultOutput = "zz_generated.inspect.go"

var fileTemplate = template.Must(template.New("registry").Funcs(template.FuncMap{
	"quoteList":  quoteList,
	"returnType": func(results []string) string { return strconv.Quote(inspector.ReturnTypeName(results)) },
}).Parse(`// Code generated by inspect-gen. DO NOT EDIT.

package {{ .Pkg.Name }}

import (
{{- range .Pkg.Imports }}
	{{ if .Aliased }}{{ .Name }} {{ end }}"{{ .Path }}"
{{- end }}
{{ if .Pkg.Imports }}
{{ end }}	"{{ .InspectorPath }}"
)

func init() {
{{- range .Pkg.Constructors }}
	inspector.MustRegisterConstructor({{ .Func }})
{{- end }}
{{ range .Pkg.Capabilities }}
	inspector.MustDeclareCapabilities((*{{ .Type }})(nil){{ range .Ifaces }}, (*{{ . }})(nil){{ end }})
{{- end }}
{{ range .Pkg.Declared }}
	inspector.MustDeclareMethods((*{{ .Type }})(nil){{ range .Names }}, "{{ . }}"{{ end }})
{{- end }}
{{ range .Pkg.Methods }}
	inspector.MustRegisterMethod((*{{ .Type }})(nil), inspector.MethodInfo{
		Name: "{{ .Name }}",
		ExceptionTypes: {{ quoteList .Exceptions }},
		ParameterTypes: {{ quoteList .Params }},
		ReturnType: {{ returnType .Results }},
		Modifiers: inspector.Private,
	})
{{- end }}
}
`))

// Render produces the registration file for pkg.
func Render(pkg *Package, inspectorPath string) ([]byte, error) {
	if inspectorPath == "" {
		inspectorPath = DefaultInspectorPath
	}
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Pkg           *Package
		InspectorPath string
	}{pkg, inspectorPath})
	if err != nil {
		return nil, errors.Wrapf(err, "render registry for %s", pkg.Path)
	}
	out, err := imports.Process(DefaultOutput, buf.Bytes(), &imports.Options{FormatOnly: true, Comments: true, TabIndent: true, TabWidth: 8})
	if err != nil {
		return nil, errors.Wrapf(err, "format registry for %s", pkg.Path)
	}
	return out, nil
}

func quoteList(items []string) string {
	if len(items) == 0 {
		return "nil"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
