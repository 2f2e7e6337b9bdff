package main

import (
	"bytes"
	"go/format"
	"path/filepath"
	"text/template"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

var resourceTemplate = template.Must(template.New("resource").Parse(`// Code generated by restdocgen. DO NOT EDIT.

package {{.Package}}

import "github.com/bjaus/restdoc"

// Resource returns the documented resource of {{.Type}}.
func ({{.Recv}} {{if .Pointer}}*{{end}}{{.Type}}) Resource() *restdoc.Resource {
	return restdoc.NewResource({{printf "%q" .Description}},
{{- range .Operations}}
		restdoc.MustBind({{printf "%q" .Name}}, {{$.Recv}}.{{.Method}},
{{- if .Arguments}}
			restdoc.WithArguments({{range $i, $a := .Arguments}}{{if $i}}, {{end}}{{printf "%q" $a}}{{end}}),
{{- end}}
{{- if .Doc}}
			restdoc.WithDoc({{printf "%q" .Doc}}),
{{- end}}
{{- if .Comment}}
			restdoc.WithComment({{printf "%q" .Comment}}),
{{- end}}
		),
{{- end}}
	)
}
`))

// render returns the path and gofmt'd source of the file generated for res.
func render(res resourceDesc) (string, []byte, error) {
	var buf bytes.Buffer
	if err := resourceTemplate.Execute(&buf, res); err != nil {
		return "", nil, errors.Wrapf(err, "execute template for %s", res.Type)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return "", nil, errors.Wrapf(err, "format source for %s", res.Type)
	}

	path := filepath.Join(res.dir, strcase.ToSnake(res.Type)+generatedSuffix)
	return path, src, nil
}
