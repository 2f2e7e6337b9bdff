package restdoc

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI3 renders the documented routes as an OpenAPI 3 document. It is a best
// effort view of the same model the Swagger documents show and is not validated.
func OpenAPI3(routes []Route, info *openapi3.Info) *openapi3.T {
	return buildOpenAPI3(routes, info,
		func(*Operation) bool { return true },
		func(string) bool { return false },
	)
}

// OpenAPI3 renders the router's documented routes, keeping only enabled methods
// and leaving out excluded namespaces.
func (r *Router) OpenAPI3() *openapi3.T {
	info := &openapi3.Info{Title: r.title, Version: r.apiVersion}
	return buildOpenAPI3(r.Routes(), info, r.enabled, r.excluded)
}

func buildOpenAPI3(routes []Route, info *openapi3.Info, keep func(*Operation) bool, skip func(string) bool) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths:   openapi3.Paths{},
	}

	for ref := range Discover(routes) {
		if skip(ref.Path) {
			continue
		}
		res, err := Resolve(routes, ref.Path)
		if err != nil {
			continue
		}
		path, err := CanonicalPath(res.Route.Pattern, res.Params)
		if err != nil {
			continue
		}
		key := "/" + path
		if _, ok := doc.Paths[key]; ok {
			continue
		}

		item := &openapi3.PathItem{Description: res.Description}
		for _, op := range res.Operations {
			method := op.HTTPMethod()
			if !keep(op) || !standardMethod(method) || item.GetOperation(method) != nil {
				continue
			}
			item.SetOperation(method, openAPIOperation(ref.Path, op, res.Params))
		}
		doc.Paths[key] = item
	}

	return doc
}

// openAPIOperation renders op. Path parameters follow placeholders, the names
// in the path template; operation arguments outside the template are dropped.
func openAPIOperation(pathID string, op *Operation, placeholders []string) *openapi3.Operation {
	o := openapi3.NewOperation()
	o.OperationID = pathID + "_" + op.Name()
	o.Summary = op.Summary()
	o.Description = op.Notes()

	for _, name := range placeholders {
		param := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
		if p, ok := op.Param(name); ok && p.Location == LocationPath {
			param = param.WithDescription(p.Description).WithSchema(paramSchema(p.DataType))
		}
		o.AddParameter(param)
	}

	form := openapi3.NewObjectSchema()
	for _, p := range op.Params() {
		schema := paramSchema(p.DataType)
		switch p.Location {
		case LocationQuery:
			o.AddParameter(openapi3.NewQueryParameter(p.Name).
				WithDescription(p.Description).
				WithRequired(p.Required).
				WithSchema(schema))
		case LocationForm:
			schema.Description = p.Description
			form.WithProperty(p.Name, schema)
			if p.Required {
				form.Required = append(form.Required, p.Name)
			}
		}
	}
	if len(form.Properties) > 0 {
		body := openapi3.NewRequestBody().
			WithRequired(true).
			WithSchema(form, []string{"application/x-www-form-urlencoded"})
		o.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	desc := op.ResponseClass()
	if desc == "" {
		desc = http.StatusText(http.StatusOK)
	}
	o.AddResponse(http.StatusOK, openapi3.NewResponse().WithDescription(desc))
	for _, e := range op.Errors() {
		status := statusCode(e.Code)
		if status == 0 {
			continue
		}
		reason := e.Reason
		if reason == "" {
			reason = http.StatusText(status)
		}
		o.AddResponse(status, openapi3.NewResponse().WithDescription(reason))
	}
	delete(o.Responses, "default")

	for k, v := range op.Extras() {
		if !strings.HasPrefix(k, "x-") {
			continue
		}
		if o.Extensions == nil {
			o.Extensions = make(map[string]any)
		}
		o.Extensions[k] = v
	}

	return o
}

func paramSchema(dataType string) *openapi3.Schema {
	switch strings.ToLower(dataType) {
	case "int", "integer", "long":
		return openapi3.NewIntegerSchema()
	case "float", "double", "number":
		return openapi3.NewFloat64Schema()
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	case "array", "list":
		return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	default:
		return openapi3.NewStringSchema()
	}
}

func standardMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// statusNames maps status texts squeezed to one lower-case word ("notfound") to
// their code.
var statusNames = sync.OnceValue(func() map[string]int {
	names := make(map[string]int)
	for code := 100; code < 600; code++ {
		if text := http.StatusText(code); text != "" {
			names[squeeze(text)] = code
		}
	}
	return names
})

// statusCode reads an error code as a numeric HTTP status or a status name such
// as "NotFound". It returns 0 for anything else.
func statusCode(code string) int {
	if n, err := strconv.Atoi(code); err == nil {
		if n >= 100 && n < 600 {
			return n
		}
		return 0
	}
	return statusNames()[squeeze(code)]
}

func squeeze(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\'':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
