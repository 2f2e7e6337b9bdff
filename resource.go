package restdoc

import (
	"net/http"
	"slices"
	"strings"
)

// Documented is implemented by handlers that expose bound operations. Discovery
// only lists handlers that implement it and return at least one operation.
type Documented interface {
	Operations() []*Operation
}

// Describer is optionally implemented by documented handlers to describe the
// resource they serve.
type Describer interface {
	Description() string
}

// ArgsHandler serves a request together with the values captured by the route's
// placeholders, in pattern order.
type ArgsHandler interface {
	ServeArgs(w http.ResponseWriter, r *http.Request, args []string)
}

// Resource groups the operations served under one URL pattern and dispatches
// requests to them by HTTP method.
type Resource struct {
	desc string
	ops  []*Operation
}

// NewResource returns a resource with the given description. Nil operations are
// skipped.
func NewResource(description string, ops ...*Operation) *Resource {
	res := &Resource{desc: description}
	for _, op := range ops {
		if op != nil {
			res.ops = append(res.ops, op)
		}
	}
	return res
}

// Description implements Describer.
func (res *Resource) Description() string { return res.desc }

// Operations implements Documented.
func (res *Resource) Operations() []*Operation { return slices.Clone(res.ops) }

// Operation returns the first operation bound for the HTTP method.
func (res *Resource) Operation(method string) (*Operation, bool) {
	for _, op := range res.ops {
		if strings.EqualFold(op.name, method) {
			return op, true
		}
	}
	return nil, false
}

// ServeArgs implements ArgsHandler. A method with no operation answers 405 with
// an Allow header; operation errors are written as problem details.
func (res *Resource) ServeArgs(w http.ResponseWriter, r *http.Request, args []string) {
	op, ok := res.Operation(r.Method)
	if !ok {
		w.Header().Set("Allow", strings.Join(res.allowed(), ", "))
		writeErrorResponse(w, Errorf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method))
		return
	}

	if err := op.Call(w, r, args); err != nil {
		writeErrorResponse(w, err)
	}
}

// ServeHTTP serves the resource without path arguments.
func (res *Resource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res.ServeArgs(w, r, nil)
}

func (res *Resource) allowed() []string {
	methods := make([]string, 0, len(res.ops))
	for _, op := range res.ops {
		methods = append(methods, op.HTTPMethod())
	}
	slices.Sort(methods)
	return slices.Compact(methods)
}
