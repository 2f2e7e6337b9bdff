package restdoc

import (
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/bjaus/restdoc/docstring"
)

// Location is where an operation reads a parameter from.
type Location string

// Parameter locations.
const (
	LocationPath  Location = "path"
	LocationQuery Location = "query"
	LocationForm  Location = "form"
)

// Param describes one parameter of an operation.
type Param struct {
	Name        string   `json:"name"                  yaml:"name"`
	Required    bool     `json:"required"              yaml:"required"`
	Location    Location `json:"paramType"             yaml:"paramType"`
	DataType    string   `json:"dataType"              yaml:"dataType"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// ErrorResponse documents an error an operation may answer with.
type ErrorResponse struct {
	Code   string `json:"code"   yaml:"code"`
	Reason string `json:"reason" yaml:"reason"`
}

// Operation is a handler method bound together with its API metadata. It is
// immutable once Bind returns.
type Operation struct {
	name string
	fn   reflect.Value
	sig  signature
	args []string

	params        map[string]*Param
	summary       string
	notes         string
	responseClass string
	errors        []ErrorResponse
	extras        map[string]any
	diagnostics   []docstring.Diagnostic
}

// Name returns the method name the operation was bound under.
func (o *Operation) Name() string { return o.name }

// HTTPMethod returns the upper-cased name.
func (o *Operation) HTTPMethod() string { return strings.ToUpper(o.name) }

// Arguments returns the positional path argument names in declaration order.
func (o *Operation) Arguments() []string { return slices.Clone(o.args) }

// HasVarArgs reports whether the handler takes a variadic ...string tail.
func (o *Operation) HasVarArgs() bool { return o.sig.varArgs }

// HasKeywordArgs reports whether the handler takes url.Values.
func (o *Operation) HasKeywordArgs() bool { return o.sig.keywords }

// Params returns copies of the parameter descriptors sorted by name.
func (o *Operation) Params() []Param {
	out := make([]Param, 0, len(o.params))
	for _, name := range slices.Sorted(maps.Keys(o.params)) {
		out = append(out, *o.params[name])
	}
	return out
}

// Param returns the named parameter descriptor.
func (o *Operation) Param(name string) (Param, bool) {
	p, ok := o.params[name]
	if !ok {
		return Param{}, false
	}
	return *p, true
}

func (o *Operation) Summary() string       { return o.summary }
func (o *Operation) Notes() string         { return o.notes }
func (o *Operation) ResponseClass() string { return o.responseClass }

// Errors returns the documented error responses in declaration order.
func (o *Operation) Errors() []ErrorResponse { return slices.Clone(o.errors) }

// Extra returns a pass-through option given to Bind with WithExtra.
func (o *Operation) Extra(key string) (any, bool) {
	v, ok := o.extras[key]
	return v, ok
}

// Extras returns all pass-through options.
func (o *Operation) Extras() map[string]any { return maps.Clone(o.extras) }

// Diagnostics returns the problems found in the doc comment. They never fail
// binding.
func (o *Operation) Diagnostics() []docstring.Diagnostic { return slices.Clone(o.diagnostics) }

// Call invokes the handler. args feeds the positional path arguments in order and
// any values beyond them go to the variadic tail. A handler taking url.Values
// receives the parsed query and form values of r.
func (o *Operation) Call(w http.ResponseWriter, r *http.Request, args []string) error {
	if len(args) < len(o.args) {
		return Errorf(http.StatusBadRequest, "%s: missing path argument %q", o.name, o.args[len(args)])
	}

	in := make([]reflect.Value, 0, 3+len(args))
	in = append(in, reflect.ValueOf(w), reflect.ValueOf(r))
	for _, a := range args[:len(o.args)] {
		in = append(in, reflect.ValueOf(a))
	}

	if o.sig.keywords {
		if err := r.ParseForm(); err != nil {
			return Errorf(http.StatusBadRequest, "parse form: %v", err)
		}
		in = append(in, reflect.ValueOf(r.Form))
	}

	if o.sig.varArgs {
		for _, a := range args[len(o.args):] {
			in = append(in, reflect.ValueOf(a))
		}
	}

	out := o.fn.Call(in)
	if len(out) == 0 {
		return nil
	}
	err, _ := out[0].Interface().(error)
	return err
}

// param returns the descriptor for name, creating an empty one on first use.
func (o *Operation) param(name string) *Param {
	p, ok := o.params[name]
	if !ok {
		p = &Param{Name: name}
		o.params[name] = p
	}
	return p
}
