package restdoc

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/bjaus/restdoc/docstring"
)

// Option configures an operation at bind time.
type Option func(*bindConfig)

type bindConfig struct {
	summary       string
	notes         string
	responseClass string
	errors        []ErrorResponse
	args          []string
	formArgs      []string
	doc           string
	comment       string
	extras        map[string]any
}

// WithSummary sets the summary. An @summary field in the doc comment overrides it.
func WithSummary(s string) Option {
	return func(c *bindConfig) {
		c.summary = s
	}
}

// WithNotes sets the notes. An @note field in the doc comment overrides it.
func WithNotes(s string) Option {
	return func(c *bindConfig) {
		c.notes = s
	}
}

// WithResponseClass sets the response class. An @rtype field overrides it.
func WithResponseClass(s string) Option {
	return func(c *bindConfig) {
		c.responseClass = s
	}
}

// WithErrors declares error responses. @raise fields are appended after them.
func WithErrors(errs ...ErrorResponse) Option {
	return func(c *bindConfig) {
		c.errors = append(c.errors, errs...)
	}
}

// WithArguments names the handler's positional string parameters, in order.
// Each becomes a required path parameter.
func WithArguments(names ...string) Option {
	return func(c *bindConfig) {
		c.args = append(c.args, names...)
	}
}

// WithFormArguments declares required form parameters.
func WithFormArguments(names ...string) Option {
	return func(c *bindConfig) {
		c.formArgs = append(c.formArgs, names...)
	}
}

// WithDoc sets the structured doc comment of the handler.
func WithDoc(text string) Option {
	return func(c *bindConfig) {
		c.doc = text
	}
}

// WithComment sets the comment written directly above the handler. It is the
// preferred summary source when neither WithSummary nor @summary give one.
func WithComment(text string) Option {
	return func(c *bindConfig) {
		c.comment = text
	}
}

// WithExtra attaches a pass-through value retrievable with Operation.Extra.
func WithExtra(key string, value any) Option {
	return func(c *bindConfig) {
		if c.extras == nil {
			c.extras = make(map[string]any)
		}
		c.extras[key] = value
	}
}

// Bind binds fn as the operation name with metadata from opts and from the doc
// comment given with WithDoc.
//
// fn must have the shape
//
//	func(http.ResponseWriter, *http.Request, <string>..., [url.Values], [...string]) [error]
//
// and WithArguments must name each positional string parameter. Any other shape
// fails with ErrSignature.
func Bind(name string, fn any, opts ...Option) (*Operation, error) {
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return bind(name, fn, &cfg)
}

// MustBind is like Bind but panics on error. It suits package-level handler
// tables built at program start.
func MustBind(name string, fn any, opts ...Option) *Operation {
	op, err := Bind(name, fn, opts...)
	if err != nil {
		panic(err)
	}
	return op
}

func bind(name string, fn any, cfg *bindConfig) (*Operation, error) {
	if name == "" {
		return nil, fmt.Errorf("bind: %w: empty operation name", ErrSignature)
	}

	v, sig, err := inspect(fn)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", name, err)
	}
	if len(cfg.args) != sig.positional {
		return nil, fmt.Errorf("bind %s: %w: %d argument names for %d string parameters",
			name, ErrSignature, len(cfg.args), sig.positional)
	}
	if dup := firstDuplicate(cfg.args); dup != "" {
		return nil, fmt.Errorf("bind %s: %w: duplicate argument %q", name, ErrSignature, dup)
	}

	op := &Operation{
		name:          name,
		fn:            v,
		sig:           sig,
		args:          append([]string(nil), cfg.args...),
		params:        make(map[string]*Param, len(cfg.args)+len(cfg.formArgs)),
		summary:       cfg.summary,
		notes:         cfg.notes,
		responseClass: cfg.responseClass,
		errors:        append([]ErrorResponse(nil), cfg.errors...),
		extras:        maps.Clone(cfg.extras),
	}

	for _, a := range cfg.args {
		op.params[a] = &Param{Name: a, Required: true, Location: LocationPath, DataType: "string"}
	}
	for _, a := range cfg.formArgs {
		op.params[a] = &Param{Name: a, Required: true, Location: LocationForm, DataType: "string"}
	}

	doc := docstring.Parse(cfg.doc)
	op.diagnostics = doc.Diagnostics
	for _, f := range doc.Fields {
		op.apply(f)
	}

	for _, p := range op.params {
		if p.Location == "" {
			p.Location = LocationQuery
		}
		if p.DataType == "" {
			p.DataType = "string"
		}
	}

	if op.summary == "" {
		op.summary = strings.TrimSpace(cfg.comment)
	}
	if op.summary == "" {
		op.summary = doc.Summary()
	}
	if op.notes == "" {
		op.notes = doc.Body
	}
	op.summary = strings.TrimSpace(op.summary)
	op.notes = strings.TrimSpace(op.notes)

	return op, nil
}

// rebind returns a copy of o calling fn. Metadata is shared; operations are
// immutable.
func (o *Operation) rebind(name string, fn any) (*Operation, error) {
	if name != o.name {
		return nil, fmt.Errorf("bind %s: %w: declaration already bound as %q", name, ErrSignature, o.name)
	}
	v, sig, err := inspect(fn)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", name, err)
	}
	if sig != o.sig {
		return nil, fmt.Errorf("bind %s: %w: handler shape differs from the declared one", name, ErrSignature)
	}
	cp := *o
	cp.fn = v
	return &cp, nil
}

// apply merges one doc comment field into the operation. Unknown tags are
// ignored.
func (o *Operation) apply(f docstring.Field) {
	switch f.Tag {
	case "param":
		p := o.param(f.Arg)
		p.Description = f.Body
		if p.Location == "" {
			p.Location = LocationQuery
		}
	case "type":
		if f.Body != "" {
			o.param(f.Arg).DataType = f.Body
		}
	case "rtype":
		if f.Arg != "" {
			o.responseClass = f.Arg
		} else {
			o.responseClass = f.Body
		}
	case "raise", "raises", "except":
		o.errors = append(o.errors, ErrorResponse{Code: f.Arg, Reason: f.Body})
	case "note":
		o.notes = f.Body
	case "summary":
		o.summary = f.Body
	}
}

type signature struct {
	positional int
	keywords   bool
	varArgs    bool
}

var (
	writerType  = reflect.TypeFor[http.ResponseWriter]()
	requestType = reflect.TypeFor[*http.Request]()
	valuesType  = reflect.TypeFor[url.Values]()
	errorType   = reflect.TypeFor[error]()
	stringType  = reflect.TypeFor[string]()
	stringsType = reflect.TypeFor[[]string]()
)

// inspect checks the handler shape and counts its positional string parameters.
func inspect(fn any) (reflect.Value, signature, error) {
	var sig signature

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return v, sig, fmt.Errorf("%w: %T is not a function", ErrSignature, fn)
	}

	t := v.Type()
	if t.NumIn() < 2 || t.In(0) != writerType || t.In(1) != requestType {
		return v, sig, fmt.Errorf("%w: %s must start with (http.ResponseWriter, *http.Request)", ErrSignature, t)
	}

	n := t.NumIn()
	if t.IsVariadic() {
		if t.In(n-1) != stringsType {
			return v, sig, fmt.Errorf("%w: %s: variadic parameter must be ...string", ErrSignature, t)
		}
		sig.varArgs = true
		n--
	}
	if n > 2 && t.In(n-1) == valuesType {
		sig.keywords = true
		n--
	}
	for i := 2; i < n; i++ {
		if t.In(i) != stringType {
			return v, sig, fmt.Errorf("%w: %s: parameter %d is %s, not string", ErrSignature, t, i, t.In(i))
		}
	}
	sig.positional = n - 2

	switch {
	case t.NumOut() == 0:
	case t.NumOut() == 1 && t.Out(0) == errorType:
	default:
		return v, sig, fmt.Errorf("%w: %s must return nothing or error", ErrSignature, t)
	}

	return v, sig, nil
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
