package restdoc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServeOption configures the document endpoints.
type ServeOption func(*serveConfig)

type serveConfig struct {
	limit  *RateLimitConfig
	cors   *CORSConfig
	title  string
	apiKey string

	forwardedProto bool
}

// WithRateLimit limits requests to the document endpoints per client.
func WithRateLimit(cfg RateLimitConfig) ServeOption {
	return func(c *serveConfig) {
		c.limit = &cfg
	}
}

// WithCORS allows the given origins to fetch the documents, so a Swagger UI
// hosted elsewhere can read them.
func WithCORS(origins ...string) ServeOption {
	return func(c *serveConfig) {
		c.cors = &CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", "api_key"},
		}
	}
}

// WithUITitle sets the page title of the Swagger UI.
func WithUITitle(title string) ServeOption {
	return func(c *serveConfig) {
		c.title = title
	}
}

// WithAPIKey sets the api key the Swagger UI sends with its requests.
func WithAPIKey(key string) ServeOption {
	return func(c *serveConfig) {
		c.apiKey = key
	}
}

// WithForwardedProto takes the scheme of the document base paths from the
// X-Forwarded-Proto header. Use it only behind a proxy that sets the header.
func WithForwardedProto() ServeOption {
	return func(c *serveConfig) {
		c.forwardedProto = true
	}
}

// ServeSwagger registers the document endpoints under base:
//
//	GET <base>swagger-api-docs          resource listing
//	GET <base>swagger-api-spec/{path}   API declaration of one resource
//	GET <base>openapi.json              OpenAPI 3 rendering
//	GET <base>swagger-ui                Swagger UI page
//
// The JSON documents accept ?pretty for indented output with sorted keys and
// ?format=yaml for YAML. With WithCORS the paths also answer preflight
// requests.
func (r *Router) ServeSwagger(base string, opts ...ServeOption) {
	cfg := serveConfig{title: r.title}
	for _, opt := range opts {
		opt(&cfg)
	}

	prefix := "/" + strings.Trim(base, "/")
	if prefix != "/" {
		prefix += "/"
	}

	var mw []Middleware
	if cfg.cors != nil {
		mw = append(mw, CORS(*cfg.cors))
	}
	if cfg.limit != nil {
		mw = append(mw, RateLimit(*cfg.limit))
	}
	wrap := func(h http.Handler) http.Handler {
		for i := len(mw) - 1; i >= 0; i-- {
			h = mw[i](h)
		}
		return h
	}

	route := func(path string, h http.Handler) {
		h = wrap(h)
		r.mux.Handle("GET "+prefix+path, h)
		if cfg.cors != nil {
			r.mux.Handle("OPTIONS "+prefix+path, h)
		}
	}

	route("swagger-api-docs", r.serveListing(cfg))
	route("swagger-api-spec/{path}", r.serveDeclaration(cfg))
	route("openapi.json", http.HandlerFunc(r.serveOpenAPI))
	route("swagger-ui", uiHandler(prefix+"swagger-api-docs", cfg))
}

func (r *Router) serveListing(cfg serveConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeDocument(w, req, r.Listing(cfg.requestURL(req)))
	}
}

func (r *Router) serveDeclaration(cfg serveConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		decl, err := r.Declaration(cfg.requestURL(req), req.PathValue("path"))
		if err != nil {
			writeErrorResponse(w, err)
			return
		}
		writeDocument(w, req, decl)
	}
}

func (r *Router) serveOpenAPI(w http.ResponseWriter, req *http.Request) {
	writeDocument(w, req, r.OpenAPI3())
}

// requestURL returns the absolute URL the request was made to. The
// X-Forwarded-Proto header is read only with WithForwardedProto.
func (c serveConfig) requestURL(req *http.Request) *url.URL {
	u := *req.URL
	u.Host = req.Host
	u.Scheme = "http"
	if req.TLS != nil {
		u.Scheme = "https"
	}
	if c.forwardedProto {
		switch proto := strings.ToLower(req.Header.Get("X-Forwarded-Proto")); proto {
		case "http", "https":
			u.Scheme = proto
		}
	}
	return &u
}

// writeDocument encodes v as JSON, or as YAML when the request asks for it.
func writeDocument(w http.ResponseWriter, req *http.Request, v any) {
	q := req.URL.Query()

	var (
		body        []byte
		err         error
		contentType string
	)
	if strings.EqualFold(q.Get("format"), "yaml") {
		contentType = "application/yaml"
		body, err = encodeYAML(v)
	} else {
		contentType = "application/json"
		body, err = encodeJSON(v, pretty(q))
	}
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	//nolint:errcheck,gosec // best-effort write
	w.Write(body)
}

// pretty reports whether the pretty flag is set. A bare ?pretty counts as true.
func pretty(q url.Values) bool {
	vals, ok := q["pretty"]
	if !ok {
		return false
	}
	if vals[0] == "" {
		return true
	}
	on, err := strconv.ParseBool(vals[0])
	return err == nil && on
}

// encodeJSON encodes v compactly, or indented by four spaces with object keys
// sorted.
func encodeJSON(v any, indent bool) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil || !indent {
		return raw, err
	}

	generic, err := decodeGeneric(raw, true)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(generic, "", "    ")
}

// encodeYAML encodes v as YAML. Values with their own JSON encoding go through it
// so both formats carry the same fields.
func encodeYAML(v any) ([]byte, error) {
	if _, ok := v.(json.Marshaler); ok {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		generic, err := decodeGeneric(raw, false)
		if err != nil {
			return nil, err
		}
		v = generic
	}
	return yaml.Marshal(v)
}

// decodeGeneric decodes JSON into maps and slices. yaml.v3 has no json.Number
// support, so numbers stay float64 unless keepNumbers is set.
func decodeGeneric(raw []byte, keepNumbers bool) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if keepNumbers {
		dec.UseNumber()
	}
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}
