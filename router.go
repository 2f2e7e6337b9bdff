package restdoc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// SwaggerVersion is the Swagger version reported by the documents.
const SwaggerVersion = "1.1.15"

// DefaultEnabledMethods are the operation names documented unless
// WithEnabledMethods says otherwise.
var DefaultEnabledMethods = []string{"get", "post", "put", "patch", "delete"}

// Router is the route registry of an application. It dispatches requests through
// an http.ServeMux and serves the API documents of the documented routes. It
// implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware

	mu     sync.RWMutex
	routes []Route

	title          string
	apiVersion     string
	swaggerVersion string
	basePath       string
	enabledMethods []string
	excludes       []string

	logger *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTitle sets the API title used in the OpenAPI 3 document.
func WithTitle(title string) RouterOption {
	return func(r *Router) {
		r.title = title
	}
}

// WithAPIVersion sets the apiVersion reported by the documents.
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithSwaggerVersion overrides the reported Swagger version.
func WithSwaggerVersion(version string) RouterOption {
	return func(r *Router) {
		r.swaggerVersion = version
	}
}

// WithBasePath sets the base path of API declarations. It is resolved against
// the URL of the request for the document. Default "/".
func WithBasePath(path string) RouterOption {
	return func(r *Router) {
		r.basePath = path
	}
}

// WithEnabledMethods sets the operation names that API declarations include.
func WithEnabledMethods(methods ...string) RouterOption {
	return func(r *Router) {
		r.enabledMethods = methods
	}
}

// WithExcludeNamespaces hides path identifiers starting with any of the prefixes
// from the documents.
func WithExcludeNamespaces(prefixes ...string) RouterOption {
	return func(r *Router) {
		r.excludes = append(r.excludes, prefixes...)
	}
}

// WithLogger sets the logger for registration and document warnings.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		title:          "API",
		swaggerVersion: SwaggerVersion,
		basePath:       "/",
		enabledMethods: DefaultEnabledMethods,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Handle registers h for pattern. Each "%s" placeholder must fill a whole path
// segment and becomes a ServeMux wildcard. An ArgsHandler receives the
// placeholder values in order; a "{name...}" wildcard contributes one value per
// remaining segment. h must be an ArgsHandler or an http.Handler; Handle panics
// otherwise, or when the pattern is invalid.
func (r *Router) Handle(pattern string, h any) {
	r.handle(Route{Pattern: pattern, Handler: h}, nil)
}

// HandleRoute is like Handle and keeps rt.Params for naming the placeholders in
// the documents.
func (r *Router) HandleRoute(rt Route) {
	r.handle(rt, nil)
}

// Routes returns a snapshot of the registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := http.Handler(r.mux)
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	r.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (r *Router) handle(rt Route, mw []Middleware) {
	pattern, wcs, err := muxPattern(rt.Pattern)
	if err != nil {
		panic("restdoc: " + err.Error())
	}

	var handler http.Handler
	switch h := rt.Handler.(type) {
	case ArgsHandler:
		handler = argsHandler(h, wcs)
	case http.Handler:
		handler = h
	default:
		panic(fmt.Sprintf("restdoc: handler for %q is %T, not an http.Handler or ArgsHandler", rt.Pattern, rt.Handler))
	}
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}

	if len(operations(rt.Handler)) > 0 {
		if _, err := PathID(rt.Pattern); err != nil {
			r.logger.Warn("documented route left out of the listing", "pattern", rt.Pattern, "err", err)
		}
	}

	r.addRoute(rt, pattern, handler)
}

// addRoute registers the handler with the mux and records the route for the
// documents.
func (r *Router) addRoute(rt Route, pattern string, handler http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mux.Handle(pattern, handler)
	r.routes = append(r.routes, rt)
}

func argsHandler(h ArgsHandler, wcs []wildcard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		args := make([]string, 0, len(wcs))
		for _, wc := range wcs {
			v := req.PathValue(wc.name)
			if wc.rest {
				if v != "" {
					args = append(args, strings.Split(v, "/")...)
				}
				continue
			}
			args = append(args, v)
		}
		h.ServeArgs(w, req, args)
	})
}

func (r *Router) enabled(op *Operation) bool {
	return slices.ContainsFunc(r.enabledMethods, func(m string) bool {
		return strings.EqualFold(m, op.Name())
	})
}

func (r *Router) excluded(pathID string) bool {
	return slices.ContainsFunc(r.excludes, func(prefix string) bool {
		return prefix != "" && strings.HasPrefix(pathID, prefix)
	})
}
