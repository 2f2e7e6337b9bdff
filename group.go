package restdoc

// Group registers routes under a shared prefix with shared middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupMiddleware adds middleware to the group. It wraps only the group's
// routes, inside the router's own middleware.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a new route group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group creates a nested group. It inherits the prefix and middleware of g.
func (g *Group) Group(prefix string, opts ...GroupOption) *Group {
	sub := &Group{
		router:     g.router,
		prefix:     g.prefix + prefix,
		middleware: append([]Middleware(nil), g.middleware...),
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// Handle registers h for the group prefix joined with pattern.
func (g *Group) Handle(pattern string, h any) {
	g.HandleRoute(Route{Pattern: pattern, Handler: h})
}

// HandleRoute registers rt with its pattern prefixed.
func (g *Group) HandleRoute(rt Route) {
	rt.Pattern = g.prefix + rt.Pattern
	g.router.handle(rt, g.middleware)
}
