// Package restdoc documents net/http handlers as Swagger 1.x APIs.
//
// A handler method is bound into an Operation together with its metadata. The
// metadata comes from options and from a structured doc comment:
//
//	op := restdoc.MustBind("get", users.Get,
//		restdoc.WithArguments("user_id"),
//		restdoc.WithDoc(`Fetch a user.
//
//		@param user_id the user id
//		@rtype User
//		@raise NotFound no such user`),
//	)
//
// Operations are grouped into a Resource, which dispatches requests by HTTP
// method, and registered on a Router:
//
//	r := restdoc.New(restdoc.WithAPIVersion("1.0"))
//	r.Handle("/users/%s", restdoc.NewResource("User accounts.", op))
//	r.ServeSwagger("/docs")
//
// ServeSwagger publishes the resource listing at /docs/swagger-api-docs and the
// declaration of each resource at /docs/swagger-api-spec/{path}, where path is
// the identifier built from the literal segments of the route pattern ("users"
// above). Discover and Resolve produce the same data from any route list
// without a Router.
//
// The cmd/restdocgen generator writes the Bind calls from doc comments marked
// with a //restdoc:api directive.
package restdoc
