package restdoc

import (
	"fmt"
	"net/url"
)

// ResourceListing is the Swagger 1.x document that lists the API resources.
type ResourceListing struct {
	APIVersion     string   `json:"apiVersion"     yaml:"apiVersion"`
	SwaggerVersion string   `json:"swaggerVersion" yaml:"swaggerVersion"`
	BasePath       string   `json:"basePath"       yaml:"basePath"`
	APIs           []APIRef `json:"apis"           yaml:"apis"`
}

// APIDeclaration is the Swagger 1.x document that declares one resource.
type APIDeclaration struct {
	APIVersion     string `json:"apiVersion"     yaml:"apiVersion"`
	SwaggerVersion string `json:"swaggerVersion" yaml:"swaggerVersion"`
	BasePath       string `json:"basePath"       yaml:"basePath"`
	APIs           []API  `json:"apis"           yaml:"apis"`
}

// API describes the operations served under one path.
type API struct {
	Path        string         `json:"path"        yaml:"path"`
	Description string         `json:"description" yaml:"description"`
	Operations  []OperationDoc `json:"operations"  yaml:"operations"`
}

// OperationDoc is the declaration of one operation.
type OperationDoc struct {
	HTTPMethod     string          `json:"httpMethod"     yaml:"httpMethod"`
	Nickname       string          `json:"nickname"       yaml:"nickname"`
	Parameters     []Param         `json:"parameters"     yaml:"parameters"`
	Summary        string          `json:"summary"        yaml:"summary"`
	Notes          string          `json:"notes"          yaml:"notes"`
	ResponseClass  string          `json:"responseClass"  yaml:"responseClass"`
	ErrorResponses []ErrorResponse `json:"errorResponses" yaml:"errorResponses"`
}

// NewOperationDoc renders an operation for an API declaration.
func NewOperationDoc(op *Operation) OperationDoc {
	errs := op.Errors()
	if errs == nil {
		errs = []ErrorResponse{}
	}
	return OperationDoc{
		HTTPMethod:     op.HTTPMethod(),
		Nickname:       op.Name(),
		Parameters:     op.Params(),
		Summary:        op.Summary(),
		Notes:          op.Notes(),
		ResponseClass:  op.ResponseClass(),
		ErrorResponses: errs,
	}
}

// Listing builds the resource listing. base is the URL the listing is served
// at and is reported as its basePath.
func (r *Router) Listing(base *url.URL) ResourceListing {
	apis := []APIRef{}
	for ref := range Discover(r.Routes()) {
		if !r.excluded(ref.Path) {
			apis = append(apis, ref)
		}
	}
	return ResourceListing{
		APIVersion:     r.apiVersion,
		SwaggerVersion: r.swaggerVersion,
		BasePath:       listingBase(base),
		APIs:           apis,
	}
}

// Declaration builds the API declaration of the resource identified by pathID.
// The configured base path is resolved against base. Unknown and excluded
// identifiers fail with ErrNotFound.
func (r *Router) Declaration(base *url.URL, pathID string) (*APIDeclaration, error) {
	if r.excluded(pathID) {
		return nil, fmt.Errorf("api %q excluded: %w", pathID, ErrNotFound)
	}

	res, err := Resolve(r.Routes(), pathID)
	if err != nil {
		return nil, err
	}
	if res.Fallback != nil {
		r.logger.Warn("placeholders left unnamed", "path_id", pathID, "err", res.Fallback)
	}

	ops := make([]OperationDoc, 0, len(res.Operations))
	for _, op := range res.Operations {
		if r.enabled(op) {
			ops = append(ops, NewOperationDoc(op))
		}
	}

	return &APIDeclaration{
		APIVersion:     r.apiVersion,
		SwaggerVersion: r.swaggerVersion,
		BasePath:       declarationBase(base, r.basePath),
		APIs: []API{{
			Path:        res.Path,
			Description: res.Description,
			Operations:  ops,
		}},
	}, nil
}

func listingBase(base *url.URL) string {
	if base == nil {
		return ""
	}
	u := url.URL{Scheme: base.Scheme, Host: base.Host, Path: base.Path}
	return u.String()
}

func declarationBase(base *url.URL, basePath string) string {
	ref, err := url.Parse(basePath)
	if err != nil {
		return basePath
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
