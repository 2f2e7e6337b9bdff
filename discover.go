package restdoc

import (
	"iter"
	"strings"
)

// APIRef is one entry of the resource listing.
type APIRef struct {
	Path        string `json:"path"        yaml:"path"`
	Description string `json:"description" yaml:"description"`
}

// Discover yields the path identifier and description of every documented
// route, in registry order. Routes whose handler exposes no operation, and
// patterns without a literal segment, are skipped. The sequence reads routes
// lazily and can be iterated any number of times.
func Discover(routes []Route) iter.Seq[APIRef] {
	return func(yield func(APIRef) bool) {
		for _, rt := range routes {
			if len(operations(rt.Handler)) == 0 {
				continue
			}
			id, err := PathID(rt.Pattern)
			if err != nil {
				continue
			}
			if !yield(APIRef{Path: id, Description: describe(rt.Handler)}) {
				return
			}
		}
	}
}

func operations(h any) []*Operation {
	d, ok := h.(Documented)
	if !ok {
		return nil
	}
	var ops []*Operation
	for _, op := range d.Operations() {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

func describe(h any) string {
	if d, ok := h.(Describer); ok {
		return strings.TrimSpace(d.Description())
	}
	return ""
}
