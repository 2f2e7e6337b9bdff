package restdoc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Resolution is the documented route found for a path identifier.
type Resolution struct {
	Route       Route
	Path        string // canonical path without the leading slash
	Params      []string
	Description string
	Operations  []*Operation

	// Fallback is set when the placeholders could not be named and Path holds
	// the raw pattern instead. Params then holds arg0, arg1, ...
	Fallback error
}

// Resolve returns the first documented route whose path identifier is pathID.
// It fails with ErrNotFound when none matches. routes is never modified.
func Resolve(routes []Route, pathID string) (*Resolution, error) {
	for _, rt := range routes {
		ops := operations(rt.Handler)
		if len(ops) == 0 {
			continue
		}
		id, err := PathID(rt.Pattern)
		if err != nil || id != pathID {
			continue
		}

		res := &Resolution{
			Route:       rt,
			Description: describe(rt.Handler),
			Operations:  ops,
		}

		names := rt.Params
		if len(names) == 0 {
			names = ops[0].Arguments()
		}
		res.Path, res.Fallback = CanonicalPath(rt.Pattern, names)
		res.Params = slices.Clone(names)
		if res.Fallback != nil {
			res.Path = strings.TrimPrefix(rt.Pattern, "/")
			res.Params = make([]string, countPlaceholders(rt.Pattern))
			for i := range res.Params {
				res.Params[i] = "arg" + strconv.Itoa(i)
			}
		}
		return res, nil
	}
	return nil, fmt.Errorf("resolve %q: %w", pathID, ErrNotFound)
}
