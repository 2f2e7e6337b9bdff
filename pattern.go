package restdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Route pairs a URL pattern with its handler. Placeholders are written "%s" or
// as ServeMux wildcards "{name}" and "{name...}".
type Route struct {
	Pattern string
	Handler any
	// Params names the placeholders in order. When empty the path arguments of
	// the handler's first operation are used.
	Params []string
}

func isWildcard(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' && seg != "{$}"
}

func isPlaceholder(seg string) bool {
	return seg == "%s" || isWildcard(seg)
}

// segments splits a pattern into path segments, dropping empty ones and the
// ServeMux end anchor.
func segments(pattern string) []string {
	var out []string
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "" || seg == "{$}" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// PathID derives the short identifier of a pattern by joining its literal
// segments with "_": "/users/%s/posts" becomes "users_posts".
func PathID(pattern string) (string, error) {
	var lits []string
	for _, seg := range segments(pattern) {
		if !isPlaceholder(seg) {
			lits = append(lits, seg)
		}
	}
	if len(lits) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoLiteralSegment, pattern)
	}
	return strings.Join(lits, "_"), nil
}

func countPlaceholders(pattern string) int {
	n := 0
	for _, seg := range segments(pattern) {
		if isWildcard(seg) {
			n++
			continue
		}
		n += strings.Count(seg, "%s")
	}
	return n
}

// CanonicalPath fills the pattern's placeholders in order with {name} and strips
// the leading slash: "/users/%s" with "user_id" becomes "users/{user_id}".
func CanonicalPath(pattern string, names []string) (string, error) {
	if n := countPlaceholders(pattern); n != len(names) {
		return "", fmt.Errorf("%w: %q has %d placeholders, got %d names",
			ErrArgumentMismatch, pattern, n, len(names))
	}

	segs := segments(pattern)
	i := 0
	for j, seg := range segs {
		if isWildcard(seg) {
			segs[j] = "{" + names[i] + "}"
			i++
			continue
		}
		for strings.Contains(segs[j], "%s") {
			segs[j] = strings.Replace(segs[j], "%s", "{"+names[i]+"}", 1)
			i++
		}
	}
	return strings.Join(segs, "/"), nil
}

type wildcard struct {
	name string
	rest bool
}

// muxPattern rewrites "%s" placeholders as ServeMux wildcards named arg0, arg1, ...
// and returns the wildcards in order.
func muxPattern(pattern string) (string, []wildcard, error) {
	if !strings.HasPrefix(pattern, "/") {
		return "", nil, fmt.Errorf("pattern %q must start with /", pattern)
	}

	segs := strings.Split(pattern, "/")
	var wcs []wildcard
	for j, seg := range segs {
		switch {
		case seg == "%s":
			name := "arg" + strconv.Itoa(len(wcs))
			segs[j] = "{" + name + "}"
			wcs = append(wcs, wildcard{name: name})
		case isWildcard(seg):
			name := seg[1 : len(seg)-1]
			rest := strings.HasSuffix(name, "...")
			wcs = append(wcs, wildcard{name: strings.TrimSuffix(name, "..."), rest: rest})
		case strings.Contains(seg, "%s"):
			return "", nil, fmt.Errorf("pattern %q: placeholder must fill a whole segment", pattern)
		}
	}
	return strings.Join(segs, "/"), wcs, nil
}
