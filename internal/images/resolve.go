package images

import (
	"regexp"
	"strings"
)

// schemeRE matches references that already carry a URL scheme
var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// Resolver turns image references from the API into loadable URLs
type Resolver struct {
	AssetsURL string
}

// NewResolver creates a resolver that prefixes relative references with
// assetsURL
func NewResolver(assetsURL string) Resolver {
	return Resolver{AssetsURL: strings.TrimRight(assetsURL, "/")}
}

// IsAbsolute reports whether ref is used as-is: it has a URL scheme
// (http:, https:, data:, ...) or is protocol-relative ("//host/x")
func IsAbsolute(ref string) bool {
	return schemeRE.MatchString(ref) || strings.HasPrefix(ref, "//")
}

// Resolve returns the URL for ref; empty refs stay empty
func (r Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if IsAbsolute(ref) {
		if strings.HasPrefix(ref, "//") {
			return "https:" + ref
		}
		return ref
	}
	if r.AssetsURL == "" {
		return "/" + strings.TrimLeft(ref, "/")
	}
	return r.AssetsURL + "/" + strings.TrimLeft(ref, "/")
}

// First resolves the first non-empty reference, or ""
func (r Resolver) First(refs []string) string {
	for _, ref := range refs {
		if u := r.Resolve(ref); u != "" {
			return u
		}
	}
	return ""
}
