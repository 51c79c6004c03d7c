package policy

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// domainTag marks a WebFetch pattern as a hostname match.
const domainTag = "domain:"

// rule is one parsed "Tool(pattern)" string.
type rule struct {
	tool    string
	pattern string
}

// parseRule splits "Tool(pattern)" into its parts. Anything that does
// not fit the grammar yields ok=false and the rule never matches.
func parseRule(raw string) (rule, bool) {
	open := strings.Index(raw, "(")
	if open <= 0 || !strings.HasSuffix(raw, ")") {
		return rule{}, false
	}
	return rule{
		tool:    raw[:open],
		pattern: raw[open+1 : len(raw)-1],
	}, true
}

// matches reports whether the rule applies to the given tool invocation.
// The tool name must match exactly; the pattern is interpreted per the
// tool's category.
func (r rule) matches(tool string, category Category, value string) bool {
	if r.tool != tool {
		return false
	}
	switch category {
	case CategoryPath:
		return pathGlobMatch(r.pattern, value)
	case CategoryCommand:
		return commandPrefixMatch(r.pattern, value)
	case CategoryDomain:
		return domainMatch(r.pattern, value)
	default:
		return false
	}
}

// pathGlobMatch matches a glob pattern against a file path with
// "contains" semantics: a relative pattern like "src/**" matches any
// path going through a src directory, not only one anchored at the
// root. Absolute patterns stay anchored.
func pathGlobMatch(pattern, path string) bool {
	pat := filepath.ToSlash(pattern)
	p := filepath.ToSlash(path)

	if ok, err := doublestar.Match(pat, p); err == nil && ok {
		return true
	}
	if !strings.HasPrefix(pat, "/") {
		if ok, err := doublestar.Match("**/"+pat, p); err == nil && ok {
			return true
		}
	}
	return false
}

// commandPrefixMatch supports exactly one wildcard form: a trailing "*"
// matching any command sharing the literal prefix. Without it the
// pattern requires exact equality.
func commandPrefixMatch(pattern, command string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(command, strings.TrimSuffix(pattern, "*"))
	}
	return command == pattern
}

// domainMatch matches a "domain:" tagged pattern against the hostname of
// a URL. "*.base" means any strict subdomain of base; the base domain
// itself is excluded. URL parse failure is a non-match.
func domainMatch(pattern, rawURL string) bool {
	if !strings.HasPrefix(pattern, domainTag) {
		return false
	}
	want := strings.ToLower(strings.TrimPrefix(pattern, domainTag))
	if want == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	if base, ok := strings.CutPrefix(want, "*."); ok {
		return host != base && strings.HasSuffix(host, "."+base)
	}
	return host == want
}
