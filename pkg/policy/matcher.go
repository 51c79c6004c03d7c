package policy

import "github.com/aretw0/warden/pkg/domain"

// Decision is the outcome of a permission check.
type Decision string

const (
	// Allow means an allow rule matched and no deny rule did.
	Allow Decision = "allow"
	// Deny means a deny rule matched. Deny dominates allow.
	Deny Decision = "deny"
	// Pass means no rule applied; the caller's own default policy decides.
	Pass Decision = "pass"
)

// Decide resolves a tool invocation against a mode's permission rules.
//
// Pass is returned when perms is nil, when the tool falls outside the
// recognized categories, or when no configured rule matches. Deny rules
// are evaluated first and any match wins outright, even if an allow
// rule also matches.
func Decide(tool string, args map[string]any, perms *domain.Permissions) Decision {
	if perms == nil {
		return Pass
	}

	category := categoryOf(tool)
	if category == CategoryNone {
		return Pass
	}

	value, ok := resolveArgument(category, args)
	if !ok {
		return Pass
	}

	if anyMatch(perms.Deny, tool, category, value) {
		return Deny
	}
	if anyMatch(perms.Allow, tool, category, value) {
		return Allow
	}
	return Pass
}

func anyMatch(rules []string, tool string, category Category, value string) bool {
	for _, raw := range rules {
		r, ok := parseRule(raw)
		if !ok {
			continue
		}
		if r.matches(tool, category, value) {
			return true
		}
	}
	return false
}
