// Package policy decides whether a tool invocation is allowed under a
// mode's permission rules.
//
// Decide is a pure function over the tool name, its raw argument map and
// the mode's allow/deny rule lists. Deny strictly dominates allow.
// Everything the matcher cannot understand -- unknown tools, malformed
// rule strings, missing arguments, unparsable URLs -- degrades to a
// silent non-match; the matcher never raises on bad configuration.
package policy
