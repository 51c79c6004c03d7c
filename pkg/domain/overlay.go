package domain

// Permissions holds the ordered allow/deny rule lists of one mode.
// Each rule is a raw "Tool(pattern)" string; parsing is lazy and
// malformed rules degrade to "never matches" in the policy matcher.
type Permissions struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Overlay carries the optional per-mode resources resolved at load time.
// Absence is explicit: a nil Instructions means no instructions resource
// existed (or it was blank), a nil Permissions means no usable permissions
// resource existed. Empty-string sentinels are never used downstream.
type Overlay struct {
	// Instructions is the mode's instructions text, or nil when absent.
	Instructions *string

	// Permissions are the mode's tool rules, or nil when absent or invalid.
	Permissions *Permissions
}
