package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/warden/pkg/domain"
	"github.com/aretw0/warden/pkg/policy"
)

func pathArgs(path string) map[string]any {
	return map[string]any{"file_path": path}
}

func TestDecide_NoPermissions(t *testing.T) {
	got := policy.Decide("Write", pathArgs("src/main.go"), nil)
	assert.Equal(t, policy.Pass, got)
}

func TestDecide_UnrecognizedTool(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"Task(anything)"}}
	got := policy.Decide("Task", map[string]any{"prompt": "do it"}, perms)
	assert.Equal(t, policy.Pass, got)
}

func TestDecide_DenyDominatesAllow(t *testing.T) {
	perms := &domain.Permissions{
		Allow: []string{"Write(src/**)"},
		Deny:  []string{"Write(src/protected/**)"},
	}

	assert.Equal(t, policy.Deny, policy.Decide("Write", pathArgs("src/protected/x"), perms))
	assert.Equal(t, policy.Allow, policy.Decide("Write", pathArgs("src/other.ts"), perms))
}

func TestDecide_GlobContainsSemantics(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"Write(src/**)"}}

	assert.Equal(t, policy.Deny, policy.Decide("Write", pathArgs("/project/src/foo.ts"), perms))
	assert.Equal(t, policy.Pass, policy.Decide("Write", pathArgs("/project/test/foo.ts"), perms))
}

func TestDecide_AbsolutePatternStaysAnchored(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"Read(/etc/**)"}}

	assert.Equal(t, policy.Deny, policy.Decide("Read", pathArgs("/etc/passwd"), perms))
	assert.Equal(t, policy.Pass, policy.Decide("Read", pathArgs("/home/user/etc/passwd"), perms))
}

func TestDecide_ToolNameIsCaseSensitive(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"write(src/**)"}}
	assert.Equal(t, policy.Pass, policy.Decide("Write", pathArgs("src/foo.ts"), perms))
}

func TestDecide_MissingPathArgument(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"Write(src/**)"}}
	assert.Equal(t, policy.Pass, policy.Decide("Write", map[string]any{}, perms))
	assert.Equal(t, policy.Pass, policy.Decide("Write", nil, perms))
}

func TestDecide_AlternatePathKeys(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"LS(secrets/**)", "NotebookEdit(research/**)"}}

	assert.Equal(t, policy.Deny,
		policy.Decide("LS", map[string]any{"path": "secrets/keys"}, perms))
	assert.Equal(t, policy.Deny,
		policy.Decide("NotebookEdit", map[string]any{"notebook_path": "research/train.ipynb"}, perms))
}

func TestDecide_CommandPrefix(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"Bash(npm test*)"}}

	assert.Equal(t, policy.Allow, policy.Decide("Bash", map[string]any{"command": "npm test:unit"}, perms))
	assert.Equal(t, policy.Allow, policy.Decide("Bash", map[string]any{"command": "npm test"}, perms))
	assert.Equal(t, policy.Pass, policy.Decide("Bash", map[string]any{"command": "npm build"}, perms))
}

func TestDecide_CommandExact(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"Bash(go vet ./...)"}}

	assert.Equal(t, policy.Allow, policy.Decide("Bash", map[string]any{"command": "go vet ./..."}, perms))
	assert.Equal(t, policy.Pass, policy.Decide("Bash", map[string]any{"command": "go vet ./... -json"}, perms))
}

func TestDecide_DomainWildcardExcludesBase(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"WebFetch(domain:*.github.com)"}}

	assert.Equal(t, policy.Allow,
		policy.Decide("WebFetch", map[string]any{"url": "https://api.github.com/x"}, perms))
	assert.Equal(t, policy.Pass,
		policy.Decide("WebFetch", map[string]any{"url": "https://github.com/x"}, perms))
}

func TestDecide_DomainExact(t *testing.T) {
	perms := &domain.Permissions{Deny: []string{"WebFetch(domain:internal.corp.example)"}}

	assert.Equal(t, policy.Deny,
		policy.Decide("WebFetch", map[string]any{"url": "https://internal.corp.example/admin"}, perms))
	assert.Equal(t, policy.Pass,
		policy.Decide("WebFetch", map[string]any{"url": "https://public.corp.example/"}, perms))
}

func TestDecide_DomainIgnoresPortAndCase(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"WebFetch(domain:*.github.com)"}}

	assert.Equal(t, policy.Allow,
		policy.Decide("WebFetch", map[string]any{"url": "https://API.GitHub.com:8443/x"}, perms))
}

func TestDecide_UntaggedDomainPatternNeverMatches(t *testing.T) {
	perms := &domain.Permissions{Allow: []string{"WebFetch(*.github.com)"}}

	assert.Equal(t, policy.Pass,
		policy.Decide("WebFetch", map[string]any{"url": "https://api.github.com/x"}, perms))
}

func TestDecide_MalformedRulesAreSilent(t *testing.T) {
	perms := &domain.Permissions{
		Deny: []string{
			"Write",          // no pattern
			"Write(src/**",   // unclosed
			"(src/**)",       // no tool name
			"",               // empty
			"Write(src/**)x", // trailing junk
		},
	}
	assert.Equal(t, policy.Pass, policy.Decide("Write", pathArgs("src/foo.ts"), perms))
}

func TestDecide_FirstMatchingDenyWinsOverLaterAllow(t *testing.T) {
	perms := &domain.Permissions{
		Allow: []string{"Bash(git *)"},
		Deny:  []string{"Bash(git push*)"},
	}

	assert.Equal(t, policy.Deny, policy.Decide("Bash", map[string]any{"command": "git push origin main"}, perms))
	assert.Equal(t, policy.Allow, policy.Decide("Bash", map[string]any{"command": "git status"}, perms))
}
