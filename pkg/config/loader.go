// Package config loads and validates a warden project: the workflow
// definition plus per-mode overlays (instructions and permissions).
//
// Layout under the project root:
//
//	workflow.yaml              the workflow definition
//	modes/<id>.md              optional instructions for mode <id>
//	modes/<id>.permissions.json optional tool rules for mode <id>
//
// The definition is validated strictly (fail fast, first defect wins);
// overlays are best-effort and absorb every read or parse failure into
// "absent" so a broken overlay never takes the workflow down.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/warden/pkg/domain"
)

const (
	// WorkflowFile is the workflow definition filename under the root.
	WorkflowFile = "workflow.yaml"

	// ModesDir holds the per-mode overlay resources.
	ModesDir = "modes"
)

// Project is the immutable result of a successful Load.
type Project struct {
	Root     string
	Workflow *domain.Workflow
	Overlays map[string]domain.Overlay
}

// Overlay returns the overlay for a mode. Unknown modes get a zero
// overlay (nil instructions, nil permissions).
func (p *Project) Overlay(mode string) domain.Overlay {
	return p.Overlays[mode]
}

// Permissions returns the permissions of a mode, or nil when absent.
func (p *Project) Permissions(mode string) *domain.Permissions {
	return p.Overlays[mode].Permissions
}

// Load reads workflow.yaml under root, validates it, then resolves the
// per-mode overlays. Definition defects return *domain.ValidationError;
// overlay defects never error.
func Load(root string) (*Project, error) {
	path := filepath.Join(root, WorkflowFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var wf domain.Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := validate(&wf); err != nil {
		return nil, err
	}
	normalize(&wf)

	overlays := make(map[string]domain.Overlay, len(wf.Modes))
	for id := range wf.Modes {
		overlays[id] = loadOverlay(root, id)
	}

	return &Project{Root: root, Workflow: &wf, Overlays: overlays}, nil
}

// validate checks the definition in a fixed order and stops at the first
// defect, naming the offending identifier.
func validate(wf *domain.Workflow) error {
	if strings.TrimSpace(wf.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "workflow name is required"}
	}
	if strings.TrimSpace(wf.Default) == "" {
		return &domain.ValidationError{Field: "default", Reason: "initial mode is required"}
	}
	if len(wf.Modes) == 0 {
		return &domain.ValidationError{Field: "modes", Reason: "at least one mode is required"}
	}
	if !wf.HasMode(wf.Default) {
		return &domain.ValidationError{
			Field:  "default",
			Reason: fmt.Sprintf("initial mode %q is not defined in modes", wf.Default),
		}
	}
	for id, mode := range wf.Modes {
		for i, t := range mode.Transitions {
			field := fmt.Sprintf("modes.%s.transitions[%d]", id, i)
			if t.To == "" {
				return &domain.ValidationError{Field: field + ".to", Reason: "target mode is required"}
			}
			if strings.TrimSpace(t.Constraint) == "" {
				return &domain.ValidationError{
					Field:  field + ".constraint",
					Reason: fmt.Sprintf("transition %s -> %s has no constraint", id, t.To),
				}
			}
			if !wf.HasMode(t.To) {
				return &domain.ValidationError{
					Field:  field + ".to",
					Reason: fmt.Sprintf("target mode %q is not defined in modes", t.To),
				}
			}
		}
	}
	return nil
}

// normalize trims constraint text at the edges. Internal newlines are
// preserved; multi-line constraints are valid.
func normalize(wf *domain.Workflow) {
	for id, mode := range wf.Modes {
		for i, t := range mode.Transitions {
			mode.Transitions[i].Constraint = strings.TrimSpace(t.Constraint)
		}
		wf.Modes[id] = mode
	}
}

// loadOverlay best-effort-reads the instructions and permissions
// resources of one mode by naming convention.
func loadOverlay(root, id string) domain.Overlay {
	return domain.Overlay{
		Instructions: readInstructions(filepath.Join(root, ModesDir, id+".md")),
		Permissions:  readPermissions(filepath.Join(root, ModesDir, id+".permissions.json")),
	}
}

func readInstructions(path string) *string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		// Whitespace-only instructions normalize to absent.
		return nil
	}
	return &text
}

// permissionsFile mirrors the on-disk shape {"permissions": {...}}.
type permissionsFile struct {
	Permissions *domain.Permissions `json:"permissions"`
}

// readPermissions parses the permissions resource. The file is
// hand-edited, so comments and trailing commas are tolerated (JSONC).
// Any failure is absorbed into "no permissions".
func readPermissions(path string) *domain.Permissions {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var file permissionsFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil
	}
	return file.Permissions
}

// IsValidationError reports whether err is a definition defect, as
// opposed to an I/O failure reading the definition.
func IsValidationError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
