package policy

import (
	"github.com/mitchellh/mapstructure"
)

// Category is the matching strategy a tool falls under.
type Category int

const (
	// CategoryNone marks tools the matcher does not recognize.
	CategoryNone Category = iota
	// CategoryPath covers file operations matched by glob.
	CategoryPath
	// CategoryCommand covers shell execution matched by prefix.
	CategoryCommand
	// CategoryDomain covers web fetches matched by hostname.
	CategoryDomain
)

// categoryOf maps a tool name to its matching category. Names are
// matched exactly and case-sensitively.
func categoryOf(tool string) Category {
	switch tool {
	case "Read", "Write", "Edit", "MultiEdit", "NotebookEdit", "LS":
		return CategoryPath
	case "Bash":
		return CategoryCommand
	case "WebFetch":
		return CategoryDomain
	default:
		return CategoryNone
	}
}

// rawArguments is the untyped payload shape shared by all tools. It is
// decoded once at the boundary; the matcher core never touches the map.
type rawArguments struct {
	FilePath     string `mapstructure:"file_path"`
	Path         string `mapstructure:"path"`
	NotebookPath string `mapstructure:"notebook_path"`
	Command      string `mapstructure:"command"`
	URL          string `mapstructure:"url"`
}

// resolveArgument extracts the single value relevant for a category,
// returning ok=false when the payload does not carry it. A missing or
// undecodable argument is a non-match, never an error.
func resolveArgument(category Category, args map[string]any) (string, bool) {
	var raw rawArguments
	if err := mapstructure.Decode(args, &raw); err != nil {
		return "", false
	}

	switch category {
	case CategoryPath:
		// Tools disagree on the key: file_path for most, path for LS,
		// notebook_path for notebook edits. First non-empty wins.
		for _, v := range []string{raw.FilePath, raw.Path, raw.NotebookPath} {
			if v != "" {
				return v, true
			}
		}
	case CategoryCommand:
		if raw.Command != "" {
			return raw.Command, true
		}
	case CategoryDomain:
		if raw.URL != "" {
			return raw.URL, true
		}
	}
	return "", false
}
