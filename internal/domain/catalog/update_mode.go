package catalog

import "fmt"

// UpdateMode controls how fields absent from an update request are treated
type UpdateMode string

const (
	// UpdateModeReplace clears every updatable field the request omits
	UpdateModeReplace UpdateMode = "replace"
	// UpdateModeMerge leaves omitted fields unchanged
	UpdateModeMerge UpdateMode = "merge"
)

// ParseUpdateMode parses a configured update mode
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch UpdateMode(s) {
	case UpdateModeReplace, UpdateModeMerge:
		return UpdateMode(s), nil
	case "":
		return UpdateModeReplace, nil
	default:
		return "", fmt.Errorf("unknown update mode %q (want replace or merge)", s)
	}
}
