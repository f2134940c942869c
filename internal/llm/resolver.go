package llm

import (
	"context"
	"strings"
)

// PreferredModels is the static priority order the resolver walks before
// falling back to whatever the catalog offers. Availability changes over
// time and by account tier, so these are preferences, not a fixed choice.
var PreferredModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

const generateAction = "generateContent"

// NoUsableModelError reports that every resolution strategy failed. It
// carries the identifiers that were considered so the caller can surface
// them in diagnostics.
type NoUsableModelError struct {
	Considered []string
}

func (e *NoUsableModelError) Error() string {
	if len(e.Considered) == 0 {
		return "llm: no usable model (catalog empty)"
	}
	return "llm: no usable model among " + strings.Join(e.Considered, ", ")
}

// ResolveModel walks the live catalog and picks one usable model name.
//
// Catalog names arrive as "models/<id>"; matching happens on the bare id.
// Experimental and preview variants never win a preferred-name match:
// they disappear from the catalog without notice.
func ResolveModel(models []ModelInfo, preferred []string) (string, error) {
	var usable []string
	for _, m := range models {
		if supportsGenerate(m) {
			usable = append(usable, strings.TrimPrefix(m.Name, "models/"))
		}
	}

	for _, want := range preferred {
		for _, id := range usable {
			if !matchesPreference(id, want) {
				continue
			}
			if isUnstable(id) {
				continue
			}
			return id, nil
		}
	}

	for _, id := range usable {
		if !isUnstable(id) {
			return id, nil
		}
	}
	return "", &NoUsableModelError{Considered: usable}
}

// ResolveModel picks a model for this request, re-reading the catalog every
// time. When the catalog call itself fails, the first preferred name is
// used directly and the generate call surfaces any real unavailability.
func (c *Client) ResolveModel(ctx context.Context) (string, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		if len(PreferredModels) > 0 {
			return PreferredModels[0], nil
		}
		return "", &NoUsableModelError{}
	}
	return ResolveModel(models, PreferredModels)
}

func supportsGenerate(m ModelInfo) bool {
	for _, a := range m.SupportedActions {
		if a == generateAction {
			return true
		}
	}
	return false
}

func matchesPreference(id, want string) bool {
	return id == want || strings.HasPrefix(id, want) || strings.Contains(id, want)
}

func isUnstable(id string) bool {
	return strings.Contains(id, "exp") || strings.Contains(id, "preview")
}
