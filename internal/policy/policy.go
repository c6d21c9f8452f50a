package policy

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tracker-tv/phi-guard/models"
)

//go:embed rules/*.json
var embeddedRules embed.FS

// FromJSON decodes and validates a rule list. Patterns are compiled later by
// the scanner; only structure, enums and path globs are checked here.
// Category and severity are stored in canonical form.
func FromJSON(data []byte) ([]models.Rule, error) {
	var rules []models.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d: missing id", i)
		}
		if len(r.AllOf) == 0 {
			return nil, fmt.Errorf("rule %s: no patterns", r.ID)
		}
		category, ok := models.ParseCategory(string(r.Category))
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown category %q", r.ID, r.Category)
		}
		severity, ok := models.ParseSeverity(string(r.Severity))
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown severity %q", r.ID, r.Severity)
		}
		rules[i].Category, rules[i].Severity = category, severity
		for _, p := range r.Paths {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("rule %s: invalid path glob %q", r.ID, p)
			}
		}
	}
	return rules, nil
}

// Default returns the built-in rule pack.
func Default() ([]models.Rule, error) {
	data, err := embeddedRules.ReadFile("rules/default.json")
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}
