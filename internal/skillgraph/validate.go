package skillgraph

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on a dataset.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(skills []Skill, conns []Connection) error {
	var errs []string

	idSet := make(map[string]bool, len(skills))

	for _, s := range skills {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("skill %q has an empty ID", s.Name))
			continue
		}
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		idSet[s.ID] = true

		if s.Level <= 0 {
			errs = append(errs, fmt.Sprintf("skill %q: level must be > 0, got %d", s.ID, s.Level))
		}
		if !s.Category.IsKnown() {
			errs = append(errs, fmt.Sprintf("skill %q: unknown category %q", s.ID, s.Category))
		}
		if s.Tier == TierUnknown {
			errs = append(errs, fmt.Sprintf("skill %q: tier is not set", s.ID))
		}
	}

	for _, c := range conns {
		if c.From == c.To {
			errs = append(errs, fmt.Sprintf("connection %s -> %s is a self-loop", c.From, c.To))
		}
		if !idSet[c.From] {
			errs = append(errs, fmt.Sprintf("connection %s -> %s references nonexistent skill %q", c.From, c.To, c.From))
		}
		if !idSet[c.To] {
			errs = append(errs, fmt.Sprintf("connection %s -> %s references nonexistent skill %q", c.From, c.To, c.To))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
