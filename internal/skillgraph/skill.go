package skillgraph

import "strings"

// Category groups skills by their role on the sphere grid.
type Category string

const (
	CategoryCombat   Category = "combat"
	CategoryMagic    Category = "magic"
	CategorySupport  Category = "support"
	CategorySpecial  Category = "special"
	CategoryAdvanced Category = "advanced"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryCombat,
		CategoryMagic,
		CategorySupport,
		CategorySpecial,
		CategoryAdvanced,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryCombat:
		return "Combat"
	case CategoryMagic:
		return "Magic"
	case CategorySupport:
		return "Support"
	case CategorySpecial:
		return "Special"
	case CategoryAdvanced:
		return "Advanced"
	default:
		return string(c)
	}
}

// IsKnown reports whether c is one of the declared categories.
func (c Category) IsKnown() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Tier is a skill's position in a progressive power sequence
// (Fire, Fira, Firaga, ...).
type Tier int

const (
	TierUnknown Tier = iota // Not set; costs as TierBase
	TierBase
	TierSecond
	TierThird
	TierFourth
)

// String returns the tier label used in dataset files.
func (t Tier) String() string {
	switch t {
	case TierBase:
		return "base"
	case TierSecond:
		return "second"
	case TierThird:
		return "third"
	case TierFourth:
		return "fourth"
	default:
		return "unknown"
	}
}

// ParseTier converts a dataset label back into a Tier.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base", "1":
		return TierBase
	case "second", "2":
		return TierSecond
	case "third", "3":
		return TierThird
	case "fourth", "4":
		return TierFourth
	default:
		return TierUnknown
	}
}

// Skill represents a single learnable node in the graph.
type Skill struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Level       int
	Tier        Tier

	// XPRequired and Cluster are derived by Build.
	XPRequired int
	Cluster    string
}

// Connection is a directed edge: From is a prerequisite of To.
type Connection struct {
	From string
	To   string
}

// ClusterOf derives the descriptive cluster tag from an ID prefix
// ("lulu-fire" -> "lulu"). IDs without a separator are their own cluster.
func ClusterOf(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
