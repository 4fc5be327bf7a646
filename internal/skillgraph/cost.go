package skillgraph

import (
	"math"
	"strings"
)

// BasePerLevel is the XP cost of one skill level before multipliers.
const BasePerLevel = 50

var categoryMultipliers = map[Category]float64{
	CategoryCombat:   1.0,
	CategoryMagic:    1.2,
	CategorySupport:  0.8,
	CategorySpecial:  1.5,
	CategoryAdvanced: 2.0,
}

var tierMultipliers = map[Tier]float64{
	TierBase:   1.0,
	TierSecond: 1.5,
	TierThird:  2.5,
	TierFourth: 4.0,
}

// CategoryMultiplier returns the cost multiplier for a category.
// Unknown categories cost as 1.0.
func CategoryMultiplier(c Category) float64 {
	if m, ok := categoryMultipliers[c]; ok {
		return m
	}
	return 1.0
}

// TierMultiplier returns the cost multiplier for a progression tier.
// TierUnknown costs as TierBase.
func TierMultiplier(t Tier) float64 {
	if m, ok := tierMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// Cost computes the XP needed to learn a skill with the given attributes.
func Cost(level int, category Category, tier Tier) int {
	raw := float64(level) * BasePerLevel * CategoryMultiplier(category) * TierMultiplier(tier)
	return int(math.Round(raw))
}

// SkillCost computes Cost from a skill's own fields.
func SkillCost(s Skill) int {
	return Cost(s.Level, s.Category, s.Tier)
}

// tierSuffixes are checked in order; the longest progression wins.
var tierSuffixes = []struct {
	suffix string
	tier   Tier
}{
	{"ja", TierFourth},
	{"ga", TierThird},
	{"ra", TierSecond},
}

// baseTierNames end in a progression suffix without being a progression.
var baseTierNames = map[string]bool{
	"libra":  true,
	"aura":   true,
	"omega":  true,
	"ultima": true,
	"mega":   true,
	"sutra":  true,
}

// TierFromName guesses a tier from the -ra/-ga/-ja naming convention.
// It only exists to migrate datasets that predate the explicit Tier field.
// Known base names are matched on the final word, so "Holy Aura" stays
// base.
func TierFromName(name string) Tier {
	n := strings.ToLower(strings.TrimSpace(name))
	words := strings.Fields(n)
	if len(words) == 0 || baseTierNames[words[len(words)-1]] {
		return TierBase
	}
	for _, ts := range tierSuffixes {
		if strings.HasSuffix(n, ts.suffix) {
			return ts.tier
		}
	}
	return TierBase
}

// MigrateTiers fills TierUnknown entries from the skill name and
// returns the number of skills it changed.
func MigrateTiers(skills []Skill) int {
	changed := 0
	for i := range skills {
		if skills[i].Tier == TierUnknown {
			skills[i].Tier = TierFromName(skills[i].Name)
			changed++
		}
	}
	return changed
}
