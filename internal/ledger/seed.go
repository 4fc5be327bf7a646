package ledger

import (
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

type starterDef struct {
	id, name, role, department string
	root                       string
	xp                         int
}

var starterDefs = []starterDef{
	{"tidus", "Tidus", "Blitzball Ace", "Guardians", "tidus-attack", 600},
	{"yuna", "Yuna", "Summoner", "Summoners", "yuna-pray", 800},
	{"lulu", "Lulu", "Black Mage", "Guardians", "lulu-fire", 900},
	{"auron", "Auron", "Legendary Guardian", "Guardians", "auron-guard", 1200},
	{"wakka", "Wakka", "Blitzball Captain", "Guardians", "wakka-dark-attack", 500},
	{"kimahri", "Kimahri", "Ronso Warrior", "Guardians", "kimahri-focus", 700},
	{"rikku", "Rikku", "Al Bhed Thief", "Al Bhed", "rikku-steal", 650},
}

// SeedLearners returns the built-in starter learners. Each learner starts
// with their root skill plus every skill within steps hops of it, so the
// starter set looks like a plausible partly-walked grid. Roots missing
// from g are skipped.
func SeedLearners(g *skillgraph.Graph, steps int) []Learner {
	learners := make([]Learner, 0, len(starterDefs))
	for _, d := range starterDefs {
		var mastered []string
		if g.Has(d.root) {
			mastered = append(mastered, d.root)
			if steps > 0 {
				mastered = append(mastered, g.SkillsWithinSteps(d.root, steps)...)
			}
		}
		learners = append(learners, Learner{
			ID:             d.id,
			Name:           d.name,
			Role:           d.role,
			Department:     d.department,
			MasteredSkills: mastered,
			CurrentXP:      d.xp,
		}.normalize())
	}
	return learners
}
