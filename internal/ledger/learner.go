package ledger

import (
	"slices"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/store"
)

// State is a skill's position relative to one learner.
type State string

const (
	StateNotMastered State = "not-mastered"
	StateMastered    State = "mastered"
)

// Learner holds one learner's XP balance and mastered skill set.
type Learner struct {
	ID         string
	Name       string
	Role       string
	Department string

	// MasteredSkills is sorted and free of duplicates.
	MasteredSkills []string
	CurrentXP      int
}

// HasMastered reports whether skillID is in the mastered set.
func (l Learner) HasMastered(skillID string) bool {
	_, found := slices.BinarySearch(l.MasteredSkills, skillID)
	return found
}

// StateOf returns the learner's state for skillID.
func (l Learner) StateOf(skillID string) State {
	if l.HasMastered(skillID) {
		return StateMastered
	}
	return StateNotMastered
}

// MasteredSet returns the mastered skills as a set.
func (l Learner) MasteredSet() map[string]bool {
	set := make(map[string]bool, len(l.MasteredSkills))
	for _, id := range l.MasteredSkills {
		set[id] = true
	}
	return set
}

func (l Learner) clone() Learner {
	l.MasteredSkills = slices.Clone(l.MasteredSkills)
	if l.MasteredSkills == nil {
		l.MasteredSkills = []string{}
	}
	return l
}

// normalize sorts and dedupes the mastered set and clamps the balance.
func (l Learner) normalize() Learner {
	l = l.clone()
	slices.Sort(l.MasteredSkills)
	l.MasteredSkills = slices.Compact(l.MasteredSkills)
	if l.CurrentXP < 0 {
		l.CurrentXP = 0
	}
	return l
}

// addSkill inserts skillID keeping the set sorted.
func (l *Learner) addSkill(skillID string) {
	i, found := slices.BinarySearch(l.MasteredSkills, skillID)
	if found {
		return
	}
	l.MasteredSkills = slices.Insert(l.MasteredSkills, i, skillID)
}

// Event describes a completed ledger mutation.
type Event struct {
	Type         string // store.LedgerEventLearned or store.LedgerEventReset
	LearnerID    string
	SkillID      string
	Cost         int
	BalanceAfter int
	At           time.Time
}

func toRecords(learners []Learner) []store.LearnerRecord {
	return slice.Map(learners, func(_ int, l Learner) store.LearnerRecord {
		return store.LearnerRecord{
			ID:             l.ID,
			Name:           l.Name,
			Role:           l.Role,
			Department:     l.Department,
			MasteredSkills: slices.Clone(l.MasteredSkills),
			CurrentXP:      l.CurrentXP,
		}
	})
}

func fromRecords(records []store.LearnerRecord) []Learner {
	return slice.Map(records, func(_ int, r store.LearnerRecord) Learner {
		return Learner{
			ID:             r.ID,
			Name:           r.Name,
			Role:           r.Role,
			Department:     r.Department,
			MasteredSkills: r.MasteredSkills,
			CurrentXP:      r.CurrentXP,
		}.normalize()
	})
}
