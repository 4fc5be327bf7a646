// Package recommend ranks the skills a learner can pick up next.
//
// Ranking is deterministic. Reason text is produced afterwards by a
// Reasoner and never influences order or priority.
package recommend

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

// DefaultMaxResults caps the list returned by Recommendations.
const DefaultMaxResults = 10

// Priority buckets a recommendation by skill level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one learnable-next skill.
type Recommendation struct {
	Skill    skillgraph.Skill
	Cost     int
	Priority Priority
	Reason   string

	// OnGoalPath is set when the skill lies on the shortest route from
	// the learner's mastered set to the requested goal.
	OnGoalPath bool
}

// LearnerSource resolves learners. *ledger.Ledger satisfies it.
type LearnerSource interface {
	Learner(id string) (ledger.Learner, bool)
}

// Service produces recommendations over one graph.
type Service struct {
	graph      *skillgraph.Graph
	learners   LearnerSource
	reasoner   Reasoner
	logger     *slog.Logger
	maxResults int
	highMax    int
	lowMin     int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxResults overrides DefaultMaxResults. Values below 1 are ignored.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithThresholds sets the level bounds for the priority buckets: level
// <= highMax is high, level >= lowMin is low, anything between is medium.
func WithThresholds(highMax, lowMin int) Option {
	return func(s *Service) {
		s.highMax, s.lowMin = highMax, lowMin
	}
}

// WithReasoner replaces the default TemplateReasoner.
func WithReasoner(r Reasoner) Option {
	return func(s *Service) { s.reasoner = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a recommendation service.
func NewService(graph *skillgraph.Graph, learners LearnerSource, opts ...Option) *Service {
	s := &Service{
		graph:      graph,
		learners:   learners,
		maxResults: DefaultMaxResults,
		highMax:    2,
		lowMin:     5,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reasoner == nil {
		s.reasoner = NewTemplateReasoner(nil)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// PriorityFor buckets a skill level.
func (s *Service) PriorityFor(level int) Priority {
	switch {
	case level <= s.highMax:
		return PriorityHigh
	case level >= s.lowMin:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Recommendations returns up to MaxResults skills adjacent to the
// learner's mastered set. With a known goalID, skills on the shortest
// path toward the goal are promoted to high priority and listed first.
// An unknown learner or an empty frontier yields an empty slice.
func (s *Service) Recommendations(ctx context.Context, learnerID, goalID string) []Recommendation {
	learner, ok := s.learners.Learner(learnerID)
	if !ok {
		return []Recommendation{}
	}

	mastered := learner.MasteredSet()
	frontier := s.graph.AvailableNextSkills(mastered)
	if len(frontier) == 0 {
		return []Recommendation{}
	}

	onPath := s.goalPath(learner.MasteredSkills, goalID)

	recs := make([]Recommendation, 0, len(frontier))
	for _, id := range frontier {
		skill, ok := s.graph.Skill(id)
		if !ok {
			continue
		}
		rec := Recommendation{
			Skill:    skill,
			Cost:     skill.XPRequired,
			Priority: s.PriorityFor(skill.Level),
		}
		if onPath[id] {
			rec.OnGoalPath = true
			rec.Priority = PriorityHigh
		}
		recs = append(recs, rec)
	}

	slices.SortFunc(recs, compareRecommendations)
	if len(recs) > s.maxResults {
		recs = recs[:s.maxResults]
	}

	reasons := s.reasoner.Reasons(ctx, learner, recs)
	for i := range recs {
		if i < len(reasons) {
			recs[i].Reason = reasons[i]
		}
	}

	s.logger.Debug("recommendations",
		"learner", learnerID,
		"goal", goalID,
		"frontier", len(frontier),
		"returned", len(recs),
		"on_path", len(onPath),
	)
	return recs
}

// goalPath returns the IDs on the shortest outgoing path from any
// mastered skill to goalID. Ties between equally short paths go to the
// lexically smallest source.
func (s *Service) goalPath(mastered []string, goalID string) map[string]bool {
	if goalID == "" || !s.graph.Has(goalID) {
		return nil
	}

	var best []string
	for _, from := range mastered {
		path := s.graph.ShortestPath(from, goalID)
		if len(path) == 0 {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	if best == nil {
		return nil
	}

	set := make(map[string]bool, len(best))
	for _, id := range best {
		set[id] = true
	}
	return set
}

func compareRecommendations(a, b Recommendation) int {
	if a.OnGoalPath != b.OnGoalPath {
		if a.OnGoalPath {
			return -1
		}
		return 1
	}
	if d := a.Priority.rank() - b.Priority.rank(); d != 0 {
		return d
	}
	if d := a.Cost - b.Cost; d != 0 {
		return d
	}
	return strings.Compare(a.Skill.ID, b.Skill.ID)
}
