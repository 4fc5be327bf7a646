package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/llm"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

type learnerMap map[string]ledger.Learner

func (m learnerMap) Learner(id string) (ledger.Learner, bool) {
	l, ok := m[id]
	return l, ok
}

// fixedReasoner returns the skill ID as the reason.
type fixedReasoner struct{}

func (fixedReasoner) Reasons(_ context.Context, _ ledger.Learner, recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = "because " + r.Skill.ID
	}
	return out
}

// starGraph: hub-a connects out to six spokes of varying level, and a
// chain hub-a -> path-b -> path-c -> path-goal.
func starGraph(t *testing.T) *skillgraph.Graph {
	t.Helper()
	skills := []skillgraph.Skill{
		{ID: "hub-a", Name: "Hub", Category: skillgraph.CategoryCombat, Level: 1, Tier: skillgraph.TierBase},
		{ID: "path-b", Name: "Path B", Category: skillgraph.CategoryCombat, Level: 4, Tier: skillgraph.TierBase},
		{ID: "path-c", Name: "Path C", Category: skillgraph.CategoryCombat, Level: 4, Tier: skillgraph.TierBase},
		{ID: "path-goal", Name: "Goal", Category: skillgraph.CategoryAdvanced, Level: 6, Tier: skillgraph.TierBase},
		{ID: "spoke-1", Name: "One", Category: skillgraph.CategoryCombat, Level: 1, Tier: skillgraph.TierBase},
		{ID: "spoke-2", Name: "Two", Category: skillgraph.CategorySupport, Level: 2, Tier: skillgraph.TierBase},
		{ID: "spoke-3", Name: "Three", Category: skillgraph.CategoryCombat, Level: 3, Tier: skillgraph.TierBase},
		{ID: "spoke-5", Name: "Five", Category: skillgraph.CategoryCombat, Level: 5, Tier: skillgraph.TierBase},
		{ID: "spoke-6", Name: "Six", Category: skillgraph.CategoryMagic, Level: 6, Tier: skillgraph.TierBase},
		{ID: "lone-z", Name: "Lonely", Category: skillgraph.CategoryCombat, Level: 1, Tier: skillgraph.TierBase},
	}
	conns := []skillgraph.Connection{
		{From: "hub-a", To: "path-b"},
		{From: "path-b", To: "path-c"},
		{From: "path-c", To: "path-goal"},
		{From: "hub-a", To: "spoke-1"},
		{From: "hub-a", To: "spoke-2"},
		{From: "spoke-3", To: "hub-a"},
		{From: "hub-a", To: "spoke-5"},
		{From: "hub-a", To: "spoke-6"},
	}
	g, err := skillgraph.Build(skills, conns, skillgraph.BuildOptions{Strict: true})
	require.NoError(t, err)
	return g
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	learners := learnerMap{
		"tidus":  {ID: "tidus", Name: "Tidus", MasteredSkills: []string{"hub-a"}, CurrentXP: 100},
		"lonely": {ID: "lonely", Name: "Lonely", MasteredSkills: []string{"lone-z"}},
		"nobody": {ID: "nobody", Name: "Nobody"},
	}
	opts = append([]Option{WithReasoner(fixedReasoner{})}, opts...)
	return NewService(starGraph(t), learners, opts...)
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Skill.ID
	}
	return out
}

func TestPriorityFor(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		level int
		want  Priority
	}{
		{1, PriorityHigh},
		{2, PriorityHigh},
		{3, PriorityMedium},
		{4, PriorityMedium},
		{5, PriorityLow},
		{9, PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.PriorityFor(tt.level), "level %d", tt.level)
	}
}

func TestRecommendations_OrderAndPriority(t *testing.T) {
	s := newTestService(t)
	recs := s.Recommendations(context.Background(), "tidus", "")

	// High (cost asc), medium (cost asc, then ID), low (cost asc).
	assert.Equal(t, []string{"spoke-1", "spoke-2", "spoke-3", "path-b", "spoke-5", "spoke-6"}, ids(recs))

	byID := make(map[string]Recommendation)
	for _, r := range recs {
		byID[r.Skill.ID] = r
		assert.Equal(t, r.Skill.XPRequired, r.Cost)
		assert.Equal(t, "because "+r.Skill.ID, r.Reason)
		assert.False(t, r.OnGoalPath)
	}
	assert.Equal(t, PriorityHigh, byID["spoke-1"].Priority)
	assert.Equal(t, PriorityMedium, byID["spoke-3"].Priority)
	assert.Equal(t, PriorityLow, byID["spoke-6"].Priority)
	assert.NotContains(t, byID, "path-c", "two hops away must not be recommended")
}

func TestRecommendations_Deterministic(t *testing.T) {
	s := newTestService(t)
	first := ids(s.Recommendations(context.Background(), "tidus", ""))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ids(s.Recommendations(context.Background(), "tidus", "")))
	}
}

func TestRecommendations_GoalPromotesPath(t *testing.T) {
	s := newTestService(t)
	recs := s.Recommendations(context.Background(), "tidus", "path-goal")

	require.NotEmpty(t, recs)
	assert.Equal(t, "path-b", recs[0].Skill.ID)
	assert.True(t, recs[0].OnGoalPath)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	for _, r := range recs[1:] {
		assert.False(t, r.OnGoalPath, r.Skill.ID)
	}
}

func TestRecommendations_UnreachableGoalUsesBaseOrder(t *testing.T) {
	s := newTestService(t)
	base := ids(s.Recommendations(context.Background(), "tidus", ""))

	for _, goal := range []string{"lone-z", "no-such-skill", "spoke-3"} {
		got := s.Recommendations(context.Background(), "tidus", goal)
		assert.Equal(t, base, ids(got), "goal %s", goal)
	}
}

func TestRecommendations_Empty(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		name    string
		learner string
	}{
		{"unknown learner", "seymour"},
		{"no mastered skills", "nobody"},
		{"isolated skill", "lonely"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := s.Recommendations(context.Background(), tt.learner, "")
			assert.NotNil(t, recs)
			assert.Empty(t, recs)
		})
	}
}

func TestRecommendations_Truncated(t *testing.T) {
	s := newTestService(t, WithMaxResults(3))
	recs := s.Recommendations(context.Background(), "tidus", "")
	assert.Equal(t, []string{"spoke-1", "spoke-2", "spoke-3"}, ids(recs))
}

func TestRecommendations_DefaultCapOnSeedGraph(t *testing.T) {
	g := skillgraph.SeedGraph()
	learners := ledger.SeedLearners(g, 2)
	src := learnerMap{}
	for _, l := range learners {
		src[l.ID] = l
	}
	s := NewService(g, src)

	for _, l := range learners {
		recs := s.Recommendations(context.Background(), l.ID, "")
		assert.LessOrEqual(t, len(recs), DefaultMaxResults)
		for _, r := range recs {
			assert.False(t, l.HasMastered(r.Skill.ID))
			assert.NotEmpty(t, r.Reason)
		}
	}
}

func TestTemplateReasoner_SeededIsRepeatable(t *testing.T) {
	s := newTestService(t)
	recs := s.Recommendations(context.Background(), "tidus", "path-goal")
	learner := ledger.Learner{ID: "tidus", Name: "Tidus", Role: "Striker", Department: "Guardians"}

	a := NewTemplateReasoner(rand.NewPCG(1, 2)).Reasons(context.Background(), learner, recs)
	b := NewTemplateReasoner(rand.NewPCG(1, 2)).Reasons(context.Background(), learner, recs)
	assert.Equal(t, a, b)
	require.Len(t, a, len(recs))

	assert.True(t, strings.HasPrefix(a[0], goalPrefix), "goal path reason should mention the goal: %q", a[0])
	for _, reason := range a {
		assert.NotContains(t, reason, "{")
	}
}

func TestLLMReasoner_UsesModelReasons(t *testing.T) {
	s := newTestService(t, WithMaxResults(2))
	recs := s.Recommendations(context.Background(), "tidus", "")
	require.Len(t, recs, 2)

	reply := fmt.Sprintf(`{"reasons":[{"skill_id":%q,"reason":"Cheap and close."}]}`, recs[0].Skill.ID)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reply)})
	r := &LLMReasoner{Provider: mock, Fallback: fixedReasoner{}}

	got := r.Reasons(context.Background(), ledger.Learner{ID: "tidus", Name: "Tidus"}, recs)
	assert.Equal(t, []string{"Cheap and close.", "because " + recs[1].Skill.ID}, got)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, "skill-reasons", call.Schema.Name)
	assert.Contains(t, call.Messages[0].Content, recs[0].Skill.ID)
}

func TestLLMReasoner_FallsBackOnError(t *testing.T) {
	s := newTestService(t, WithMaxResults(2))
	recs := s.Recommendations(context.Background(), "tidus", "")

	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")})
	r := &LLMReasoner{Provider: mock, Fallback: fixedReasoner{}}

	got := r.Reasons(context.Background(), ledger.Learner{ID: "tidus"}, recs)
	assert.Equal(t, []string{"because " + recs[0].Skill.ID, "because " + recs[1].Skill.ID}, got)
}

func TestLLMReasoner_InvalidReplyFallsBack(t *testing.T) {
	s := newTestService(t, WithMaxResults(1))
	recs := s.Recommendations(context.Background(), "tidus", "")

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reasons":"lots"}`)})
	r := &LLMReasoner{Provider: mock, Fallback: fixedReasoner{}}

	got := r.Reasons(context.Background(), ledger.Learner{ID: "tidus"}, recs)
	assert.Equal(t, []string{"because " + recs[0].Skill.ID}, got)
}

// stalledProvider never answers; it returns once ctx is done.
type stalledProvider struct{}

func (stalledProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledProvider) ModelID() string { return "stalled" }

func TestLLMReasoner_TimeoutFallsBack(t *testing.T) {
	s := newTestService(t, WithMaxResults(2))
	recs := s.Recommendations(context.Background(), "tidus", "")
	require.Len(t, recs, 2)

	r := &LLMReasoner{Provider: stalledProvider{}, Fallback: fixedReasoner{}, Timeout: 20 * time.Millisecond}

	ctx := context.Background()
	done := make(chan []string, 1)
	go func() { done <- r.Reasons(ctx, ledger.Learner{ID: "tidus"}, recs) }()

	select {
	case got := <-done:
		assert.Equal(t, []string{"because " + recs[0].Skill.ID, "because " + recs[1].Skill.ID}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("Reasons did not return after its timeout")
	}
	assert.NoError(t, ctx.Err(), "caller context must not be cancelled")
}

func TestService_WorksWithLedger(t *testing.T) {
	g := starGraph(t)
	l := ledger.New(context.Background(), g, []ledger.Learner{
		{ID: "tidus", MasteredSkills: []string{"hub-a"}, CurrentXP: 1000},
	}, nil, ledger.Options{})
	s := NewService(g, l, WithReasoner(fixedReasoner{}))

	before := ids(s.Recommendations(context.Background(), "tidus", ""))
	require.Contains(t, before, "path-b")

	_, err := l.LearnSkill(context.Background(), "tidus", "path-b")
	require.NoError(t, err)

	after := ids(s.Recommendations(context.Background(), "tidus", ""))
	assert.NotContains(t, after, "path-b")
	assert.Contains(t, after, "path-c", "learning path-b exposes its neighbour")
}
