package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/llm"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

// Reasoner phrases a justification for each recommendation. It returns
// one string per entry in recs, in the same order. Output is display
// text only.
type Reasoner interface {
	Reasons(ctx context.Context, learner ledger.Learner, recs []Recommendation) []string
}

var reasonTemplates = []string{
	"{skill} sits right next to what {name} already knows.",
	"A natural next step for a {role}.",
	"Rounds out {name}'s {category} repertoire.",
	"One node away on the grid, and worth {cost} XP of practice.",
	"Builds on skills {name} has already mastered.",
	"{skill} opens new paths for the {department} team.",
}

const goalPrefix = "On the way to your goal. "

// TemplateReasoner picks reasons pseudo-randomly from a fixed pool.
type TemplateReasoner struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTemplateReasoner uses src for its choices. A nil src seeds from the
// clock, so output varies between runs.
func NewTemplateReasoner(src rand.Source) *TemplateReasoner {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}
	return &TemplateReasoner{rnd: rand.New(src)}
}

func (t *TemplateReasoner) Reasons(_ context.Context, learner ledger.Learner, recs []Recommendation) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = t.reason(learner, rec)
	}
	return out
}

func (t *TemplateReasoner) reason(learner ledger.Learner, rec Recommendation) string {
	tmpl := reasonTemplates[t.rnd.IntN(len(reasonTemplates))]
	text := fillTemplate(tmpl, learner, rec)
	if rec.OnGoalPath {
		text = goalPrefix + text
	}
	return text
}

func fillTemplate(tmpl string, learner ledger.Learner, rec Recommendation) string {
	name := learner.Name
	if name == "" {
		name = learner.ID
	}
	role := learner.Role
	if role == "" {
		role = "learner"
	}
	dept := learner.Department
	if dept == "" {
		dept = "whole"
	}
	return strings.NewReplacer(
		"{skill}", rec.Skill.Name,
		"{name}", name,
		"{role}", role,
		"{department}", dept,
		"{category}", strings.ToLower(skillgraph.CategoryDisplayName(rec.Skill.Category)),
		"{cost}", fmt.Sprint(rec.Cost),
	).Replace(tmpl)
}

// reasonsSchema is the structured output requested from the model.
var reasonsSchema = &llm.Schema{
	Name:        "skill-reasons",
	Description: "One short justification per recommended skill.",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"reasons": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"skill_id": map[string]any{"type": "string"},
						"reason":   map[string]any{"type": "string", "minLength": 1},
					},
					"required": []any{"skill_id", "reason"},
				},
			},
		},
		"required": []any{"reasons"},
	},
}

const reasonsSystemPrompt = `You coach learners moving across a skill grid.
For each recommended skill, write one encouraging sentence (under 20 words)
explaining why it is a good next step for this learner. Mention the goal
when a skill is marked as on the goal path. Return JSON only.`

// LLMReasoner asks a model for reasons in a single request. Any failure,
// or any skill the model leaves out, falls back to Fallback.
type LLMReasoner struct {
	Provider llm.Provider
	Fallback Reasoner
	Logger   *slog.Logger

	// MaxTokens bounds the reply. Zero uses 1024.
	MaxTokens int

	// Timeout bounds the model call. Zero leaves ctx as is.
	Timeout time.Duration
}

func (r *LLMReasoner) Reasons(ctx context.Context, learner ledger.Learner, recs []Recommendation) []string {
	fallback := r.Fallback
	if fallback == nil {
		fallback = NewTemplateReasoner(nil)
	}
	out := fallback.Reasons(ctx, learner, recs)
	if len(recs) == 0 || r.Provider == nil {
		return out
	}

	byID, err := r.generate(ctx, learner, recs)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("LLM reasons unavailable, using templates", "error", err)
		}
		return out
	}
	for i, rec := range recs {
		if reason := strings.TrimSpace(byID[rec.Skill.ID]); reason != "" {
			out[i] = reason
		}
	}
	return out
}

func (r *LLMReasoner) generate(ctx context.Context, learner ledger.Learner, recs []Recommendation) (map[string]string, error) {
	maxTokens := r.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	resp, err := r.Provider.Generate(llm.WithPurpose(ctx, "recommend-reasons"), llm.Request{
		System:    reasonsSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: reasonsPrompt(learner, recs)}},
		Schema:    reasonsSchema,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reasons: %w", err)
	}

	var parsed struct {
		Reasons []struct {
			SkillID string `json:"skill_id"`
			Reason  string `json:"reason"`
		} `json:"reasons"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("decode reasons: %w", err)
	}

	byID := make(map[string]string, len(parsed.Reasons))
	for _, e := range parsed.Reasons {
		byID[e.SkillID] = e.Reason
	}
	return byID, nil
}

func reasonsPrompt(learner ledger.Learner, recs []Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learner: %s", learner.Name)
	if learner.Role != "" {
		fmt.Fprintf(&b, " (%s", learner.Role)
		if learner.Department != "" {
			fmt.Fprintf(&b, ", %s", learner.Department)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, "\nXP available: %d\nMastered: %s\n\nRecommended skills:\n",
		learner.CurrentXP, strings.Join(learner.MasteredSkills, ", "))
	for _, rec := range recs {
		fmt.Fprintf(&b, "- %s: %s [%s, level %d, %d XP, %s priority]",
			rec.Skill.ID, rec.Skill.Name, rec.Skill.Category, rec.Skill.Level, rec.Cost, rec.Priority)
		if rec.OnGoalPath {
			b.WriteString(" (on goal path)")
		}
		if rec.Skill.Description != "" {
			fmt.Fprintf(&b, " %s", rec.Skill.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
