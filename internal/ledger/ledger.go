package ledger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/store"
)

// Options configures optional ledger collaborators.
type Options struct {
	// Events receives one event per mutation. Nil disables event logging.
	Events store.EventRepo

	// Logger receives persistence warnings. Nil discards them.
	Logger *slog.Logger

	// Now overrides the clock used for Event timestamps.
	Now func() time.Time
}

// Ledger owns every learner's XP balance and mastered set.
// All methods are safe for concurrent use.
type Ledger struct {
	graph  *skillgraph.Graph
	repo   store.LearnerRepo
	events store.EventRepo
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	starters map[string]Learner
	order    []string
	learners map[string]*Learner
	subs     []func(Event)
}

// New creates a ledger over graph. Learners are loaded from repo; when the
// repo is empty or unreadable they are recreated from starters and written
// back. A nil repo keeps everything in memory.
func New(ctx context.Context, graph *skillgraph.Graph, starters []Learner, repo store.LearnerRepo, opts Options) *Ledger {
	l := &Ledger{
		graph:    graph,
		repo:     repo,
		events:   opts.Events,
		logger:   opts.Logger,
		now:      opts.Now,
		starters: make(map[string]Learner, len(starters)),
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.now == nil {
		l.now = time.Now
	}

	var starterOrder []string
	for _, s := range starters {
		if _, dup := l.starters[s.ID]; dup {
			continue
		}
		l.starters[s.ID] = s.normalize()
		starterOrder = append(starterOrder, s.ID)
	}

	loaded := l.load(ctx)
	if loaded == nil {
		l.resetAllLocked(starterOrder)
		l.persist(ctx)
		return l
	}

	l.learners = make(map[string]*Learner, len(loaded))
	for _, learner := range loaded {
		if _, dup := l.learners[learner.ID]; dup {
			continue
		}
		l.learners[learner.ID] = &learner
		l.order = append(l.order, learner.ID)
	}

	// Starters added since the data was saved join with their snapshot.
	added := false
	for _, id := range starterOrder {
		if _, ok := l.learners[id]; !ok {
			s := l.starters[id].clone()
			l.learners[id] = &s
			l.order = append(l.order, id)
			added = true
		}
	}
	if added {
		l.persist(ctx)
	}
	return l
}

// load returns nil when the repo has nothing usable.
func (l *Ledger) load(ctx context.Context) []Learner {
	if l.repo == nil {
		return nil
	}
	records, err := l.repo.Load(ctx)
	if err != nil {
		l.logger.Warn("learner data unreadable, rebuilding from starter snapshot", "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}
	return fromRecords(records)
}

// LearnSkill spends the skill's XP cost and marks it mastered.
// On any precondition failure the learner is left unchanged.
func (l *Ledger) LearnSkill(ctx context.Context, learnerID, skillID string) (Learner, error) {
	l.mu.Lock()

	learner, ok := l.learners[learnerID]
	if !ok {
		l.mu.Unlock()
		return Learner{}, &NotFoundError{Kind: "learner", ID: learnerID}
	}
	skill, ok := l.graph.Skill(skillID)
	if !ok {
		l.mu.Unlock()
		return Learner{}, &NotFoundError{Kind: "skill", ID: skillID}
	}
	if learner.HasMastered(skillID) {
		l.mu.Unlock()
		return Learner{}, &AlreadyMasteredError{LearnerID: learnerID, SkillID: skillID}
	}
	if learner.CurrentXP < skill.XPRequired {
		l.mu.Unlock()
		return Learner{}, &InsufficientFundsError{
			LearnerID: learnerID,
			SkillID:   skillID,
			Required:  skill.XPRequired,
			Available: learner.CurrentXP,
		}
	}

	learner.CurrentXP -= skill.XPRequired
	learner.addSkill(skillID)
	updated := learner.clone()

	l.persist(ctx)
	ev := Event{
		Type:         store.LedgerEventLearned,
		LearnerID:    learnerID,
		SkillID:      skillID,
		Cost:         skill.XPRequired,
		BalanceAfter: updated.CurrentXP,
		At:           l.now(),
	}
	subs := l.subscribers()
	l.mu.Unlock()

	l.emit(ctx, ev, subs)
	return updated, nil
}

// Reset restores one learner to their starter snapshot.
func (l *Ledger) Reset(ctx context.Context, learnerID string) (Learner, error) {
	l.mu.Lock()

	starter, ok := l.starters[learnerID]
	if !ok {
		l.mu.Unlock()
		return Learner{}, &NotFoundError{Kind: "learner", ID: learnerID}
	}

	restored := starter.clone()
	if _, exists := l.learners[learnerID]; !exists {
		l.order = append(l.order, learnerID)
	}
	l.learners[learnerID] = &restored
	updated := restored.clone()

	l.persist(ctx)
	ev := Event{
		Type:         store.LedgerEventReset,
		LearnerID:    learnerID,
		BalanceAfter: updated.CurrentXP,
		At:           l.now(),
	}
	subs := l.subscribers()
	l.mu.Unlock()

	l.emit(ctx, ev, subs)
	return updated, nil
}

// ResetAll discards all progress and recreates learners from starters.
func (l *Ledger) ResetAll(ctx context.Context) []Learner {
	l.mu.Lock()

	order := make([]string, 0, len(l.starters))
	for _, id := range l.order {
		if _, ok := l.starters[id]; ok {
			order = append(order, id)
		}
	}
	for id := range l.starters {
		if !containsID(order, id) {
			order = append(order, id)
		}
	}
	l.resetAllLocked(order)
	l.persist(ctx)

	result := l.snapshotLocked()
	var evs []Event
	for _, learner := range result {
		evs = append(evs, Event{
			Type:         store.LedgerEventReset,
			LearnerID:    learner.ID,
			BalanceAfter: learner.CurrentXP,
			At:           l.now(),
		})
	}
	subs := l.subscribers()
	l.mu.Unlock()

	for _, ev := range evs {
		l.emit(ctx, ev, subs)
	}
	return result
}

// Learner returns a copy of one learner.
func (l *Ledger) Learner(id string) (Learner, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	learner, ok := l.learners[id]
	if !ok {
		return Learner{}, false
	}
	return learner.clone(), true
}

// Learners returns copies of all learners in load order.
func (l *Ledger) Learners() []Learner {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Subscribe registers fn to be called after every successful mutation.
// fn runs on the mutating goroutine after the ledger lock is released.
func (l *Ledger) Subscribe(fn func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

func (l *Ledger) resetAllLocked(order []string) {
	l.learners = make(map[string]*Learner, len(order))
	l.order = l.order[:0]
	for _, id := range order {
		s := l.starters[id].clone()
		l.learners[id] = &s
		l.order = append(l.order, id)
	}
}

func (l *Ledger) snapshotLocked() []Learner {
	result := make([]Learner, 0, len(l.order))
	for _, id := range l.order {
		result = append(result, l.learners[id].clone())
	}
	return result
}

func (l *Ledger) subscribers() []func(Event) {
	return slices.Clone(l.subs)
}

// persist writes the full learner list. Failures are logged and the
// in-memory state is kept.
func (l *Ledger) persist(ctx context.Context) {
	if l.repo == nil {
		return
	}
	if err := l.repo.Save(ctx, toRecords(l.snapshotLocked())); err != nil {
		l.logger.Warn("failed to persist learners", "error", err)
	}
}

func (l *Ledger) emit(ctx context.Context, ev Event, subs []func(Event)) {
	if l.events != nil {
		err := l.events.AppendLedgerEvent(ctx, store.LedgerEventData{
			Type:         ev.Type,
			LearnerID:    ev.LearnerID,
			SkillID:      ev.SkillID,
			Cost:         ev.Cost,
			BalanceAfter: ev.BalanceAfter,
		})
		if err != nil {
			l.logger.Warn("failed to record ledger event", "type", ev.Type, "learner", ev.LearnerID, "error", err)
		}
	}
	for _, fn := range subs {
		fn(ev)
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
