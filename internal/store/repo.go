package store

import (
	"context"
	"fmt"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// PersistenceError reports a storage read or write failure. Callers are
// expected to degrade (rebuild from static data) rather than abort.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// LearnerRecord is the persisted form of a learner.
type LearnerRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Role           string   `json:"role,omitempty"`
	Department     string   `json:"department,omitempty"`
	MasteredSkills []string `json:"masteredSkills"`
	CurrentXP      int      `json:"currentXp"`
}

// LearnerRepo persists the full learner list as a single value.
type LearnerRepo interface {
	// Load returns the saved learners, or nil if nothing has been saved.
	// Unreadable data is reported as *PersistenceError.
	Load(ctx context.Context) ([]LearnerRecord, error)

	// Save overwrites the saved learner list.
	Save(ctx context.Context, learners []LearnerRecord) error
}

// Ledger event types.
const (
	LedgerEventLearned = "learned"
	LedgerEventReset   = "reset"
)

// LedgerEventData captures one ledger mutation.
type LedgerEventData struct {
	Type         string
	LearnerID    string
	SkillID      string
	Cost         int
	BalanceAfter int
}

// LedgerEvent is a stored ledger event.
type LedgerEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LedgerEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLedgerEvent records a learn or reset.
	AppendLedgerEvent(ctx context.Context, data LedgerEventData) error

	// QueryLedgerEvents returns ledger events newest first. An empty
	// learnerID matches every learner.
	QueryLedgerEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]LedgerEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
}
