package ledger

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a learner or skill ID that does not resolve.
type NotFoundError struct {
	Kind string // "learner" or "skill"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.ID)
}

// AlreadyMasteredError indicates an attempt to learn a skill twice.
type AlreadyMasteredError struct {
	LearnerID string
	SkillID   string
}

func (e *AlreadyMasteredError) Error() string {
	return fmt.Sprintf("skill already mastered: %q (learner %q)", e.SkillID, e.LearnerID)
}

// InsufficientFundsError indicates the learner cannot afford the skill.
type InsufficientFundsError struct {
	LearnerID string
	SkillID   string
	Required  int
	Available int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient XP to learn this skill: %q needs %d XP, learner %q has %d (short %d)",
		e.SkillID, e.Required, e.LearnerID, e.Available, e.Shortfall())
}

// Shortfall returns how much more XP the learner needs.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Required - e.Available
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsAlreadyMastered reports whether err is an *AlreadyMasteredError.
func IsAlreadyMastered(err error) bool {
	var e *AlreadyMasteredError
	return errors.As(err, &e)
}

// IsInsufficientFunds reports whether err is an *InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var e *InsufficientFundsError
	return errors.As(err, &e)
}
