package skillgraph

import (
	"strings"
	"testing"
)

func TestValidate_SeedDataPasses(t *testing.T) {
	if err := Validate(SeedSkills(), SeedConnections()); err != nil {
		t.Fatalf("seed data validation failed: %v", err)
	}
}

func TestValidate_DetectsDanglingConnection(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	conns := []Connection{{From: "a", To: "nonexistent"}}
	err := Validate(skills, conns)
	if err == nil {
		t.Fatal("expected error for dangling connection, got nil")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should mention the missing ID, got: %v", err)
	}
}

func TestValidate_DetectsDuplicateID(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	err := Validate(skills, nil)
	if err == nil {
		t.Fatal("expected error for duplicate ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_DetectsBadFields(t *testing.T) {
	tests := []struct {
		name  string
		skill Skill
		want  string
	}{
		{"zero level", Skill{ID: "a", Category: CategoryCombat, Level: 0, Tier: TierBase}, "level must be > 0"},
		{"unknown category", Skill{ID: "a", Category: "cooking", Level: 1, Tier: TierBase}, "unknown category"},
		{"unset tier", Skill{ID: "a", Category: CategoryCombat, Level: 1}, "tier is not set"},
		{"empty id", Skill{Name: "Nameless", Category: CategoryCombat, Level: 1, Tier: TierBase}, "empty ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]Skill{tt.skill}, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_DetectsSelfLoop(t *testing.T) {
	skills := []Skill{{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase}}
	err := Validate(skills, []Connection{{From: "a", To: "a"}})
	if err == nil || !strings.Contains(err.Error(), "self-loop") {
		t.Errorf("expected self-loop error, got %v", err)
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 0, Tier: TierBase},
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	err := Validate(skills, []Connection{{From: "a", To: "ghost"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	msg := err.Error()
	for _, want := range []string{"level", "duplicate", "ghost"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should mention %q, got: %v", want, msg)
		}
	}
}
