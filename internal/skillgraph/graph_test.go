package skillgraph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// chain builds A -> B -> C plus an isolated D.
func chain(t *testing.T) *Graph {
	t.Helper()
	skills := []Skill{
		{ID: "x-a", Name: "A", Category: CategoryCombat, Level: 1, Tier: TierBase},
		{ID: "x-b", Name: "B", Category: CategoryCombat, Level: 2, Tier: TierBase},
		{ID: "x-c", Name: "C", Category: CategoryMagic, Level: 3, Tier: TierBase},
		{ID: "y-d", Name: "D", Category: CategorySupport, Level: 1, Tier: TierBase},
	}
	conns := []Connection{
		{From: "x-a", To: "x-b"},
		{From: "x-b", To: "x-c"},
	}
	g, err := Build(skills, conns, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return g
}

func TestBuild_ComputesDerivedFields(t *testing.T) {
	g := chain(t)
	s, ok := g.Skill("x-b")
	if !ok {
		t.Fatal("x-b not found")
	}
	if s.XPRequired != 100 {
		t.Errorf("XPRequired = %d, want 100", s.XPRequired)
	}
	if s.Cluster != "x" {
		t.Errorf("Cluster = %q, want %q", s.Cluster, "x")
	}
	if got := g.Clusters(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Clusters() = %v, want [x y]", got)
	}
}

func TestBuild_PermissiveDropsUnknownEdges(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
		{ID: "b", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	conns := []Connection{
		{From: "a", To: "b"},
		{From: "a", To: "ghost"},
		{From: "phantom", To: "b"},
	}
	g, err := Build(skills, conns, BuildOptions{})
	if err != nil {
		t.Fatalf("permissive build returned error: %v", err)
	}
	if got := len(g.Connections()); got != 1 {
		t.Errorf("got %d connections, want 1", got)
	}
	if got := len(g.Dropped()); got != 2 {
		t.Errorf("got %d dropped entries, want 2: %v", got, g.Dropped())
	}
}

func TestBuild_StrictRejectsUnknownEdges(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	conns := []Connection{{From: "a", To: "ghost"}}

	g, err := Build(skills, conns, BuildOptions{Strict: true})
	if err == nil {
		t.Fatal("expected error in strict mode, got nil")
	}
	if g != nil {
		t.Error("strict build should not return a graph on error")
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error type = %T, want *BuildError", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should mention the missing ID, got: %v", err)
	}
}

func TestBuild_DuplicateIDs(t *testing.T) {
	skills := []Skill{
		{ID: "a", Name: "first", Category: CategoryCombat, Level: 1, Tier: TierBase},
		{ID: "a", Name: "second", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	g, err := Build(skills, nil, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	s, _ := g.Skill("a")
	if s.Name != "first" {
		t.Errorf("kept %q, want first occurrence", s.Name)
	}

	if _, err := Build(skills, nil, BuildOptions{Strict: true}); err == nil {
		t.Error("strict build should reject duplicate IDs")
	}
}

func TestBuild_NonPositiveLevel(t *testing.T) {
	for _, level := range []int{0, -3} {
		t.Run(fmt.Sprintf("level %d", level), func(t *testing.T) {
			skills := []Skill{
				{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
				{ID: "bad", Category: CategoryMagic, Level: level, Tier: TierSecond},
			}
			conns := []Connection{{From: "a", To: "bad"}}

			g, err := Build(skills, conns, BuildOptions{})
			if err != nil {
				t.Fatalf("permissive build returned error: %v", err)
			}
			if g.Has("bad") {
				t.Error("skill with non-positive level should be dropped")
			}
			if g.Len() != 1 {
				t.Errorf("Len() = %d, want 1", g.Len())
			}
			dropped := strings.Join(g.Dropped(), "\n")
			if !strings.Contains(dropped, `"bad"`) || !strings.Contains(dropped, "level") {
				t.Errorf("Dropped() should name the skill and its level, got %v", g.Dropped())
			}
			for _, s := range g.All() {
				if s.XPRequired <= 0 {
					t.Errorf("%s: XPRequired = %d, want > 0", s.ID, s.XPRequired)
				}
			}

			strict, err := Build(skills, conns, BuildOptions{Strict: true})
			if err == nil {
				t.Fatal("strict build should reject a non-positive level")
			}
			if strict != nil {
				t.Error("strict build should not return a graph on error")
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("error type = %T, want *BuildError", err)
			}
			if !strings.Contains(strings.Join(be.Problems, "\n"), `"bad"`) {
				t.Errorf("problems should name the skill, got %v", be.Problems)
			}
		})
	}
}

func TestBuild_CollapsesDuplicateEdges(t *testing.T) {
	skills := []Skill{
		{ID: "a", Category: CategoryCombat, Level: 1, Tier: TierBase},
		{ID: "b", Category: CategoryCombat, Level: 1, Tier: TierBase},
	}
	conns := []Connection{{From: "a", To: "b"}, {From: "a", To: "b"}}
	g, err := Build(skills, conns, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := len(g.Unlocks("a")); got != 1 {
		t.Errorf("Unlocks(a) = %d skills, want 1", got)
	}
}

func TestAvailableNextSkills_OneHopOnly(t *testing.T) {
	g := chain(t)
	got := g.AvailableNextSkills(map[string]bool{"x-a": true})
	if !slices.Equal(got, []string{"x-b"}) {
		t.Errorf("AvailableNextSkills({a}) = %v, want [x-b]", got)
	}
}

func TestAvailableNextSkills_IncludesIncomingNeighbors(t *testing.T) {
	g := chain(t)
	got := g.AvailableNextSkills(map[string]bool{"x-c": true})
	if !slices.Equal(got, []string{"x-b"}) {
		t.Errorf("AvailableNextSkills({c}) = %v, want [x-b]", got)
	}
}

func TestAvailableNextSkills_ExcludesMasteredAndDedupes(t *testing.T) {
	g := chain(t)
	got := g.AvailableNextSkills(map[string]bool{"x-a": true, "x-c": true})
	if !slices.Equal(got, []string{"x-b"}) {
		t.Errorf("got %v, want [x-b]", got)
	}

	got = g.AvailableNextSkills(map[string]bool{"x-a": true, "x-b": true, "x-c": true})
	if len(got) != 0 {
		t.Errorf("fully mastered chain should have empty frontier, got %v", got)
	}
}

func TestAvailableNextSkills_UnknownIDs(t *testing.T) {
	g := chain(t)
	got := g.AvailableNextSkills(map[string]bool{"nonexistent": true})
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSkillsWithinSteps(t *testing.T) {
	g := chain(t)

	tests := []struct {
		start string
		steps int
		want  []string
	}{
		{"x-a", 1, []string{"x-b"}},
		{"x-a", 2, []string{"x-b", "x-c"}},
		{"x-b", 1, []string{"x-c", "x-a"}},
		{"x-c", 5, []string{"x-b", "x-a"}},
		{"y-d", 3, nil},
		{"x-a", 0, nil},
		{"nonexistent", 2, nil},
	}
	for _, tt := range tests {
		got := g.SkillsWithinSteps(tt.start, tt.steps)
		if !slices.Equal(got, tt.want) {
			t.Errorf("SkillsWithinSteps(%q, %d) = %v, want %v", tt.start, tt.steps, got, tt.want)
		}
	}
}

func TestShortestPath(t *testing.T) {
	g := chain(t)

	tests := []struct {
		from, to string
		want     []string
	}{
		{"x-a", "x-c", []string{"x-a", "x-b", "x-c"}},
		{"x-a", "x-a", []string{"x-a"}},
		{"x-c", "x-a", nil}, // edges are directed here
		{"x-a", "y-d", nil},
		{"x-a", "nonexistent", nil},
	}
	for _, tt := range tests {
		got := g.ShortestPath(tt.from, tt.to)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ShortestPath(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestShortestPath_PrefersFewerHops(t *testing.T) {
	g := SeedGraph()
	got := g.ShortestPath("tidus-attack", "tidus-quick-hit")
	want := []string{"tidus-attack", "tidus-cheer", "tidus-flee", "tidus-quick-hit"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPrerequisitesAndUnlocks(t *testing.T) {
	g := SeedGraph()

	prereqs := g.Prerequisites("lulu-flare")
	ids := map[string]bool{}
	for _, p := range prereqs {
		ids[p.ID] = true
	}
	if len(prereqs) != 2 || !ids["lulu-firaga"] || !ids["lulu-thundaga"] {
		t.Errorf("Prerequisites(lulu-flare) = %v", ids)
	}

	unlocks := g.Unlocks("lulu-flare")
	if len(unlocks) != 1 || unlocks[0].ID != "lulu-ultima" {
		t.Errorf("Unlocks(lulu-flare) = %v", unlocks)
	}

	if got := g.Prerequisites("nonexistent"); len(got) != 0 {
		t.Errorf("Prerequisites(nonexistent) = %v, want empty", got)
	}
	if got := g.Unlocks("nonexistent"); len(got) != 0 {
		t.Errorf("Unlocks(nonexistent) = %v, want empty", got)
	}
}

func TestGetSkill_NotFound(t *testing.T) {
	g := SeedGraph()
	if _, err := g.GetSkill("nonexistent"); err == nil {
		t.Fatal("expected error for nonexistent skill, got nil")
	}
}

func TestSeedGraph(t *testing.T) {
	g := SeedGraph()
	if g.Len() != len(SeedSkills()) {
		t.Errorf("Len() = %d, want %d", g.Len(), len(SeedSkills()))
	}
	if len(g.Dropped()) != 0 {
		t.Errorf("seed graph dropped entries: %v", g.Dropped())
	}
	for _, c := range AllCategories() {
		if len(g.ByCategory(c)) == 0 {
			t.Errorf("category %q has no skills", c)
		}
	}
	if got := len(g.ByCluster("lulu")); got != 8 {
		t.Errorf("ByCluster(lulu) = %d skills, want 8", got)
	}
}
