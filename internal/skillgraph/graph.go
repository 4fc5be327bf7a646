package skillgraph

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// BuildOptions controls how Build treats malformed input.
type BuildOptions struct {
	// Strict rejects the whole dataset when any skill ID is duplicated, any
	// level is below 1, or any connection references an unknown skill.
	// When false, offending entries are dropped and reported by
	// Graph.Dropped.
	Strict bool
}

// BuildError lists every problem found by a strict Build.
type BuildError struct {
	Problems []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("skill graph build failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Graph is an immutable skill graph with precomputed adjacency.
// It is safe for concurrent readers.
type Graph struct {
	skills     []Skill
	byID       map[string]*Skill
	byCategory map[Category][]Skill
	clusters   []string
	edges      []Connection
	out        map[string][]string
	in         map[string][]string
	dropped    []string
}

// Build constructs a graph from flat skill and connection lists.
// XPRequired and Cluster are computed here, once per skill.
func Build(skills []Skill, conns []Connection, opts BuildOptions) (*Graph, error) {
	g := &Graph{
		skills:     make([]Skill, 0, len(skills)),
		byID:       make(map[string]*Skill, len(skills)),
		byCategory: make(map[Category][]Skill),
		out:        make(map[string][]string),
		in:         make(map[string][]string),
	}

	var problems []string

	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate skill ID: %q", s.ID))
			continue
		}
		if s.Level < 1 {
			problems = append(problems, fmt.Sprintf("skill %q has non-positive level %d", s.ID, s.Level))
			continue
		}
		seen[s.ID] = true
		s.XPRequired = SkillCost(s)
		s.Cluster = ClusterOf(s.ID)
		g.skills = append(g.skills, s)
	}

	// Index after the slice stops growing so pointers stay valid.
	clusterSet := make(map[string]bool)
	for i := range g.skills {
		s := &g.skills[i]
		g.byID[s.ID] = s
		g.byCategory[s.Category] = append(g.byCategory[s.Category], *s)
		if !clusterSet[s.Cluster] {
			clusterSet[s.Cluster] = true
			g.clusters = append(g.clusters, s.Cluster)
		}
	}
	sort.Strings(g.clusters)

	edgeSet := make(map[Connection]bool, len(conns))
	for _, c := range conns {
		_, fromOK := g.byID[c.From]
		_, toOK := g.byID[c.To]
		if !fromOK || !toOK {
			problems = append(problems, fmt.Sprintf("connection %s -> %s references unknown skill", c.From, c.To))
			continue
		}
		if c.From == c.To || edgeSet[c] {
			continue
		}
		edgeSet[c] = true
		g.edges = append(g.edges, c)
		g.out[c.From] = append(g.out[c.From], c.To)
		g.in[c.To] = append(g.in[c.To], c.From)
	}

	if len(problems) > 0 {
		if opts.Strict {
			return nil, &BuildError{Problems: problems}
		}
		g.dropped = problems
	}
	return g, nil
}

// MustBuild is Build for static data that is known to be well formed.
func MustBuild(skills []Skill, conns []Connection) *Graph {
	g, err := Build(skills, conns, BuildOptions{Strict: true})
	if err != nil {
		panic(err)
	}
	return g
}

// Dropped describes the input entries a permissive Build ignored.
func (g *Graph) Dropped() []string {
	return slices.Clone(g.dropped)
}

// Len returns the number of skills in the graph.
func (g *Graph) Len() int {
	return len(g.skills)
}

// Skill returns a skill by ID.
func (g *Graph) Skill(id string) (Skill, bool) {
	s, ok := g.byID[id]
	if !ok {
		return Skill{}, false
	}
	return *s, true
}

// GetSkill returns a skill by ID, or error if not found.
func (g *Graph) GetSkill(id string) (Skill, error) {
	s, ok := g.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return *s, nil
}

// Has reports whether the graph contains id.
func (g *Graph) Has(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// All returns all skills in input order.
func (g *Graph) All() []Skill {
	return slices.Clone(g.skills)
}

// ByCategory returns the skills in a category, in input order.
func (g *Graph) ByCategory(c Category) []Skill {
	return slices.Clone(g.byCategory[c])
}

// ByCluster returns the skills whose ID prefix is cluster.
func (g *Graph) ByCluster(cluster string) []Skill {
	var result []Skill
	for _, s := range g.skills {
		if s.Cluster == cluster {
			result = append(result, s)
		}
	}
	return result
}

// Clusters returns the sorted set of cluster tags.
func (g *Graph) Clusters() []string {
	return slices.Clone(g.clusters)
}

// Connections returns the accepted edges in input order.
func (g *Graph) Connections() []Connection {
	return slices.Clone(g.edges)
}

// Prerequisites returns the skills with an edge into id.
func (g *Graph) Prerequisites(id string) []Skill {
	return g.resolve(g.in[id])
}

// Unlocks returns the skills id has an edge to.
func (g *Graph) Unlocks(id string) []Skill {
	return g.resolve(g.out[id])
}

func (g *Graph) resolve(ids []string) []Skill {
	result := make([]Skill, 0, len(ids))
	for _, id := range ids {
		if s, ok := g.byID[id]; ok {
			result = append(result, *s)
		}
	}
	return result
}

// neighbors returns out-edges followed by in-edges of id.
func (g *Graph) neighbors(id string) []string {
	n := make([]string, 0, len(g.out[id])+len(g.in[id]))
	n = append(n, g.out[id]...)
	n = append(n, g.in[id]...)
	return n
}

// AvailableNextSkills returns every skill one hop away from a mastered
// skill, in either direction, that is not itself mastered. Skills two or
// more hops out are never included. The result is sorted.
func (g *Graph) AvailableNextSkills(mastered map[string]bool) []string {
	frontier := make(map[string]bool)
	for id, ok := range mastered {
		if !ok {
			continue
		}
		for _, n := range g.neighbors(id) {
			if !mastered[n] {
				frontier[n] = true
			}
		}
	}

	result := make([]string, 0, len(frontier))
	for id := range frontier {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// SkillsWithinSteps walks outward from startID in both directions for at
// most maxSteps hops and returns the visited skills in BFS order,
// excluding startID.
func (g *Graph) SkillsWithinSteps(startID string, maxSteps int) []string {
	if !g.Has(startID) || maxSteps <= 0 {
		return nil
	}

	visited := map[string]bool{startID: true}
	frontier := []string{startID}
	var result []string

	for step := 0; step < maxSteps && len(frontier) > 0; step++ {
		var next []string
		for _, id := range frontier {
			for _, n := range g.neighbors(id) {
				if visited[n] {
					continue
				}
				visited[n] = true
				result = append(result, n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return result
}

// ShortestPath returns the shortest chain of skills from fromID to toID
// following edge direction, both ends included. It returns nil when toID
// is unreachable or either ID is unknown.
func (g *Graph) ShortestPath(fromID, toID string) []string {
	if !g.Has(fromID) || !g.Has(toID) {
		return nil
	}
	if fromID == toID {
		return []string{fromID}
	}

	parent := map[string]string{fromID: ""}
	queue := []string{fromID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, n := range g.out[id] {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = id
			if n == toID {
				return buildPath(parent, fromID, toID)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func buildPath(parent map[string]string, fromID, toID string) []string {
	var path []string
	for id := toID; id != fromID; id = parent[id] {
		path = append(path, id)
	}
	path = append(path, fromID)
	slices.Reverse(path)
	return path
}
