package graphexport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

func rowsOf(t *testing.T, q Query) []map[string]any {
	t.Helper()
	rows, ok := q.Params["rows"].([]map[string]any)
	require.True(t, ok, "rows param missing in %q", q.Cypher)
	return rows
}

func TestExport_SeedGraph(t *testing.T) {
	g := skillgraph.SeedGraph()
	client := NewMemoryClient()

	stats, err := NewExporter(client).Export(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, g.Len(), stats.Skills)
	assert.Equal(t, len(g.Connections()), stats.Connections)
	assert.Equal(t, 2, stats.Batches)

	writes := client.Writes()
	require.Len(t, writes, 3)
	assert.Equal(t, skillConstraintCypher, writes[0].Cypher)
	assert.Len(t, rowsOf(t, writes[1]), g.Len())
	assert.Len(t, rowsOf(t, writes[2]), len(g.Connections()))

	first := rowsOf(t, writes[1])[0]
	s, ok := g.Skill(first["id"].(string))
	require.True(t, ok)
	assert.Equal(t, int64(s.XPRequired), first["xpRequired"])
	assert.Equal(t, s.Tier.String(), first["tier"])
}

func TestExport_Batches(t *testing.T) {
	g := skillgraph.SeedGraph()
	client := NewMemoryClient()

	stats, err := NewExporter(client, WithBatchSize(10)).Export(context.Background(), g)
	require.NoError(t, err)

	wantSkillBatches := (g.Len() + 9) / 10
	wantEdgeBatches := (len(g.Connections()) + 9) / 10
	assert.Equal(t, wantSkillBatches+wantEdgeBatches, stats.Batches)

	total := 0
	for _, q := range client.Writes() {
		if q.Cypher != upsertSkillsCypher {
			continue
		}
		rows := rowsOf(t, q)
		assert.LessOrEqual(t, len(rows), 10)
		total += len(rows)
	}
	assert.Equal(t, g.Len(), total)
}

func TestExport_Prune(t *testing.T) {
	g := skillgraph.SeedGraph()
	client := NewMemoryClient()

	_, err := NewExporter(client, WithPrune(true)).Export(context.Background(), g)
	require.NoError(t, err)

	writes := client.Writes()
	last := writes[len(writes)-1]
	assert.Equal(t, pruneSkillsCypher, last.Cypher)
	assert.Len(t, last.Params["ids"], g.Len())
}

func TestExport_PropagatesErrors(t *testing.T) {
	boom := errors.New("bolt down")
	client := NewMemoryClient().FailWith(boom)

	_, err := NewExporter(client).Export(context.Background(), skillgraph.SeedGraph())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create skill constraint")
}

func TestExportLearners(t *testing.T) {
	client := NewMemoryClient()
	learners := []ledger.Learner{
		{ID: "tidus", Name: "Tidus", Role: "Blitzball Ace", MasteredSkills: []string{"tidus-attack"}, CurrentXP: 600},
		{ID: "yuna", Name: "Yuna", Role: "Summoner", MasteredSkills: []string{"yuna-pray", "yuna-cure"}, CurrentXP: 800},
	}

	stats, err := NewExporter(client).ExportLearners(context.Background(), learners)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Learners)

	writes := client.Writes()
	require.Len(t, writes, 2)
	rows := rowsOf(t, writes[1])
	assert.Equal(t, "yuna", rows[1]["id"])
	assert.Equal(t, []string{"yuna-pray", "yuna-cure"}, rows[1]["mastered"])
	assert.Equal(t, int64(600), rows[0]["currentXp"])
}

func TestCounts(t *testing.T) {
	client := NewMemoryClient()
	client.PushReadResult(Result{Records: []Record{{"skills": int64(12), "connections": int64(20)}}})

	skills, conns, err := NewExporter(client).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), skills)
	assert.Equal(t, int64(20), conns)

	skills, conns, err = NewExporter(client).Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skills)
	assert.Zero(t, conns)
}

func TestNewNeo4jClient_RequiresURI(t *testing.T) {
	_, err := NewNeo4jClient(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrMissingURI)
}
