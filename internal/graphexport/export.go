package graphexport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecodeclub/ekit/slice"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

// DefaultBatchSize bounds the rows sent in one UNWIND statement.
const DefaultBatchSize = 500

const (
	skillConstraintCypher = `CREATE CONSTRAINT skill_id IF NOT EXISTS FOR (s:Skill) REQUIRE s.id IS UNIQUE`

	learnerConstraintCypher = `CREATE CONSTRAINT learner_id IF NOT EXISTS FOR (l:Learner) REQUIRE l.id IS UNIQUE`

	upsertSkillsCypher = `UNWIND $rows AS row
MERGE (s:Skill {id: row.id})
SET s.name = row.name,
    s.description = row.description,
    s.category = row.category,
    s.level = row.level,
    s.tier = row.tier,
    s.xpRequired = row.xpRequired,
    s.cluster = row.cluster`

	upsertEdgesCypher = `UNWIND $rows AS row
MATCH (a:Skill {id: row.from})
MATCH (b:Skill {id: row.to})
MERGE (a)-[:UNLOCKS]->(b)`

	pruneSkillsCypher = `MATCH (s:Skill)
WHERE NOT s.id IN $ids
DETACH DELETE s`

	upsertLearnersCypher = `UNWIND $rows AS row
MERGE (l:Learner {id: row.id})
SET l.name = row.name,
    l.role = row.role,
    l.department = row.department,
    l.currentXp = row.currentXp
WITH l, row
OPTIONAL MATCH (l)-[old:MASTERED]->(:Skill)
DELETE old
WITH DISTINCT l, row
UNWIND row.mastered AS skillID
MATCH (s:Skill {id: skillID})
MERGE (l)-[:MASTERED]->(s)`

	countCypher = `MATCH (s:Skill)
OPTIONAL MATCH (s)-[r:UNLOCKS]->(:Skill)
RETURN count(DISTINCT s) AS skills, count(r) AS connections`
)

// Stats reports how many entities an export wrote.
type Stats struct {
	Skills      int
	Connections int
	Learners    int
	Batches     int
}

// Exporter writes skill graphs to a Client.
type Exporter struct {
	client    Client
	logger    *slog.Logger
	batchSize int
	prune     bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) ExporterOption {
	return func(e *Exporter) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithPrune removes :Skill nodes that are no longer in the exported graph.
func WithPrune(prune bool) ExporterOption {
	return func(e *Exporter) { e.prune = prune }
}

// WithLogger sets the exporter's logger.
func WithLogger(l *slog.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = l }
}

// NewExporter creates an exporter over client.
func NewExporter(client Client, opts ...ExporterOption) *Exporter {
	e := &Exporter{client: client, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Export MERGEs every skill as a :Skill node and every connection as an
// [:UNLOCKS] relationship. Re-running it is idempotent.
func (e *Exporter) Export(ctx context.Context, g *skillgraph.Graph) (Stats, error) {
	var stats Stats

	if _, err := e.client.ExecuteWrite(ctx, skillConstraintCypher, nil); err != nil {
		return stats, fmt.Errorf("create skill constraint: %w", err)
	}

	skillRows := slice.Map(g.All(), func(_ int, s skillgraph.Skill) map[string]any {
		return map[string]any{
			"id":          s.ID,
			"name":        s.Name,
			"description": s.Description,
			"category":    string(s.Category),
			"level":       int64(s.Level),
			"tier":        s.Tier.String(),
			"xpRequired":  int64(s.XPRequired),
			"cluster":     s.Cluster,
		}
	})
	n, err := e.writeBatches(ctx, upsertSkillsCypher, skillRows)
	if err != nil {
		return stats, fmt.Errorf("upsert skills: %w", err)
	}
	stats.Skills = len(skillRows)
	stats.Batches += n

	edgeRows := slice.Map(g.Connections(), func(_ int, c skillgraph.Connection) map[string]any {
		return map[string]any{"from": c.From, "to": c.To}
	})
	n, err = e.writeBatches(ctx, upsertEdgesCypher, edgeRows)
	if err != nil {
		return stats, fmt.Errorf("upsert connections: %w", err)
	}
	stats.Connections = len(edgeRows)
	stats.Batches += n

	if e.prune {
		ids := slice.Map(g.All(), func(_ int, s skillgraph.Skill) string { return s.ID })
		if _, err := e.client.ExecuteWrite(ctx, pruneSkillsCypher, map[string]any{"ids": ids}); err != nil {
			return stats, fmt.Errorf("prune skills: %w", err)
		}
	}

	e.logger.Info("exported skill graph",
		"skills", stats.Skills,
		"connections", stats.Connections,
		"batches", stats.Batches,
	)
	return stats, nil
}

// ExportLearners MERGEs each learner as a :Learner node and replaces its
// [:MASTERED] relationships. Skills must already be exported.
func (e *Exporter) ExportLearners(ctx context.Context, learners []ledger.Learner) (Stats, error) {
	var stats Stats

	if _, err := e.client.ExecuteWrite(ctx, learnerConstraintCypher, nil); err != nil {
		return stats, fmt.Errorf("create learner constraint: %w", err)
	}

	rows := slice.Map(learners, func(_ int, l ledger.Learner) map[string]any {
		return map[string]any{
			"id":         l.ID,
			"name":       l.Name,
			"role":       l.Role,
			"department": l.Department,
			"currentXp":  int64(l.CurrentXP),
			"mastered":   append([]string{}, l.MasteredSkills...),
		}
	})
	n, err := e.writeBatches(ctx, upsertLearnersCypher, rows)
	if err != nil {
		return stats, fmt.Errorf("upsert learners: %w", err)
	}
	stats.Learners = len(rows)
	stats.Batches = n

	e.logger.Info("exported learners", "learners", stats.Learners)
	return stats, nil
}

// Counts reads back the number of :Skill nodes and [:UNLOCKS] edges.
func (e *Exporter) Counts(ctx context.Context) (skills, connections int64, err error) {
	res, err := e.client.ExecuteRead(ctx, countCypher, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("count graph: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, 0, nil
	}
	rec := res.Records[0]
	skills, _ = rec["skills"].(int64)
	connections, _ = rec["connections"].(int64)
	return skills, connections, nil
}

func (e *Exporter) writeBatches(ctx context.Context, cypher string, rows []map[string]any) (int, error) {
	batches := 0
	for start := 0; start < len(rows); start += e.batchSize {
		end := min(start+e.batchSize, len(rows))
		if _, err := e.client.ExecuteWrite(ctx, cypher, map[string]any{"rows": rows[start:end]}); err != nil {
			return batches, fmt.Errorf("batch %d: %w", batches, err)
		}
		batches++
	}
	return batches, nil
}
