package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	kvTable     = "kv"
	learnersKey = "learners"
)

// learnerRepo implements LearnerRepo as one JSON document in the kv table.
type learnerRepo struct {
	drv *entsql.Driver
}

func (r *learnerRepo) Load(ctx context.Context) ([]LearnerRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", learnersKey)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &PersistenceError{Op: "load", Err: err}
		}
		return nil, nil
	}

	var raw string
	if err := rows.Scan(&raw); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	var learners []LearnerRecord
	if err := json.Unmarshal([]byte(raw), &learners); err != nil {
		return nil, &PersistenceError{Op: "load", Err: fmt.Errorf("decode learners: %w", err)}
	}
	return learners, nil
}

func (r *learnerRepo) Save(ctx context.Context, learners []LearnerRecord) error {
	if learners == nil {
		learners = []LearnerRecord{}
	}
	b, err := json.Marshal(learners)
	if err != nil {
		return &PersistenceError{Op: "save", Err: fmt.Errorf("encode learners: %w", err)}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(learnersKey, string(b), time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
