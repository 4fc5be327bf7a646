// Package graphexport projects the skill graph and learner progress into
// a Neo4j-compatible graph database.
package graphexport

import (
	"context"
	"errors"
)

// Client is the subset of a graph database session the exporter needs.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the records returned by one statement.
type Result struct {
	Records []Record
}

// Record maps column names to values.
type Record map[string]any

// Options configures a Bolt connection.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI is returned when no Bolt URI is configured.
var ErrMissingURI = errors.New("graph URI is required")
