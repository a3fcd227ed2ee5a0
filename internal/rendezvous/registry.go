package rendezvous

import (
	"context"
	"fmt"
	"time"

	"github.com/rqlite/gorqlite"
	"github.com/rs/zerolog/log"
)

// JobRegistry mirrors process registrations into rqlite so a stuck
// bootstrap can be inspected from outside: which processes registered,
// from which hosts, and when. It is write-only from the service's point
// of view and never on the bootstrap critical path.
type JobRegistry struct {
	conn *gorqlite.Connection
}

// NewJobRegistry connects to rqlite and ensures the schema exists.
func NewJobRegistry(dbURI string) (*JobRegistry, error) {
	log.Info().Str("dbURI", dbURI).Msg("Initializing job registry with rqlite")

	conn, err := gorqlite.Open(dbURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rqlite: %w", err)
	}

	registry := &JobRegistry{conn: conn}
	if err := registry.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return registry, nil
}

func (r *JobRegistry) initializeSchema() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS registrations (
		launch_index INTEGER PRIMARY KEY,
		hostname TEXT NOT NULL,
		pid INTEGER NOT NULL,
		registered_at TEXT NOT NULL
	);
	`

	createIndexesSQL := `
	CREATE INDEX IF NOT EXISTS idx_registrations_hostname ON registrations (hostname);
	`

	_, err := r.conn.WriteOne(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create registrations table: %w", err)
	}

	_, err = r.conn.WriteOne(createIndexesSQL)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// RecordRegistration writes one process registration.
func (r *JobRegistry) RecordRegistration(ctx context.Context, hostname string, pid int32, launchIndex uint32) error {
	_, err := r.conn.WriteOneParameterizedContext(ctx, gorqlite.ParameterizedStatement{
		Query: `INSERT OR REPLACE INTO registrations (launch_index, hostname, pid, registered_at)
			VALUES (?, ?, ?, ?)`,
		Arguments: []interface{}{launchIndex, hostname, pid, time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return fmt.Errorf("failed to record registration for %s: %w", hostname, err)
	}
	return nil
}

// RegisteredCount returns the number of recorded registrations.
func (r *JobRegistry) RegisteredCount(ctx context.Context) (int, error) {
	rows, err := r.conn.QueryOneContext(ctx, "SELECT COUNT(*) FROM registrations")
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to scan registration count: %w", err)
		}
	}
	return int(count), nil
}

// Close closes the registry connection.
func (r *JobRegistry) Close() error {
	if r.conn != nil {
		r.conn.Close()
	}
	return nil
}
