package queue

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion must be bumped whenever schema.sql changes shape. There
// is no migration path; a mismatched database has to be cleared.
const schemaVersion = 1

// ErrSchemaMismatch reports a queue database created by an incompatible
// version of censorr.
var ErrSchemaMismatch = errors.New("queue schema version mismatch")

// initSchema creates the schema on a fresh database and verifies the
// recorded version on an existing one.
func (s *Store) initSchema(ctx context.Context) error {
	initialized, err := s.tableExists(ctx, "schema_version")
	if err != nil {
		return err
	}
	if !initialized {
		return s.applySchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read queue schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database at version %d, this build expects %d; clear it with 'censorr queue clear --all' or delete the file",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("inspect queue database: %w", err)
	}
	return count > 0, nil
}

func (s *Store) applySchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create queue schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record queue schema version: %w", err)
	}
	return tx.Commit()
}
