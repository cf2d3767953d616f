package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteBackend stores the serialized store as one row of a key-value table.
type SQLiteBackend struct {
	*sqlx.DB
	key    string
	logger *log.Logger
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path, key string, logger *log.Logger) (*SQLiteBackend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteBackend{DB: db, key: key, logger: orDiscard(logger)}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) model.Store {
	var value string
	err := b.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, b.key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Warn("cannot read stored sessions", "key", b.key, "err", err)
		}
		return model.Store{}
	}
	return decodeStore([]byte(value), b.key, b.logger)
}

func (b *SQLiteBackend) Save(ctx context.Context, st model.Store) error {
	value, err := encodeStore(st)
	if err != nil {
		return err
	}
	_, err = b.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		b.key, string(value),
	)
	if err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}
