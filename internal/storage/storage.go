// Package storage loads and saves the whole session store under one
// namespaced key. Load never fails on bad data: a missing or unreadable
// entry yields an empty store and a warning in the log.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// Backend is a durable key-value medium holding the serialized store.
type Backend interface {
	// Load returns the persisted store, or an empty one if it is absent or corrupt.
	Load(ctx context.Context) model.Store
	// Save overwrites the persisted store with st.
	Save(ctx context.Context, st model.Store) error
	Close() error
}

// Open builds the backend selected by cfg.
func Open(cfg config.StorageConfig, logger *log.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.Path, cfg.Key, logger), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.Path, cfg.Key, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// decodeStore parses raw into a store. Every failure resets to empty.
func decodeStore(raw []byte, key string, logger *log.Logger) model.Store {
	var st model.Store
	if err := json.Unmarshal(raw, &st); err != nil {
		logger.Warn("stored sessions are corrupt, starting from an empty store", "key", key, "err", err)
		return model.Store{}
	}
	if st == nil {
		return model.Store{}
	}
	return st
}

func encodeStore(st model.Store) ([]byte, error) {
	if st == nil {
		st = model.Store{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode store: %w", err)
	}
	return data, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
