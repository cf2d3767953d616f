package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// FileBackend keeps a JSON object of key -> value in a single file. Only the
// configured key is read or written; other keys in the file are preserved.
type FileBackend struct {
	path   string
	key    string
	logger *log.Logger
}

func NewFileBackend(path, key string, logger *log.Logger) *FileBackend {
	return &FileBackend{path: path, key: key, logger: orDiscard(logger)}
}

// readEntries returns the decoded file, or nil if it is missing or not a JSON object.
func (b *FileBackend) readEntries() map[string]json.RawMessage {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			b.logger.Warn("cannot read session file", "path", b.path, "err", err)
		}
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		b.logger.Warn("session file is not a JSON object", "path", b.path, "err", err)
		return nil
	}
	return entries
}

func (b *FileBackend) Load(ctx context.Context) model.Store {
	entries := b.readEntries()
	raw, ok := entries[b.key]
	if !ok {
		return model.Store{}
	}
	return decodeStore(raw, b.key, b.logger)
}

func (b *FileBackend) Save(ctx context.Context, st model.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := encodeStore(st)
	if err != nil {
		return err
	}
	entries := b.readEntries()
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}
	entries[b.key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := atomicWrite(b.path, data, 0644); err != nil {
		return fmt.Errorf("save sessions to %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
