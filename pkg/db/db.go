package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	VolunteersFile = "volunteers.json"
	EventsFile     = "events.json"
	SettingsFile   = "config.json"

	tmpSuffix       = ".tmp"
	filePermissions = 0644
	dirPermissions  = 0755
)

// DB stores each collection as a whole JSON document in a data directory.
// Reads of missing or unreadable documents yield empty collections; failures are logged, not returned.
type DB struct {
	dir    string
	logger *zap.Logger

	// mu serialises read-modify-write cycles within this process
	mu sync.Mutex
}

// NewDB creates a file-backed database rooted at dir, creating the directory if needed
func NewDB(dir string, logger *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &DB{
		dir:    dir,
		logger: logger,
	}, nil
}

// Dir returns the data directory
func (db *DB) Dir() string {
	return db.dir
}

func (db *DB) path(name string) string {
	return filepath.Join(db.dir, name)
}

// readDocument decodes the named document into v.
// It reports false when the document is missing or cannot be decoded.
func (db *DB) readDocument(name string, v interface{}) bool {
	data, err := os.ReadFile(db.path(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			db.logger.Warn("Failed to read document, using empty value",
				zap.String("file", name),
				zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		db.logger.Warn("Failed to parse document, using empty value",
			zap.String("file", name),
			zap.Error(err))
		return false
	}

	return true
}

// stageDocument writes v as pretty-printed JSON to a temp file next to the named document
func (db *DB) stageDocument(name string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmpFile := db.path(name) + tmpSuffix
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmpFile, err)
	}

	return tmpFile, nil
}

// commitDocument replaces the named document with a staged temp file
func (db *DB) commitDocument(name, tmpFile string) error {
	if err := os.Rename(tmpFile, db.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (db *DB) writeDocument(name string, v interface{}) error {
	tmpFile, err := db.stageDocument(name, v)
	if err != nil {
		return err
	}
	return db.commitDocument(name, tmpFile)
}

func discard(tmpFiles ...string) {
	for _, f := range tmpFiles {
		os.Remove(f)
	}
}

// checkContext returns the context error, if any, before touching the filesystem
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	return nil
}
