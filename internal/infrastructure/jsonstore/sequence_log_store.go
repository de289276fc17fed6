// Package jsonstore persists the sequence log as one human-readable JSON
// file: ISO date string → array of document records, issuance order.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Thaworapong/credit-note/internal/domain"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
)

// SequenceLogStore implements repository.SequenceLogRepository on a flat
// file. The whole mapping is rewritten on every append; at a handful of
// documents per day that is cheaper than it sounds and keeps date buckets
// impossible to desynchronize through partial writes.
type SequenceLogStore struct {
	path string
}

// NewSequenceLogStore builds the store for the given file path.
func NewSequenceLogStore(path string) *SequenceLogStore {
	return &SequenceLogStore{path: path}
}

// Load reads the persisted log. A missing file is a normal first run and
// yields an empty log. Content that no longer parses yields ErrLogCorrupt:
// the caller fails loudly instead of silently resetting issued history.
func (s *SequenceLogStore) Load() (entity.SequenceLog, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entity.SequenceLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sequence log: %w", err)
	}

	var log entity.SequenceLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLogCorrupt, s.path, err)
	}
	if log == nil {
		log = entity.SequenceLog{}
	}
	return log, nil
}

// Append adds the record to its date bucket and rewrites the whole file
// atomically (temp file + rename), so readers never observe a torn log.
func (s *SequenceLogStore) Append(record entity.DocumentRecord) error {
	log, err := s.Load()
	if err != nil {
		return err
	}
	log[record.IssueDate] = append(log[record.IssueDate], record)

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(dir, ".credit_note_log-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
