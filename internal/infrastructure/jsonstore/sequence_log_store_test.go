package jsonstore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/domain"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/internal/infrastructure/jsonstore"
)

func record(number, dateKey string) entity.DocumentRecord {
	return entity.DocumentRecord{
		ID:             number + "-id",
		DocumentNumber: number,
		IssueDate:      dateKey,
		IssueTime:      "10:00:00",
		TotalWithVAT:   "80.25",
	}
}

// A missing file is a normal first run: empty log, no error.
func TestLoad_MissingFileYieldsEmptyLog(t *testing.T) {
	store := jsonstore.NewSequenceLogStore(filepath.Join(t.TempDir(), "log.json"))

	log, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, log)
}

// Append creates the date bucket and preserves insertion order across
// reloads.
func TestAppendThenLoad_PreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	store := jsonstore.NewSequenceLogStore(path)

	require.NoError(t, store.Append(record("CNT256801-001", "2025-01-15")))
	require.NoError(t, store.Append(record("CNT256801-002", "2025-01-15")))
	require.NoError(t, store.Append(record("CNT256801-001", "2025-01-16")))

	log, err := store.Load()
	require.NoError(t, err)

	require.Len(t, log["2025-01-15"], 2)
	assert.Equal(t, "CNT256801-001", log["2025-01-15"][0].DocumentNumber)
	assert.Equal(t, "CNT256801-002", log["2025-01-15"][1].DocumentNumber)
	require.Len(t, log["2025-01-16"], 1)
}

// The persisted form is a plain JSON object a human can read and repair.
func TestAppend_WritesHumanReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	store := jsonstore.NewSequenceLogStore(path)
	require.NoError(t, store.Append(record("CNT256801-001", "2025-01-15")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"2025-01-15\"")

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "CNT256801-001", raw["2025-01-15"][0]["credit_note_no"])
}

// Reloading the log reproduces the same next number as the live snapshot
// (idempotent load).
func TestLoad_IdempotentNextNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	store := jsonstore.NewSequenceLogStore(path)
	day := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(record("CNT256801-001", "2025-01-15")))

	log1, err := store.Load()
	require.NoError(t, err)
	log2, err := jsonstore.NewSequenceLogStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t,
		creditnote.GenerateNumber(day, log1),
		creditnote.GenerateNumber(day, log2))
	assert.Equal(t, "CNT256801-002", creditnote.GenerateNumber(day, log2))
}

// Content that no longer parses surfaces ErrLogCorrupt instead of silently
// resetting issued history.
func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := jsonstore.NewSequenceLogStore(path)

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrLogCorrupt)
}

// Appending to a corrupt log refuses rather than overwriting history.
func TestAppend_RefusesCorruptLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	store := jsonstore.NewSequenceLogStore(path)

	err := store.Append(record("CNT256801-001", "2025-01-15"))

	assert.ErrorIs(t, err, domain.ErrLogCorrupt)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "[]", string(data), "corrupt file must be left untouched")
}

// The store creates missing parent directories on first append.
func TestAppend_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "log.json")
	store := jsonstore.NewSequenceLogStore(path)

	require.NoError(t, store.Append(record("CNT256801-001", "2025-01-15")))
	assert.FileExists(t, path)
}
