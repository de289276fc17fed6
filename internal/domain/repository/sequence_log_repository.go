package repository

import "github.com/Thaworapong/credit-note/internal/domain/entity"

// SequenceLogRepository is the persistence port for the per-day document log.
type SequenceLogRepository interface {
	// Load returns the full log. A missing backing file yields an empty log,
	// not an error; unparsable content yields domain.ErrLogCorrupt.
	Load() (entity.SequenceLog, error)
	// Append adds the record to its date bucket and rewrites the whole
	// mapping atomically. Failure yields domain.ErrPersistence.
	Append(record entity.DocumentRecord) error
}
