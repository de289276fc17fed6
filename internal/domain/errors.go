package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrTemplateNotFound = errors.New("export template not found")
	ErrLogCorrupt       = errors.New("sequence log is corrupt")
	ErrPersistence      = errors.New("sequence log write failed")
	ErrInvalidInput     = errors.New("invalid input")
)
