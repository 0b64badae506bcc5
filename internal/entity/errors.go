package entity

import "errors"

// Domain errors for the practice engine and its aggregates.
var (
	ErrInvalidQuality           = errors.New("quality out of range [0,5]")
	ErrEmptyVocabularySet       = errors.New("vocabulary set has no items")
	ErrNoEligibleItems          = errors.New("no eligible items for practice")
	ErrItemNotInBatch           = errors.New("item is not part of the session batch")
	ErrSessionNotFound          = errors.New("practice session not found")
	ErrSessionClosed            = errors.New("practice session already closed")
	ErrSessionNotExhausted      = errors.New("practice session has unanswered items")
	ErrInvalidItemConfiguration = errors.New("invalid vocabulary item configuration")
	ErrInvalidBatchSize         = errors.New("batch size must be positive")
	ErrItemNotFound             = errors.New("vocabulary item not found")
	ErrSetNotFound              = errors.New("vocabulary set not found")
	ErrMemoryRecordNotFound     = errors.New("memory record not found")
	ErrRecordConflict           = errors.New("memory record was modified concurrently")
)
