package repository

import (
	"context"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// VocabSetRepository is the engine's read-only view of the content store.
// Set authoring lives outside the engine; the importer is the only writer.
type VocabSetRepository interface {
	GetSet(ctx context.Context, setID int64) (*entity.VocabularySet, error)
	// ListItems returns the set's items in authoring order.
	ListItems(ctx context.Context, setID int64) ([]entity.VocabularyItem, error)

	CreateSet(ctx context.Context, set *entity.VocabularySet) (*entity.VocabularySet, error)
	CreateItems(ctx context.Context, items []entity.VocabularyItem) error
}
