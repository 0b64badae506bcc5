package app

import (
	"github.com/eslsoft/vocdrill/internal/infrastructure/config"
	"github.com/eslsoft/vocdrill/internal/repository"
	"github.com/eslsoft/vocdrill/internal/usecase"
)

func providePracticeUsecase(
	cfg *config.Config,
	sets repository.VocabSetRepository,
	records repository.MemoryRecordRepository,
	sessions repository.PracticeSessionRepository,
) usecase.PracticeUsecase {
	return usecase.NewPracticeUsecase(sets, records, sessions, cfg.Practice.DefaultBatchSize)
}
