package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/repository"
	"github.com/eslsoft/vocdrill/internal/srs"
)

// AnswerOutcome is the per-submission verdict of SubmitAnswer.
type AnswerOutcome string

const (
	// OutcomeRetry means the answer was wrong but the learner may try again.
	OutcomeRetry AnswerOutcome = "retry"
	// OutcomeCorrect closes the item with a successful recall.
	OutcomeCorrect AnswerOutcome = "correct"
	// OutcomeFailed closes the item after exhausting the allowed errors.
	OutcomeFailed AnswerOutcome = "failed"
)

// StartSessionResult bundles a freshly opened session with its batch and the
// mastery snapshot taken before any answer.
type StartSessionResult struct {
	Session       *entity.PracticeSession
	Batch         []entity.VocabularyItem
	MasteryBefore entity.MasteryStatus
}

// SubmitAnswerInput carries one answer submission.
type SubmitAnswerInput struct {
	ItemID           int64
	IsCorrect        bool
	HintUsed         bool
	TimeSpentSeconds float64
}

// SubmitAnswerResult reports the submission verdict. Score and Record are
// only set on terminal outcomes; a retry leaves the memory record untouched.
type SubmitAnswerResult struct {
	Outcome        AnswerOutcome
	Attempts       int32
	Score          int32
	MemoryStrength float64
	Record         *entity.MemoryRecord
}

// PracticeUsecase orchestrates practice rounds: batch selection, per-answer
// memory updates and the closing mastery verdict.
type PracticeUsecase interface {
	StartSession(ctx context.Context, learnerID, setID int64, mode entity.PracticeMode, batchSize int) (*StartSessionResult, error)
	SubmitAnswer(ctx context.Context, sessionID string, input SubmitAnswerInput) (*SubmitAnswerResult, error)
	// CompleteSession closes the session and evaluates mastery. With force,
	// unanswered items are finalized as abandoned instead of failing with
	// entity.ErrSessionNotExhausted.
	CompleteSession(ctx context.Context, sessionID string, force bool) (*entity.MasteryStatus, error)
	GetSession(ctx context.Context, sessionID string) (*entity.PracticeSession, error)
	Mastery(ctx context.Context, learnerID, setID int64) (*entity.MasteryStatus, error)
}

// NewPracticeUsecase wires the repositories with default behaviour.
func NewPracticeUsecase(
	sets repository.VocabSetRepository,
	records repository.MemoryRecordRepository,
	sessions repository.PracticeSessionRepository,
	defaultBatchSize int,
) PracticeUsecase {
	if defaultBatchSize < 1 {
		defaultBatchSize = 10
	}
	return &practiceUsecase{
		sets:             sets,
		records:          records,
		sessions:         sessions,
		defaultBatchSize: defaultBatchSize,
		clock:            time.Now,
	}
}

type practiceUsecase struct {
	sets             repository.VocabSetRepository
	records          repository.MemoryRecordRepository
	sessions         repository.PracticeSessionRepository
	defaultBatchSize int
	clock            func() time.Time
}

func (u *practiceUsecase) StartSession(ctx context.Context, learnerID, setID int64, mode entity.PracticeMode, batchSize int) (*StartSessionResult, error) {
	if !mode.Valid() {
		mode = entity.ModeWriting
	}
	if batchSize < 1 {
		batchSize = u.defaultBatchSize
	}

	set, err := u.sets.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	items, err := u.sets.ListItems(ctx, setID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, entity.ErrNoEligibleItems
	}

	records, err := u.records.MapBySet(ctx, learnerID, setID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	batch, err := srs.Select(records, items, batchSize, now)
	if err != nil {
		return nil, err
	}

	before, err := srs.Evaluate(records, len(items), set.TargetMastery, now)
	if err != nil {
		return nil, err
	}

	session := &entity.PracticeSession{
		ID:        uuid.NewString(),
		LearnerID: learnerID,
		SetID:     setID,
		Mode:      mode,
		Items: lo.Map(batch, func(item entity.VocabularyItem, _ int) entity.SessionItem {
			return entity.SessionItem{ItemID: item.ID, State: entity.ItemPending}
		}),
		StartedAt: now,
	}
	created, err := u.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	return &StartSessionResult{Session: created, Batch: batch, MasteryBefore: before}, nil
}

func (u *practiceUsecase) SubmitAnswer(ctx context.Context, sessionID string, input SubmitAnswerInput) (*SubmitAnswerResult, error) {
	session, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Closed() {
		return nil, entity.ErrSessionClosed
	}

	state := session.Item(input.ItemID)
	if state == nil || state.State != entity.ItemPending {
		return nil, entity.ErrItemNotInBatch
	}

	item, err := u.findItem(ctx, session.SetID, input.ItemID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	state.Attempts++
	state.HintUsed = state.HintUsed || input.HintUsed
	state.TimeSpentSeconds += input.TimeSpentSeconds

	if !input.IsCorrect && state.Attempts < item.MaxErrors {
		if _, err := u.sessions.Update(ctx, session); err != nil {
			return nil, err
		}
		return &SubmitAnswerResult{Outcome: OutcomeRetry, Attempts: state.Attempts}, nil
	}

	outcome := OutcomeCorrect
	state.State = entity.ItemCorrect
	if !input.IsCorrect {
		outcome = OutcomeFailed
		state.State = entity.ItemFailed
	}

	score, err := srs.Score(*item, state.Attempts, state.HintUsed, outcome == OutcomeFailed)
	if err != nil {
		return nil, err
	}

	quality := srs.DeriveQuality(input.IsCorrect, state.Attempts, state.HintUsed, false)
	rec, err := u.applyMemoryUpdate(ctx, session.LearnerID, input.ItemID, quality, now)
	if err != nil {
		return nil, err
	}

	session.Answers = append(session.Answers, entity.PracticeAnswer{
		ItemID:           input.ItemID,
		IsCorrect:        input.IsCorrect,
		Attempts:         state.Attempts,
		HintUsed:         state.HintUsed,
		TimeSpentSeconds: state.TimeSpentSeconds,
		Score:            score,
		AnsweredAt:       now,
	})
	if _, err := u.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	return &SubmitAnswerResult{
		Outcome:        outcome,
		Attempts:       state.Attempts,
		Score:          score,
		MemoryStrength: srs.EffectiveStrength(rec, now),
		Record:         rec,
	}, nil
}

func (u *practiceUsecase) CompleteSession(ctx context.Context, sessionID string, force bool) (*entity.MasteryStatus, error) {
	session, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Closed() {
		return nil, entity.ErrSessionClosed
	}
	if !session.Exhausted() && !force {
		return nil, entity.ErrSessionNotExhausted
	}

	now := u.clock()
	for i := range session.Items {
		state := &session.Items[i]
		if state.State != entity.ItemPending {
			continue
		}
		// Force-closed items count as abandoned recalls.
		state.State = entity.ItemAbandoned
		if _, err := u.applyMemoryUpdate(ctx, session.LearnerID, state.ItemID, srs.QualityAbandoned, now); err != nil {
			return nil, err
		}
		session.Answers = append(session.Answers, entity.PracticeAnswer{
			ItemID:           state.ItemID,
			Attempts:         state.Attempts,
			HintUsed:         state.HintUsed,
			TimeSpentSeconds: state.TimeSpentSeconds,
			AnsweredAt:       now,
		})
	}

	session.CompletedAt = &now
	if _, err := u.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	return u.Mastery(ctx, session.LearnerID, session.SetID)
}

func (u *practiceUsecase) GetSession(ctx context.Context, sessionID string) (*entity.PracticeSession, error) {
	return u.sessions.Get(ctx, sessionID)
}

func (u *practiceUsecase) Mastery(ctx context.Context, learnerID, setID int64) (*entity.MasteryStatus, error) {
	set, err := u.sets.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	items, err := u.sets.ListItems(ctx, setID)
	if err != nil {
		return nil, err
	}
	records, err := u.records.MapBySet(ctx, learnerID, setID)
	if err != nil {
		return nil, err
	}

	status, err := srs.Evaluate(records, len(items), set.TargetMastery, u.clock())
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (u *practiceUsecase) findItem(ctx context.Context, setID, itemID int64) (*entity.VocabularyItem, error) {
	items, err := u.sets.ListItems(ctx, setID)
	if err != nil {
		return nil, err
	}
	item, ok := lo.Find(items, func(it entity.VocabularyItem) bool { return it.ID == itemID })
	if !ok {
		return nil, entity.ErrItemNotFound
	}
	return &item, nil
}

// applyMemoryUpdate runs the memory model against the current record state
// and persists the result. A concurrent writer triggers exactly one re-read
// and recompute; the update is a pure function of the record, so recomputing
// is safe.
func (u *practiceUsecase) applyMemoryUpdate(ctx context.Context, learnerID, itemID int64, quality srs.Quality, now time.Time) (*entity.MemoryRecord, error) {
	for attempt := 0; ; attempt++ {
		rec, err := u.records.Get(ctx, learnerID, itemID)
		fresh := false
		switch {
		case errors.Is(err, entity.ErrMemoryRecordNotFound):
			rec = entity.NewMemoryRecord(learnerID, itemID, now)
			fresh = true
		case err != nil:
			return nil, err
		}

		updated, err := srs.Update(*rec, quality, now)
		if err != nil {
			return nil, err
		}

		if fresh {
			saved, err := u.records.Create(ctx, &updated)
			if err == nil {
				return saved, nil
			}
			if errors.Is(err, entity.ErrRecordConflict) && attempt == 0 {
				continue
			}
			return nil, err
		}

		saved, err := u.records.Update(ctx, &updated)
		if err == nil {
			return saved, nil
		}
		if errors.Is(err, entity.ErrRecordConflict) && attempt == 0 {
			continue
		}
		return nil, err
	}
}
