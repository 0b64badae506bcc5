package entity

import "time"

// PracticeMode distinguishes how the presentation layer exercises an item.
// The engine's selection, scoring and memory updates are mode-agnostic.
type PracticeMode string

const (
	ModeListening PracticeMode = "listening"
	ModeWriting   PracticeMode = "writing"
)

// Valid reports whether the mode is one of the supported variants.
func (m PracticeMode) Valid() bool {
	return m == ModeListening || m == ModeWriting
}

// ItemState is the per-item sub-state within a session.
type ItemState string

const (
	ItemPending ItemState = "pending"
	ItemCorrect ItemState = "correct"
	ItemFailed  ItemState = "failed"
	// ItemAbandoned marks items force-closed without a final answer.
	ItemAbandoned ItemState = "abandoned"
)

// SessionItem carries the running attempt state for one batch entry.
type SessionItem struct {
	ItemID           int64     `json:"item_id"`
	Attempts         int32     `json:"attempts"`
	HintUsed         bool      `json:"hint_used"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	State            ItemState `json:"state"`
}

// PracticeAnswer records the final verdict for one item. Immutable once
// appended.
type PracticeAnswer struct {
	ItemID           int64     `json:"item_id"`
	IsCorrect        bool      `json:"is_correct"`
	Attempts         int32     `json:"attempts"`
	HintUsed         bool      `json:"hint_used"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	Score            int32     `json:"score"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// PracticeSession is one practice round over a selected batch. It owns its
// items and answers exclusively.
type PracticeSession struct {
	ID          string
	LearnerID   int64
	SetID       int64
	Mode        PracticeMode
	Items       []SessionItem
	Answers     []PracticeAnswer
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Closed reports whether the session has been finalized.
func (s *PracticeSession) Closed() bool {
	return s.CompletedAt != nil
}

// Item returns the running state for the given batch item, or nil when the
// item is not part of the batch.
func (s *PracticeSession) Item(itemID int64) *SessionItem {
	for i := range s.Items {
		if s.Items[i].ItemID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// PendingItems counts batch entries without a terminal verdict.
func (s *PracticeSession) PendingItems() int {
	n := 0
	for i := range s.Items {
		if s.Items[i].State == ItemPending {
			n++
		}
	}
	return n
}

// Exhausted reports whether every batch item reached a terminal state.
func (s *PracticeSession) Exhausted() bool {
	return s.PendingItems() == 0
}
