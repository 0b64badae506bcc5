package entity

// MasteryStatus is a derived view over all memory records of a learner+set
// pair; it is computed on demand and never persisted on its own.
type MasteryStatus struct {
	CurrentMastery float64 `json:"current_mastery"`
	TargetMastery  float64 `json:"target_mastery"`
	Achieved       bool    `json:"achieved"`
	WordsMastered  int32   `json:"words_mastered"`
	TotalWords     int32   `json:"total_words"`
}
