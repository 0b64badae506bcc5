package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/usecase"
)

// PracticeService exposes the practice engine over REST.
type PracticeService struct {
	uc usecase.PracticeUsecase
}

// NewPracticeService builds the HTTP facade for the practice usecase.
func NewPracticeService(uc usecase.PracticeUsecase) *PracticeService {
	return &PracticeService{uc: uc}
}

// Register mounts the routes on the given group.
func (s *PracticeService) Register(g *echo.Group) {
	g.POST("/practice-sessions", s.StartSession)
	g.GET("/practice-sessions/:id", s.GetSession)
	g.POST("/practice-sessions/:id/answers", s.SubmitAnswer)
	g.POST("/practice-sessions/:id/complete", s.CompleteSession)
	g.GET("/vocabulary-sets/:id/mastery", s.GetMastery)
}

type startSessionRequest struct {
	LearnerID int64  `json:"learner_id"`
	SetID     int64  `json:"set_id"`
	Mode      string `json:"mode"`
	BatchSize int    `json:"batch_size"`
}

type batchItem struct {
	ItemID             int64  `json:"item_id"`
	Word               string `json:"word"`
	Translation        string `json:"translation"`
	ExampleSentence    string `json:"example_sentence"`
	ExampleTranslation string `json:"example_translation"`
	AudioURL           string `json:"audio_url,omitempty"`
	MaxErrors          int32  `json:"max_errors"`
}

type startSessionResponse struct {
	SessionID           string               `json:"session_id"`
	Mode                string               `json:"mode"`
	Batch               []batchItem          `json:"batch"`
	MasteryStatusBefore entity.MasteryStatus `json:"mastery_status_before"`
}

// StartSession opens a practice round and returns the selected batch.
func (s *PracticeService) StartSession(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := s.uc.StartSession(c.Request().Context(), req.LearnerID, req.SetID, entity.PracticeMode(req.Mode), req.BatchSize)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, startSessionResponse{
		SessionID:           res.Session.ID,
		Mode:                string(res.Session.Mode),
		Batch:               lo.Map(res.Batch, func(item entity.VocabularyItem, _ int) batchItem { return toBatchItem(item) }),
		MasteryStatusBefore: res.MasteryBefore,
	})
}

type submitAnswerRequest struct {
	ItemID           int64   `json:"item_id"`
	IsCorrect        bool    `json:"is_correct"`
	HintUsed         bool    `json:"hint_used"`
	TimeSpentSeconds float64 `json:"time_spent_seconds"`
}

type submitAnswerResponse struct {
	Outcome            string  `json:"outcome"`
	Attempts           int32   `json:"attempts"`
	Score              int32   `json:"score"`
	ItemMemoryStrength float64 `json:"item_memory_strength"`
}

// SubmitAnswer records one answer submission for a batch item.
func (s *PracticeService) SubmitAnswer(c echo.Context) error {
	var req submitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := s.uc.SubmitAnswer(c.Request().Context(), c.Param("id"), usecase.SubmitAnswerInput{
		ItemID:           req.ItemID,
		IsCorrect:        req.IsCorrect,
		HintUsed:         req.HintUsed,
		TimeSpentSeconds: req.TimeSpentSeconds,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, submitAnswerResponse{
		Outcome:            string(res.Outcome),
		Attempts:           res.Attempts,
		Score:              res.Score,
		ItemMemoryStrength: res.MemoryStrength,
	})
}

type completeSessionRequest struct {
	Force bool `json:"force"`
}

type masteryResponse struct {
	MasteryStatus entity.MasteryStatus `json:"mastery_status"`
}

// CompleteSession closes a session and reports the resulting mastery.
func (s *PracticeService) CompleteSession(c echo.Context) error {
	var req completeSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := s.uc.CompleteSession(c.Request().Context(), c.Param("id"), req.Force)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, masteryResponse{MasteryStatus: *status})
}

type sessionResponse struct {
	SessionID   string                  `json:"session_id"`
	LearnerID   int64                   `json:"learner_id"`
	SetID       int64                   `json:"set_id"`
	Mode        string                  `json:"mode"`
	Items       []entity.SessionItem    `json:"items"`
	Answers     []entity.PracticeAnswer `json:"answers"`
	StartedAt   string                  `json:"started_at"`
	CompletedAt string                  `json:"completed_at,omitempty"`
}

// GetSession returns a session snapshot with its answer log.
func (s *PracticeService) GetSession(c echo.Context) error {
	session, err := s.uc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	resp := sessionResponse{
		SessionID: session.ID,
		LearnerID: session.LearnerID,
		SetID:     session.SetID,
		Mode:      string(session.Mode),
		Items:     session.Items,
		Answers:   session.Answers,
		StartedAt: session.StartedAt.Format(time.RFC3339),
	}
	if session.CompletedAt != nil {
		resp.CompletedAt = session.CompletedAt.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMastery reports a learner's progress toward the set's mastery target.
func (s *PracticeService) GetMastery(c echo.Context) error {
	setID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid set id")
	}
	learnerID, err := strconv.ParseInt(c.QueryParam("learner_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid learner_id")
	}

	status, err := s.uc.Mastery(c.Request().Context(), learnerID, setID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, status)
}

func toBatchItem(item entity.VocabularyItem) batchItem {
	return batchItem{
		ItemID:             item.ID,
		Word:               item.Word,
		Translation:        item.Translation,
		ExampleSentence:    item.ExampleSentence,
		ExampleTranslation: item.ExampleTranslation,
		AudioURL:           item.AudioURL,
		MaxErrors:          item.MaxErrors,
	}
}
