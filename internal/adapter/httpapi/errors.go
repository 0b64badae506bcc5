package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// toHTTPError translates domain errors into transport status codes.
func toHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrSetNotFound),
		errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrMemoryRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrSessionClosed),
		errors.Is(err, entity.ErrSessionNotExhausted),
		errors.Is(err, entity.ErrRecordConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrItemNotInBatch),
		errors.Is(err, entity.ErrNoEligibleItems),
		errors.Is(err, entity.ErrEmptyVocabularySet),
		errors.Is(err, entity.ErrInvalidItemConfiguration):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entity.ErrInvalidBatchSize),
		errors.Is(err, entity.ErrInvalidQuality):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		// Unexpected errors stay out of the response body; the request
		// logger carries the detail via the wrapped internal error.
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}
