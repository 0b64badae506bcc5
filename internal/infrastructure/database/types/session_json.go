package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// SessionItems stores a session's per-item attempt state as a JSON column.
type SessionItems []entity.SessionItem

// PracticeAnswers stores a session's answer log as a JSON column.
type PracticeAnswers []entity.PracticeAnswer

// Scan implements sql.Scanner for SessionItems.
func (s *SessionItems) Scan(src any) error {
	return scanJSON(src, s, "SessionItems")
}

// Value implements driver.Valuer for SessionItems.
func (s SessionItems) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return valueJSON(s)
}

// Scan implements sql.Scanner for PracticeAnswers.
func (a *PracticeAnswers) Scan(src any) error {
	return scanJSON(src, a, "PracticeAnswers")
}

// Value implements driver.Valuer for PracticeAnswers.
func (a PracticeAnswers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return valueJSON(a)
}

func scanJSON(src, dst any, name string) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dst)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("%s: unsupported src type %T", name, src)
	}
}

func valueJSON(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
