package repository

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// parseTime parses an RFC3339 column, returning the zero time on bad data.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// encodeViolations converts violations to the JSON text stored per result.
func encodeViolations(v []domain.Violation) (string, error) {
	if len(v) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeViolations(s string) ([]domain.Violation, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var v []domain.Violation
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
