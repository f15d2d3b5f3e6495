package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithFields(pkgerrors.FieldError{Field: key, Message: "must be numeric"})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithFields(pkgerrors.FieldError{Field: key, Message: "is out of range"})
	}
	return value, nil
}

// ParseQueryStatus reads an optional status filter. Empty returns nil.
func ParseQueryStatus(r *http.Request, key string) (*enums.ApplicationStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseApplicationStatus(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithFields(pkgerrors.FieldError{Field: key, Message: "must be one of: new, in_progress, completed, rejected"})
	}
	return &status, nil
}

// ParseQueryDate reads an optional ISO-8601 date or timestamp. Empty
// returns nil.
func ParseQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithFields(pkgerrors.FieldError{Field: key, Message: "must be an ISO-8601 date"})
}

// ParsePathID reads a positive integer id from a route parameter value.
func ParsePathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithFields(pkgerrors.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	return id, nil
}
