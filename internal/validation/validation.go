package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iudanet/tutortrack/internal/models"
	"github.com/iudanet/tutortrack/pkg/api"
)

// MaxDisplayNameLen максимальная длина отображаемого имени (в символах)
const MaxDisplayNameLen = 64

var (
	// ErrMissingField indicates that a required field is absent or blank
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTimestamp indicates that a timestamp is not RFC 3339
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ValidateDisplayName проверяет отображаемое имя и возвращает его без пробелов по краям.
// Имя: свободный текст, ограничена только длина.
func ValidateDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("display name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", fmt.Errorf("display name must not exceed %d characters", MaxDisplayNameLen)
	}

	return name, nil
}

// ValidateTrackRequest проверяет входящее событие прогресса и переводит его в модель.
// Ничего не пишет, поэтому отклоненный запрос не оставляет частичных изменений.
func ValidateTrackRequest(req *api.TrackRequest) (*models.ProgressEvent, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if req.StepID == "" {
		missing = append(missing, "stepId")
	}
	if req.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	ts, err := time.Parse(time.RFC3339Nano, req.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, req.Timestamp)
	}

	name, err := ValidateDisplayName(req.Name)
	if err != nil {
		return nil, err
	}

	return &models.ProgressEvent{
		Name:      name,
		StepID:    req.StepID,
		ChapterID: req.ChapterID,
		Timestamp: ts.UTC(),
	}, nil
}
