package processor

import (
	"errors"

	"github.com/orayew2002/timetracker/domain"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the uniform reply of every boundary operation. Callers inspect
// Status; Message is a string, or a list of strings for validation failures.
type Result struct {
	Status    string                 `json:"status"`
	Message   any                    `json:"message,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	StartTime string                 `json:"start_time,omitempty"`
	Output    string                 `json:"output,omitempty"`
	Overwork  []domain.OverworkEntry `json:"overwork,omitempty"`
	Data      []map[string]any       `json:"data,omitempty"`
	URL       string                 `json:"url,omitempty"`
	PathFiles []string               `json:"path_files,omitempty"`
}

// OK reports whether r is a success.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// Messages returns the error message(s) of r as a list.
func (r Result) Messages() []string {
	switch m := r.Message.(type) {
	case string:
		return []string{m}
	case []string:
		return m
	}
	return nil
}

func failure(err error) Result {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return Result{Status: StatusError, Message: verr.Messages}
	case errors.Is(err, domain.ErrUnauthorized):
		return Result{Status: StatusError, Message: domain.SessionExpiredMessage}
	default:
		return Result{Status: StatusError, Message: err.Error()}
	}
}

func failureMessage(msg string) Result {
	return Result{Status: StatusError, Message: msg}
}
