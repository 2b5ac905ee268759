package client

import (
	"net/http"

	apperrors "wedmarket/pkg/errors"
)

// Result is the success value shared by every marketplace API call. Failures are
// reported through the accompanying *errors.AppError.
type Result[T any] struct {
	Data    T
	Message string
}

type envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// rejected reports an explicit {"success": false} body delivered with a 2xx status.
func (e envelope) rejected() *apperrors.AppError {
	if e.Success == nil || *e.Success {
		return nil
	}
	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = "Request was rejected by the marketplace API"
	}
	return apperrors.New(apperrors.CodeBadRequest, msg, http.StatusBadRequest)
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
