package models

import "net/http"

type WebError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *WebError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Cause != nil {
		return e.Cause.Error()
	}

	return http.StatusText(e.StatusCode)
}

func (e *WebError) Unwrap() error {
	return e.Cause
}

func NewWebError(statusCode int, message string, cause error) *WebError {
	return &WebError{
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
