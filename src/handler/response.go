package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/market-stats/src/models"
)

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(statusCode int, message string, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := models.ErrorResponse{Error: message}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

// toWebError maps loader and computation errors onto client responses. Data
// problems are the caller's fault (400); anything else is a 500.
func toWebError(err error) *models.WebError {
	var webErr *models.WebError
	if errors.As(err, &webErr) {
		return webErr
	}

	switch {
	case errors.Is(err, models.ErrInvalidSource):
		return models.NewWebError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, models.ErrNotFound):
		return models.NewWebError(http.StatusBadRequest, models.ErrNotFound.Error(), err)
	case errors.Is(err, models.ErrMalformedData), errors.Is(err, models.ErrEmptySeries), errors.Is(err, models.ErrInvalidWindow):
		return models.NewWebError(http.StatusBadRequest, err.Error(), err)
	default:
		return models.NewWebError(http.StatusInternalServerError, "internal server error", err)
	}
}

func writeError(r *http.Request, w http.ResponseWriter, err error) {
	webErr := toWebError(err)

	logger := log.WithContext(r.Context()).WithFields(log.Fields{
		"path":   r.URL.Path,
		"status": webErr.StatusCode,
	})

	if webErr.StatusCode >= http.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
	} else {
		logger.Infof("request rejected: %v", err)
	}

	if respErr := setErrorResponse(webErr.StatusCode, webErr.Error(), w); respErr != nil {
		logger.Errorf("failed to set error response: %v", respErr)
	}
}
