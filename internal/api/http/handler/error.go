package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/passkeeper/internal/logger"
	"github.com/dtroode/passkeeper/internal/model"
)

// handleError writes the response for err. Only client errors expose their
// message; internal causes are logged instead.
func handleError(w http.ResponseWriter, l *logger.Logger, err error) {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeMessage(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, model.ErrInvalidSortKey), errors.Is(err, model.ErrPageSizeExceeded):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "record not found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		l.Warn("request abandoned", "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "request timed out")
	default:
		l.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
