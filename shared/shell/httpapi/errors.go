package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{core.ErrNotFound, http.StatusNotFound},
	{core.ErrInvalidInput, http.StatusBadRequest},
	{core.ErrPatronNotEligible, http.StatusForbidden},
	{core.ErrNoCopiesAvailable, http.StatusConflict},
	{core.ErrLoanLimitExceeded, http.StatusConflict},
	{core.ErrDuplicateReservation, http.StatusConflict},
	{core.ErrAlreadyReturned, http.StatusConflict},
	{core.ErrAlreadyTerminal, http.StatusConflict},
	{core.ErrConflict, http.StatusConflict},
	{ledger.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{ledger.ErrConcurrencyConflict, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusServiceUnavailable},
}

// StatusFor maps an error returned by a handler onto an HTTP status code.
func StatusFor(err error) int {
	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			return candidate.status
		}
	}

	return http.StatusInternalServerError
}

// abortWithError writes the error response. Internal errors are logged and not disclosed.
func abortWithError(c *gin.Context, logger *slog.Logger, err error) {
	status := StatusFor(err)
	message := strings.ReplaceAll(err.Error(), "\n", ": ")

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), logMsgRequestFailed,
			logAttrPath, c.Request.URL.Path,
			logAttrStatus, status,
			logAttrError, err.Error(),
		)

		if status == http.StatusInternalServerError {
			message = http.StatusText(status)
		}
	}

	c.AbortWithStatusJSON(status, gin.H{
		"status":     "error",
		"error":      message,
		"code":       status,
		"request_id": c.GetString(requestIDKey),
	})
}

func invalidInput(reason string) error {
	return core.Failure(core.ErrInvalidInput, reason)
}
