package api

import (
	stderrors "errors"
	"net/http"

	"github.com/ajharbinger/football-connector/internal/errors"
	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Gateway failures keep their
// {"error", "source"} shape.
func respondError(c *gin.Context, err error) {
	var failure *upstream.Failure
	if stderrors.As(err, &failure) {
		c.JSON(http.StatusBadGateway, failure)
		return
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		// Unclassified errors are not shown to clients
		appErr = errors.InternalError("internal server error", err)
	}
	message := appErr.Message

	switch appErr.Code {
	case errors.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	case errors.ErrCodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	case errors.ErrCodeUpstreamError:
		c.JSON(http.StatusBadGateway, gin.H{"error": message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// respondEnvelope writes the upstream body exactly as received
func respondEnvelope(c *gin.Context, envelope *upstream.Envelope) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", envelope.Raw)
}
