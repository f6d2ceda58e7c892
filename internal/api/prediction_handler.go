package api

import (
	"net/http"

	"github.com/ajharbinger/football-connector/internal/errors"
	"github.com/ajharbinger/football-connector/internal/services"
	"github.com/gin-gonic/gin"
)

// PredictionHandler serves the placeholder listing and the heuristic analysis
type PredictionHandler struct {
	predictionService services.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

type topRequest struct {
	N int `uri:"n" binding:"required,min=1"`
}

type analyzeRequest struct {
	FixtureID int `uri:"fixtureId" binding:"required,min=1"`
}

// GetTopPredictions returns placeholder predictions for the first n fixtures of today
func (h *PredictionHandler) GetTopPredictions(c *gin.Context) {
	var req topRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
		return
	}

	list, err := h.predictionService.TopPredictions(c.Request.Context(), req.N)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// AnalyzeFixture runs the heuristic for one fixture. An unknown fixture is reported in a
// 200 body rather than an error status.
func (h *PredictionHandler) AnalyzeFixture(c *gin.Context) {
	rawID := c.Param("fixtureId")

	var req analyzeRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "fixture id must be a positive integer",
			"fixture_id": rawID,
		})
		return
	}

	prediction, err := h.predictionService.AnalyzeFixture(c.Request.Context(), req.FixtureID)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"error":      "fixture " + rawID + " not found",
				"fixture_id": rawID,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}
