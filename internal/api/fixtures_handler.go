package api

import (
	"net/http"

	"github.com/ajharbinger/football-connector/internal/services"
	"github.com/gin-gonic/gin"
)

// FixturesHandler proxies fixture listings
type FixturesHandler struct {
	fixtureService services.FixtureService
}

// NewFixturesHandler creates a new fixtures handler
func NewFixturesHandler(fixtureService services.FixtureService) *FixturesHandler {
	return &FixturesHandler{fixtureService: fixtureService}
}

type leagueQuery struct {
	Next *int `form:"next" binding:"omitempty,min=1,max=50"`
}

// GetToday proxies fixtures for the current date
func (h *FixturesHandler) GetToday(c *gin.Context) {
	envelope, err := h.fixtureService.Today(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondEnvelope(c, envelope)
}

// GetLive proxies fixtures currently in play
func (h *FixturesHandler) GetLive(c *gin.Context) {
	envelope, err := h.fixtureService.Live(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondEnvelope(c, envelope)
}

// GetByDate proxies fixtures for the :date path segment, unmodified
func (h *FixturesHandler) GetByDate(c *gin.Context) {
	envelope, err := h.fixtureService.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondEnvelope(c, envelope)
}

// GetByLeague proxies the next fixtures of league :id
func (h *FixturesHandler) GetByLeague(c *gin.Context) {
	var query leagueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid next parameter: must be between 1 and 50"})
		return
	}
	next := services.DefaultLeagueNext
	if query.Next != nil {
		next = *query.Next
	}

	envelope, err := h.fixtureService.ByLeague(c.Request.Context(), c.Param("id"), next)
	if err != nil {
		respondError(c, err)
		return
	}
	respondEnvelope(c, envelope)
}
