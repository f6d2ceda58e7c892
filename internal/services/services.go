package services

import (
	"context"
	"time"

	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/internal/models"
	"github.com/ajharbinger/football-connector/internal/scoring"
	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/ajharbinger/football-connector/pkg/config"
)

// Services contains all application services
type Services struct {
	Fixtures    FixtureService
	Predictions PredictionService
}

// Gateway is the subset of the upstream client the services depend on
type Gateway interface {
	FixturesByDate(ctx context.Context, date string) (*upstream.Envelope, error)
	LiveFixtures(ctx context.Context) (*upstream.Envelope, error)
	FixturesByLeague(ctx context.Context, leagueID string, next int) (*upstream.Envelope, error)
	FixtureByID(ctx context.Context, fixtureID int) (*upstream.Envelope, error)
	TeamStatistics(ctx context.Context, leagueID, season, teamID int) (*upstream.Envelope, error)
	Injuries(ctx context.Context, fixtureID, teamID int) (*upstream.Envelope, error)
}

// FixtureService proxies fixture listings from the upstream API
type FixtureService interface {
	Today(ctx context.Context) (*upstream.Envelope, error)
	Live(ctx context.Context) (*upstream.Envelope, error)
	ByDate(ctx context.Context, date string) (*upstream.Envelope, error)
	ByLeague(ctx context.Context, leagueID string, next int) (*upstream.Envelope, error)
}

// PredictionService produces match predictions
type PredictionService interface {
	TopPredictions(ctx context.Context, n int) (*models.PredictionList, error)
	AnalyzeFixture(ctx context.Context, fixtureID int) (*models.Prediction, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(gateway Gateway, cfg *config.Config, log logger.Logger) *Services {
	today := todayIn(cfg.Location(), time.Now)

	return &Services{
		Fixtures:    newFixtureService(gateway, today),
		Predictions: newPredictionService(gateway, scoring.NewScoringEngine(), today, log),
	}
}

// todayIn returns a function yielding the current date in loc as YYYY-MM-DD
func todayIn(loc *time.Location, now func() time.Time) func() string {
	return func() string {
		return now().In(loc).Format("2006-01-02")
	}
}
