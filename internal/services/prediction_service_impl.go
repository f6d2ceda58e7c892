package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ajharbinger/football-connector/internal/errors"
	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/internal/models"
	"github.com/ajharbinger/football-connector/internal/scoring"
)

// Supporting sources of an analysis, in reporting order
const (
	SourceHomeStatistics = "home_statistics"
	SourceAwayStatistics = "away_statistics"
	SourceHomeInjuries   = "home_injuries"
	SourceAwayInjuries   = "away_injuries"
)

// predictionServiceImpl implements PredictionService
type predictionServiceImpl struct {
	gateway Gateway
	engine  *scoring.ScoringEngine
	today   func() string
	logger  logger.Logger
}

func newPredictionService(gateway Gateway, engine *scoring.ScoringEngine, today func() string, log logger.Logger) PredictionService {
	return &predictionServiceImpl{
		gateway: gateway,
		engine:  engine,
		today:   today,
		logger:  log,
	}
}

// TopPredictions applies the placeholder prediction to the first n of today's fixtures
func (s *predictionServiceImpl) TopPredictions(ctx context.Context, n int) (*models.PredictionList, error) {
	if n < 1 {
		return nil, errors.InvalidInput("n must be a positive integer", nil).WithOperation("TopPredictions")
	}

	date := s.today()
	envelope, err := s.gateway.FixturesByDate(ctx, date)
	if err != nil {
		return nil, errors.UpstreamError("failed to fetch fixtures for "+date, err).WithOperation("TopPredictions")
	}

	fixtures, err := models.DecodeFixtures(envelope.Response)
	if err != nil {
		return nil, errors.UpstreamError("unexpected fixtures payload", err).WithOperation("TopPredictions")
	}
	if len(fixtures) > n {
		fixtures = fixtures[:n]
	}

	predictions := make([]models.Prediction, 0, len(fixtures))
	for _, fixture := range fixtures {
		predictions = append(predictions, s.engine.Placeholder(fixture))
	}

	return &models.PredictionList{
		Date:        date,
		Count:       len(predictions),
		Predictions: predictions,
	}, nil
}

// AnalyzeFixture fetches a fixture and its supporting data, then runs the heuristic.
// Supporting calls run concurrently; a failed one degrades to defaults and is reported
// in the prediction's degraded sources.
func (s *predictionServiceImpl) AnalyzeFixture(ctx context.Context, fixtureID int) (*models.Prediction, error) {
	envelope, err := s.gateway.FixtureByID(ctx, fixtureID)
	if err != nil {
		return nil, errors.UpstreamError(fmt.Sprintf("failed to fetch fixture %d", fixtureID), err).
			WithOperation("AnalyzeFixture")
	}

	fixtures, err := models.DecodeFixtures(envelope.Response)
	if err != nil {
		return nil, errors.UpstreamError("unexpected fixture payload", err).WithOperation("AnalyzeFixture")
	}
	if len(fixtures) == 0 {
		return nil, errors.NotFound(fmt.Sprintf("fixture %d not found", fixtureID), nil).
			WithOperation("AnalyzeFixture")
	}
	fixture := fixtures[0]

	input := scoring.MatchInput{Fixture: fixture}
	sources := []string{SourceHomeStatistics, SourceAwayStatistics, SourceHomeInjuries, SourceAwayInjuries}
	failed := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		input.HomeStats, failed[0] = s.fetchStatistics(gctx, fixture, fixture.Home)
		return nil
	})
	g.Go(func() error {
		input.AwayStats, failed[1] = s.fetchStatistics(gctx, fixture, fixture.Away)
		return nil
	})
	g.Go(func() error {
		input.HomeInjuries, failed[2] = s.fetchInjuries(gctx, fixture, fixture.Home)
		return nil
	})
	g.Go(func() error {
		input.AwayInjuries, failed[3] = s.fetchInjuries(gctx, fixture, fixture.Away)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.UpstreamError("analysis cancelled", err).WithOperation("AnalyzeFixture")
	}

	for i, source := range sources {
		if failed[i] {
			input.DegradedFrom = append(input.DegradedFrom, source)
		}
	}
	if len(input.DegradedFrom) > 0 {
		s.logger.Warn("Analysis using defaults", "fixture", fixtureID, "degraded", input.DegradedFrom)
	}

	prediction := s.engine.Predict(input)
	return &prediction, nil
}

// fetchStatistics returns the team's statistics, or nil and true when unavailable
func (s *predictionServiceImpl) fetchStatistics(ctx context.Context, fixture models.Fixture, team models.TeamRef) (*models.TeamStatistics, bool) {
	envelope, err := s.gateway.TeamStatistics(ctx, fixture.League.ID, fixture.League.Season, team.ID)
	if err != nil {
		return nil, true
	}

	stats, err := models.DecodeTeamStatistics(envelope.Response)
	if err != nil {
		s.logger.Warn("Unexpected team statistics payload", "team", team.ID, "error", err)
		return nil, true
	}
	return &stats, false
}

// fetchInjuries returns the team's injury report for the fixture, or nil and true when unavailable
func (s *predictionServiceImpl) fetchInjuries(ctx context.Context, fixture models.Fixture, team models.TeamRef) (*models.InjuryReport, bool) {
	envelope, err := s.gateway.Injuries(ctx, fixture.ID, team.ID)
	if err != nil {
		return nil, true
	}

	report, err := models.DecodeInjuryReport(team.ID, envelope.Response)
	if err != nil {
		s.logger.Warn("Unexpected injuries payload", "team", team.ID, "error", err)
		return nil, true
	}
	return &report, false
}
