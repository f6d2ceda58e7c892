package services

import (
	"context"
	"fmt"

	"github.com/ajharbinger/football-connector/internal/errors"
	"github.com/ajharbinger/football-connector/internal/upstream"
)

// League listing bounds for the next parameter
const (
	DefaultLeagueNext = 10
	MaxLeagueNext     = 50
)

// fixtureServiceImpl implements FixtureService
type fixtureServiceImpl struct {
	gateway Gateway
	today   func() string
}

func newFixtureService(gateway Gateway, today func() string) FixtureService {
	return &fixtureServiceImpl{gateway: gateway, today: today}
}

// Today fetches fixtures for the current date in the configured timezone
func (s *fixtureServiceImpl) Today(ctx context.Context) (*upstream.Envelope, error) {
	return s.ByDate(ctx, s.today())
}

// Live fetches fixtures currently in play
func (s *fixtureServiceImpl) Live(ctx context.Context) (*upstream.Envelope, error) {
	envelope, err := s.gateway.LiveFixtures(ctx)
	if err != nil {
		return nil, errors.UpstreamError("failed to fetch live fixtures", err).WithOperation("Live")
	}
	return envelope, nil
}

// ByDate fetches fixtures for date without reformatting it
func (s *fixtureServiceImpl) ByDate(ctx context.Context, date string) (*upstream.Envelope, error) {
	envelope, err := s.gateway.FixturesByDate(ctx, date)
	if err != nil {
		return nil, errors.UpstreamError("failed to fetch fixtures for "+date, err).WithOperation("ByDate")
	}
	return envelope, nil
}

// ByLeague fetches the next fixtures of a league
func (s *fixtureServiceImpl) ByLeague(ctx context.Context, leagueID string, next int) (*upstream.Envelope, error) {
	if next < 1 || next > MaxLeagueNext {
		return nil, errors.InvalidInput(fmt.Sprintf("next must be between 1 and %d", MaxLeagueNext), nil).
			WithOperation("ByLeague")
	}

	envelope, err := s.gateway.FixturesByLeague(ctx, leagueID, next)
	if err != nil {
		return nil, errors.UpstreamError("failed to fetch fixtures for league "+leagueID, err).WithOperation("ByLeague")
	}
	return envelope, nil
}
