package upstream

import (
	"context"
	"net/url"
	"strconv"
)

// FixturesByDate fetches fixtures for a date, passed through unmodified
func (c *Client) FixturesByDate(ctx context.Context, date string) (*Envelope, error) {
	return c.Get(ctx, "/fixtures", url.Values{"date": {date}})
}

// LiveFixtures fetches fixtures currently in play
func (c *Client) LiveFixtures(ctx context.Context) (*Envelope, error) {
	return c.Get(ctx, "/fixtures", url.Values{"live": {"all"}})
}

// FixturesByLeague fetches the next n fixtures of a league
func (c *Client) FixturesByLeague(ctx context.Context, leagueID string, next int) (*Envelope, error) {
	return c.Get(ctx, "/fixtures", url.Values{
		"league": {leagueID},
		"next":   {strconv.Itoa(next)},
	})
}

// FixtureByID fetches a single fixture
func (c *Client) FixtureByID(ctx context.Context, fixtureID int) (*Envelope, error) {
	return c.Get(ctx, "/fixtures", url.Values{"id": {strconv.Itoa(fixtureID)}})
}

// TeamStatistics fetches a team's season statistics within a league
func (c *Client) TeamStatistics(ctx context.Context, leagueID, season, teamID int) (*Envelope, error) {
	return c.Get(ctx, "/teams/statistics", url.Values{
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
		"team":   {strconv.Itoa(teamID)},
	})
}

// Injuries fetches the injury entries of one team for a fixture
func (c *Client) Injuries(ctx context.Context, fixtureID, teamID int) (*Envelope, error) {
	return c.Get(ctx, "/injuries", url.Values{
		"fixture": {strconv.Itoa(fixtureID)},
		"team":    {strconv.Itoa(teamID)},
	})
}
