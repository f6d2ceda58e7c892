package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Fixture represents a single scheduled or live match
type Fixture struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	Timestamp int64     `json:"timestamp"`
	Timezone  string    `json:"timezone"`
	Venue     string    `json:"venue,omitempty"`
	Status    string    `json:"status"`
	League    League    `json:"league"`
	Home      TeamRef   `json:"home"`
	Away      TeamRef   `json:"away"`
}

// League identifies the competition and season a fixture belongs to
type League struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
}

// TeamRef is a team identifier and display name
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Label returns "Home vs Away"
func (f Fixture) Label() string {
	return fmt.Sprintf("%s vs %s", f.Home.Name, f.Away.Name)
}

// apiFixture mirrors one element of the upstream /fixtures response array
type apiFixture struct {
	Fixture struct {
		ID        int       `json:"id"`
		Timezone  string    `json:"timezone"`
		Date      time.Time `json:"date"`
		Timestamp int64     `json:"timestamp"`
		Venue     struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League League `json:"league"`
	Teams  struct {
		Home TeamRef `json:"home"`
		Away TeamRef `json:"away"`
	} `json:"teams"`
}

// DecodeFixtures converts the upstream /fixtures response array into fixtures
func DecodeFixtures(response json.RawMessage) ([]Fixture, error) {
	var items []apiFixture
	if err := json.Unmarshal(response, &items); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	fixtures := make([]Fixture, 0, len(items))
	for _, item := range items {
		fixtures = append(fixtures, Fixture{
			ID:        item.Fixture.ID,
			Date:      item.Fixture.Date,
			Timestamp: item.Fixture.Timestamp,
			Timezone:  item.Fixture.Timezone,
			Venue:     item.Fixture.Venue.Name,
			Status:    item.Fixture.Status.Short,
			League:    item.League,
			Home:      item.Teams.Home,
			Away:      item.Teams.Away,
		})
	}
	return fixtures, nil
}
