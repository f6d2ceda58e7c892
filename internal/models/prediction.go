package models

// Outcome labels
const (
	PickHomeWin = "Home Win"
	PickDraw    = "Draw"
	PickAwayWin = "Away Win"
)

// Prediction is the derived per-request analysis of one fixture
type Prediction struct {
	FixtureID       int             `json:"fixture_id"`
	Fixture         string          `json:"fixture"`
	Probabilities   Probabilities   `json:"probabilities"`
	Markets         Markets         `json:"markets"`
	Recommendations Recommendations `json:"recommendations"`
	DegradedSources []string        `json:"degraded_sources,omitempty"`
}

// Probabilities are the three mutually exclusive outcomes, summing to 100
type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// Markets are independent goal-market percentages
type Markets struct {
	Over25           float64 `json:"over_2_5"`
	BothTeamsToScore float64 `json:"btts"`
	AverageGoals     float64 `json:"average_goals"`
}

// Recommendations are threshold labels derived from the percentages
type Recommendations struct {
	MainPick  string `json:"main_pick"`
	GoalsPick string `json:"goals_pick"`
	ValueBet  string `json:"value_bet"`
}

// PredictionList is the quick listing for a day's fixtures
type PredictionList struct {
	Date        string       `json:"date"`
	Count       int          `json:"count"`
	Predictions []Prediction `json:"predictions"`
}
