package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TeamStatistics holds the parts of /teams/statistics the scorer reads
type TeamStatistics struct {
	TeamID int    `json:"team_id"`
	Form   string `json:"form"`
	// AverageGoalsFor is nil when the upstream omits or mangles the value
	AverageGoalsFor *float64 `json:"average_goals_for,omitempty"`
}

// InjuryReport counts the injury entries reported for one team
type InjuryReport struct {
	TeamID int `json:"team_id"`
	Count  int `json:"count"`
}

type apiTeamStatistics struct {
	Team struct {
		ID int `json:"id"`
	} `json:"team"`
	Form  *string `json:"form"`
	Goals struct {
		For struct {
			Average struct {
				Total looseFloat `json:"total"`
			} `json:"average"`
		} `json:"for"`
	} `json:"goals"`
}

// looseFloat accepts "1.5", 1.5 or null. Mangled and non-finite values count as absent.
type looseFloat struct {
	Value *float64
}

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var v float64
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		v = parsed
	} else if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	// ParseFloat accepts "NaN" and "Inf", which cannot be encoded back to JSON
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = &v
	return nil
}

// DecodeTeamStatistics converts the upstream /teams/statistics response object
func DecodeTeamStatistics(response json.RawMessage) (TeamStatistics, error) {
	var raw apiTeamStatistics
	if err := json.Unmarshal(response, &raw); err != nil {
		return TeamStatistics{}, fmt.Errorf("failed to decode team statistics: %w", err)
	}

	stats := TeamStatistics{
		TeamID:          raw.Team.ID,
		AverageGoalsFor: raw.Goals.For.Average.Total.Value,
	}
	if raw.Form != nil {
		stats.Form = *raw.Form
	}
	return stats, nil
}

// DecodeInjuryReport counts the entries of the upstream /injuries response array
func DecodeInjuryReport(teamID int, response json.RawMessage) (InjuryReport, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(response, &entries); err != nil {
		return InjuryReport{}, fmt.Errorf("failed to decode injuries: %w", err)
	}
	return InjuryReport{TeamID: teamID, Count: len(entries)}, nil
}
