package scoring

import (
	"math"
	"sort"

	"github.com/ajharbinger/football-connector/internal/models"
)

// Heuristic weights and defaults
const (
	formWeight          = 0.6
	injuryWeight        = 0.4
	injuryPenalty       = 0.05
	defaultWinRatio     = 0.5
	defaultHomeAvgGoals = 1.2
	defaultAwayAvgGoals = 1.1
	goalsPickThreshold  = 55.0
	valueBetThreshold   = 60.0
)

// Goal-market lines: value = intercept + slope*avgGoals, clamped to [min, max]
var (
	over25Line = marketLine{intercept: 20, slope: 25, min: 40, max: 95}
	bttsLine   = marketLine{intercept: 15, slope: 25, min: 35, max: 90}
)

// Placeholder outcome split used by the quick top-n predictor
var placeholderProbabilities = models.Probabilities{HomeWin: 45, Draw: 28, AwayWin: 27}

// ScoringEngine computes the illustrative match heuristic
type ScoringEngine struct{}

// NewScoringEngine creates a new scoring engine instance
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// MatchInput aggregates what the engine consumes for one fixture. A nil statistics or
// injury pointer means the corresponding upstream call failed.
type MatchInput struct {
	Fixture      models.Fixture
	HomeStats    *models.TeamStatistics
	AwayStats    *models.TeamStatistics
	HomeInjuries *models.InjuryReport
	AwayInjuries *models.InjuryReport
	DegradedFrom []string
}

// Predict runs the full heuristic for one fixture
func (e *ScoringEngine) Predict(in MatchInput) models.Prediction {
	homeRatio := statsWinRatio(in.HomeStats)
	awayRatio := statsWinRatio(in.AwayStats)

	homeFactor := InjuryFactor(injuryCount(in.HomeInjuries))
	awayFactor := InjuryFactor(injuryCount(in.AwayInjuries))

	probabilities := OutcomeProbabilities(homeRatio, awayRatio, homeFactor, awayFactor)

	avgGoals := AverageGoals(goalsFor(in.HomeStats, defaultHomeAvgGoals), goalsFor(in.AwayStats, defaultAwayAvgGoals))
	markets := GoalMarkets(avgGoals)

	return models.Prediction{
		FixtureID:       in.Fixture.ID,
		Fixture:         in.Fixture.Label(),
		Probabilities:   probabilities,
		Markets:         markets,
		Recommendations: Recommend(probabilities, markets),
		DegradedSources: in.DegradedFrom,
	}
}

// Placeholder returns the fixed-probability prediction used by the top-n listing
func (e *ScoringEngine) Placeholder(fixture models.Fixture) models.Prediction {
	markets := GoalMarkets(AverageGoals(defaultHomeAvgGoals, defaultAwayAvgGoals))
	return models.Prediction{
		FixtureID:       fixture.ID,
		Fixture:         fixture.Label(),
		Probabilities:   placeholderProbabilities,
		Markets:         markets,
		Recommendations: Recommend(placeholderProbabilities, markets),
	}
}

// WinRatio returns the share of W letters in a form string. It reports false for an
// empty string or one containing anything other than W, D or L.
func WinRatio(form string) (float64, bool) {
	if form == "" {
		return defaultWinRatio, false
	}
	wins := 0
	for _, r := range form {
		switch r {
		case 'W':
			wins++
		case 'D', 'L':
		default:
			return defaultWinRatio, false
		}
	}
	return float64(wins) / float64(len(form)), true
}

func statsWinRatio(stats *models.TeamStatistics) float64 {
	if stats == nil {
		return defaultWinRatio
	}
	ratio, _ := WinRatio(stats.Form)
	return ratio
}

// InjuryFactor is 1 - 0.05*injuries, unclamped
func InjuryFactor(injuries int) float64 {
	return 1 - injuryPenalty*float64(injuries)
}

func injuryCount(report *models.InjuryReport) int {
	if report == nil {
		return 0
	}
	return report.Count
}

func goalsFor(stats *models.TeamStatistics, fallback float64) float64 {
	if stats == nil || stats.AverageGoalsFor == nil {
		return fallback
	}
	return *stats.AverageGoalsFor
}

// OutcomeProbabilities combines form and injuries into home/draw/away percentages that
// sum to exactly 100.00.
func OutcomeProbabilities(homeRatio, awayRatio, homeFactor, awayFactor float64) models.Probabilities {
	rawHome := 100 * (formWeight*homeRatio + injuryWeight*homeFactor)
	rawAway := 100 * (formWeight*awayRatio + injuryWeight*awayFactor)
	rawDraw := 100 - (rawHome+rawAway)/2

	sum := rawHome + rawDraw + rawAway
	if sum <= 0 {
		return models.Probabilities{HomeWin: 33.34, Draw: 33.33, AwayWin: 33.33}
	}

	shares := normalizeHundredths([]float64{rawHome / sum * 100, rawDraw / sum * 100, rawAway / sum * 100})
	return models.Probabilities{HomeWin: shares[0], Draw: shares[1], AwayWin: shares[2]}
}

// normalizeHundredths rounds percentages to two decimals using largest remainders so the
// rounded values keep the exact 100.00 total. Ties go to the earlier value.
func normalizeHundredths(values []float64) []float64 {
	type part struct {
		index     int
		floor     int64
		remainder float64
	}

	parts := make([]part, len(values))
	var allocated int64
	for i, v := range values {
		scaled := v * 100
		floor := math.Floor(scaled)
		parts[i] = part{index: i, floor: int64(floor), remainder: scaled - floor}
		allocated += int64(floor)
	}

	leftover := 10000 - allocated
	sort.SliceStable(parts, func(a, b int) bool {
		return parts[a].remainder > parts[b].remainder+1e-9
	})
	for i := 0; leftover > 0 && len(parts) > 0; i = (i + 1) % len(parts) {
		parts[i].floor++
		leftover--
	}

	out := make([]float64, len(values))
	for _, p := range parts {
		out[p.index] = float64(p.floor) / 100
	}
	return out
}

// AverageGoals is the mean of the two sides' goals-for averages
func AverageGoals(home, away float64) float64 {
	return (home + away) / 2
}

// GoalMarkets derives the over 2.5 and both-teams-to-score percentages
func GoalMarkets(avgGoals float64) models.Markets {
	return models.Markets{
		Over25:           round2(over25Line.at(avgGoals)),
		BothTeamsToScore: round2(bttsLine.at(avgGoals)),
		AverageGoals:     round2(avgGoals),
	}
}

// Recommend applies the threshold rules to computed percentages
func Recommend(p models.Probabilities, m models.Markets) models.Recommendations {
	pick := models.PickHomeWin
	best := p.HomeWin
	if p.Draw > best {
		pick, best = models.PickDraw, p.Draw
	}
	if p.AwayWin > best {
		pick = models.PickAwayWin
	}

	goals := "Under 2.5"
	if m.Over25 > goalsPickThreshold {
		goals = "Over 2.5"
	}

	value := "Both Teams To Score"
	if m.Over25 > valueBetThreshold {
		value = "Over 2.5 Goals"
	}

	return models.Recommendations{MainPick: pick, GoalsPick: goals, ValueBet: value}
}

type marketLine struct {
	intercept, slope, min, max float64
}

func (l marketLine) at(x float64) float64 {
	return math.Max(l.min, math.Min(l.max, l.intercept+l.slope*x))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
