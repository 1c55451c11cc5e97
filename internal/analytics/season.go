// Package analytics turns raw box scores into season averages and the
// threshold-based betting insights built on them. Everything here is a pure
// function of its arguments.
package analytics

import (
	"github.com/jstittsworth/nba-betting-research/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PlayerProfile is the display information the aggregator needs about a
// player. Team is the resolved team name, not an id.
type PlayerProfile struct {
	Name     string
	Team     string
	Position string
}

// SeasonAverages holds per-game means and aggregate shooting percentages,
// each rounded to one decimal place.
type SeasonAverages struct {
	AvgPoints         float64 `json:"avg_points"`
	AvgAssists        float64 `json:"avg_assists"`
	AvgRebounds       float64 `json:"avg_rebounds"`
	FGPercentage      float64 `json:"fg_percentage"`
	ThreePtPercentage float64 `json:"three_pt_percentage"`
}

// PlayerSeasonStats is the season summary for one player. SeasonAverages is
// nil when the player has no recorded performances; that means "no data",
// not a zero-point season.
type PlayerSeasonStats struct {
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	Position    string `json:"position,omitempty"`
	GamesPlayed int    `json:"games_played"`

	*SeasonAverages
}

// HasData reports whether the summary carries averages.
func (s PlayerSeasonStats) HasData() bool {
	return s.GamesPlayed > 0 && s.SeasonAverages != nil
}

type seasonTotals struct {
	points, assists, rebounds int64
	fgMade, fgAttempted       int64
	threeMade, threeAttempted int64
}

// ComputeSeasonStats aggregates a player's performances. Shot attempts are
// not validated against makes, so percentages over 100 are possible for
// inconsistent input.
func ComputeSeasonStats(player PlayerProfile, performances []models.PlayerPerformance) PlayerSeasonStats {
	stats := PlayerSeasonStats{
		Name:        player.Name,
		GamesPlayed: len(performances),
	}
	if len(performances) == 0 {
		return stats
	}

	var t seasonTotals
	for _, p := range performances {
		t.points += int64(p.Points)
		t.assists += int64(p.Assists)
		t.rebounds += int64(p.Rebounds)
		t.fgMade += int64(p.FieldGoalsMade)
		t.fgAttempted += int64(p.FieldGoalsAttempted)
		t.threeMade += int64(p.ThreePointersMade)
		t.threeAttempted += int64(p.ThreePointersAttempted)
	}

	games := int64(len(performances))
	stats.Team = player.Team
	stats.Position = player.Position
	stats.SeasonAverages = &SeasonAverages{
		AvgPoints:         mean(t.points, games),
		AvgAssists:        mean(t.assists, games),
		AvgRebounds:       mean(t.rebounds, games),
		FGPercentage:      percentage(t.fgMade, t.fgAttempted),
		ThreePtPercentage: percentage(t.threeMade, t.threeAttempted),
	}
	return stats
}

func mean(sum, count int64) float64 {
	return round1(decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)))
}

// percentage is 100 * made / max(attempted, 1). No attempts yields 0.
func percentage(made, attempted int64) float64 {
	if attempted < 1 {
		attempted = 1
	}
	return round1(decimal.NewFromInt(made).Mul(hundred).Div(decimal.NewFromInt(attempted)))
}

// round1 rounds half to even at one decimal place.
func round1(d decimal.Decimal) float64 {
	f, _ := d.RoundBank(1).Float64()
	return f
}
