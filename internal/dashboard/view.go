package dashboard

import (
	"github.com/shopspring/decimal"
)

type GameRow struct {
	Date      string
	Matchup   string
	Score     string
	Status    string
	Completed bool
}

type TeamRow struct {
	Name   string
	City   string
	Record string
	WinPct float64
}

func gameRows(games []Game) []GameRow {
	rows := make([]GameRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, GameRow{
			Date:      g.Date,
			Matchup:   g.AwayTeam + " @ " + g.HomeTeam,
			Score:     itoa(g.AwayScore) + " - " + itoa(g.HomeScore),
			Status:    g.Status,
			Completed: g.Status == "completed",
		})
	}
	return rows
}

func teamRows(teams []Team) []TeamRow {
	rows := make([]TeamRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, TeamRow{
			Name:   t.Name,
			City:   t.City,
			Record: itoa(t.Wins) + "-" + itoa(t.Losses),
			WinPct: winPercentage(t.Wins, t.Losses),
		})
	}
	return rows
}

// winPercentage is wins/(wins+losses) as a percentage rounded half-even to
// one decimal; 0 for a team with no decided games.
func winPercentage(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(wins)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(1)
	f, _ := pct.Float64()
	return f
}

// InsightsView is the Betting Insights panel.
type InsightsView struct {
	Player         string
	Items          []string
	Recommendation string
	Buy            bool
	Message        string
}

func insightsView(in Insights) InsightsView {
	view := InsightsView{
		Player:         in.Player,
		Items:          in.Insights,
		Recommendation: in.Recommendation,
		Buy:            in.Recommendation == "BUY",
		Message:        in.Message,
	}
	if view.Recommendation == "" && view.Message == "" {
		view.Recommendation = "HOLD"
	}
	return view
}
