package analytics

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned by GenerateInsights for a player with no
// recorded games. It is an informational outcome, not a failure.
var ErrInsufficientData = errors.New("insufficient data for analysis")

// InsufficientDataMessage is shown in place of insights when a player has no games.
const InsufficientDataMessage = "Insufficient data for analysis"

type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationHold Recommendation = "HOLD"
)

type BettingInsight struct {
	Player         string         `json:"player"`
	Insights       []string       `json:"insights"`
	Recommendation Recommendation `json:"recommendation"`
}

// insightRule yields at most one message for a season.
type insightRule func(avg SeasonAverages) (string, bool)

// Evaluated in order; the order is the order of the output.
var insightRules = []insightRule{
	scoringRule,
	shootingRule,
	allAroundRule,
}

func scoringRule(avg SeasonAverages) (string, bool) {
	switch {
	case avg.AvgPoints > 25:
		return fmt.Sprintf("High scorer averaging %.1f PPG - good for over bets", avg.AvgPoints), true
	case avg.AvgPoints < 15:
		return fmt.Sprintf("Low scorer averaging %.1f PPG - consider under bets", avg.AvgPoints), true
	}
	return "", false
}

func shootingRule(avg SeasonAverages) (string, bool) {
	switch {
	case avg.FGPercentage > 50:
		return fmt.Sprintf("Excellent shooter at %.1f%% FG - reliable for prop bets", avg.FGPercentage), true
	case avg.FGPercentage < 40:
		return fmt.Sprintf("Inconsistent shooter at %.1f%% FG - proceed with caution", avg.FGPercentage), true
	}
	return "", false
}

func allAroundRule(avg SeasonAverages) (string, bool) {
	if avg.AvgAssists > 7 && avg.AvgRebounds > 7 {
		return "Triple-double threat - good for player prop combinations", true
	}
	return "", false
}

// GenerateInsights applies the insight rules to a season summary.
//
// The recommendation is BUY when more than one rule fired and the player
// averages over 20 points, regardless of which rules fired; otherwise HOLD.
func GenerateInsights(stats PlayerSeasonStats) (BettingInsight, error) {
	if !stats.HasData() {
		return BettingInsight{Player: stats.Name}, ErrInsufficientData
	}

	avg := *stats.SeasonAverages
	insights := make([]string, 0, len(insightRules))
	for _, rule := range insightRules {
		if msg, ok := rule(avg); ok {
			insights = append(insights, msg)
		}
	}

	recommendation := RecommendationHold
	if len(insights) > 1 && avg.AvgPoints > 20 {
		recommendation = RecommendationBuy
	}

	return BettingInsight{
		Player:         stats.Name,
		Insights:       insights,
		Recommendation: recommendation,
	}, nil
}
