package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/analytics"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/utils"
	"github.com/sirupsen/logrus"
)

type PlayerHandler struct {
	store    *services.Store
	insights *services.InsightService
	logger   *logrus.Logger
}

func NewPlayerHandler(store *services.Store, insights *services.InsightService, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		store:    store,
		insights: insights,
		logger:   logger,
	}
}

// ListPlayers returns all players, optionally filtered by ?team_id=
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	var teamID uint
	if raw := c.Query("team_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.SendValidationError(c, "Invalid team ID", err.Error())
			return
		}
		teamID = uint(id)
	}

	players, err := h.store.ListPlayers(c.Request.Context(), teamID)
	if err != nil {
		sendServiceError(c, h.logger, err, "Players not found")
		return
	}

	utils.SendEnvelope(c, "players", players)
}

// GetPlayerStats returns season averages. A player without games is a 200
// with games_played 0.
func (h *PlayerHandler) GetPlayerStats(c *gin.Context) {
	playerID, ok := parseID(c, "id", "player")
	if !ok {
		return
	}

	stats, err := h.insights.SeasonStats(c.Request.Context(), playerID)
	if err != nil {
		sendServiceError(c, h.logger, err, "Player not found")
		return
	}

	utils.SendEnvelope(c, "stats", stats)
}

// GetPlayerInsights returns betting insights, or an informational message
// when the player has no games.
func (h *PlayerHandler) GetPlayerInsights(c *gin.Context) {
	playerID, ok := parseID(c, "id", "player")
	if !ok {
		return
	}

	insight, err := h.insights.Insights(c.Request.Context(), playerID)
	switch {
	case errors.Is(err, analytics.ErrInsufficientData):
		utils.SendEnvelope(c, "insights", gin.H{
			"player":  insight.Player,
			"insight": analytics.InsufficientDataMessage,
		})
	case err != nil:
		sendServiceError(c, h.logger, err, "Player not found")
	default:
		utils.SendEnvelope(c, "insights", insight)
	}
}
