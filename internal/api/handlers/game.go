package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	defaultRecentGames = 10
	maxRecentGames     = 100
)

type GameHandler struct {
	store  *services.Store
	logger *logrus.Logger
}

func NewGameHandler(store *services.Store, logger *logrus.Logger) *GameHandler {
	return &GameHandler{
		store:  store,
		logger: logger,
	}
}

// RecentGames returns the newest games, ?limit= defaults to 10
func (h *GameHandler) RecentGames(c *gin.Context) {
	limit := defaultRecentGames
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRecentGames {
			utils.SendValidationError(c, "Invalid limit", fmt.Sprintf("limit must be an integer between 1 and %d", maxRecentGames))
			return
		}
		limit = n
	}

	games, err := h.store.RecentGames(c.Request.Context(), limit)
	if err != nil {
		sendServiceError(c, h.logger, err, "Games not found")
		return
	}

	utils.SendEnvelope(c, "games", games)
}

// GetOdds returns every bookmaker quote for a game
func (h *GameHandler) GetOdds(c *gin.Context) {
	gameID, ok := parseID(c, "id", "game")
	if !ok {
		return
	}

	odds, err := h.store.OddsForGame(c.Request.Context(), gameID)
	if err != nil {
		sendServiceError(c, h.logger, err, "Game not found")
		return
	}

	utils.SendEnvelope(c, "odds", odds)
}
