package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/utils"
	"github.com/sirupsen/logrus"
)

type TeamHandler struct {
	store  *services.Store
	logger *logrus.Logger
}

func NewTeamHandler(store *services.Store, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		store:  store,
		logger: logger,
	}
}

// ListTeams returns every team with its current record
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.store.ListTeams(c.Request.Context())
	if err != nil {
		sendServiceError(c, h.logger, err, "Teams not found")
		return
	}

	utils.SendEnvelope(c, "teams", teams)
}
