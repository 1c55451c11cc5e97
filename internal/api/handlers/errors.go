package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/utils"
	"github.com/sirupsen/logrus"
)

// parseID reads a numeric path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+label+" ID", err.Error())
		return 0, false
	}
	return uint(id), true
}

// sendServiceError answers 404 for unresolved ids and 500 for everything else.
func sendServiceError(c *gin.Context, logger *logrus.Logger, err error, notFoundMessage string) {
	if errors.Is(err, services.ErrNotFound) {
		utils.SendNotFound(c, notFoundMessage)
		return
	}

	_ = c.Error(err)
	entry := logger.WithField("path", c.FullPath())
	if requestID, ok := c.Get("request_id"); ok {
		entry = entry.WithField("request_id", requestID)
	}
	entry.Errorf("Request failed: %v", err)
	utils.SendInternalError(c, err.Error())
}
