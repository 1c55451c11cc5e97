package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
)

const ServiceName = "NBA Betting Research API"

type HealthHandler struct {
	db        *database.DB
	cache     *services.CacheService
	standings *services.StandingsService
}

func NewHealthHandler(db *database.DB, cache *services.CacheService, standings *services.StandingsService) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		standings: standings,
	}
}

// Root identifies the API
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": ServiceName,
		"status":  "active",
	})
}

// GetHealth always returns 200 while the process is serving; used for liveness
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// GetReady checks the database and cache; 503 when either is unreachable
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{
		"database": "ok",
		"cache":    "disabled",
	}
	ready := true

	if sqlDB, err := h.db.DB.DB(); err != nil {
		checks["database"] = err.Error()
		ready = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		ready = false
	}

	if h.cache.Enabled() {
		checks["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = err.Error()
			ready = false
		}
	}

	body := gin.H{
		"status": "ready",
		"checks": checks,
	}
	if h.standings != nil {
		body["standings"] = h.standings.Status()
	}

	if !ready {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
