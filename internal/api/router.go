package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/api/handlers"
	"github.com/jstittsworth/nba-betting-research/internal/api/middleware"
	"github.com/jstittsworth/nba-betting-research/internal/services"
	"github.com/jstittsworth/nba-betting-research/pkg/database"
	"github.com/sirupsen/logrus"
)

// Dependencies are the long-lived services the handlers read from.
type Dependencies struct {
	DB        *database.DB
	Cache     *services.CacheService
	Store     *services.Store
	Insights  *services.InsightService
	Standings *services.StandingsService
	Logger    *logrus.Logger
}

// NewRouter builds the engine with recovery, request id, request logging
// and CORS, then mounts every route.
func NewRouter(deps Dependencies, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(corsOrigins))

	SetupRoutes(router, deps)
	return router
}

// SetupRoutes configures the root endpoint and everything under /api
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.Standings)
	teamHandler := handlers.NewTeamHandler(deps.Store, deps.Logger)
	playerHandler := handlers.NewPlayerHandler(deps.Store, deps.Insights, deps.Logger)
	gameHandler := handlers.NewGameHandler(deps.Store, deps.Logger)

	router.GET("/", healthHandler.Root)

	group := router.Group("/api")
	group.GET("/health", healthHandler.GetHealth)
	group.GET("/ready", healthHandler.GetReady)

	group.GET("/teams", teamHandler.ListTeams)

	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id/stats", playerHandler.GetPlayerStats)
	group.GET("/players/:id/insights", playerHandler.GetPlayerInsights)

	group.GET("/games/recent", gameHandler.RecentGames)
	group.GET("/games/:id/odds", gameHandler.GetOdds)
}
