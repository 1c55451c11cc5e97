package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/nba-betting-research/internal/api/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter serves the page and its partials.
func NewRouter(handler *Handler, logger *logrus.Logger) (*gin.Engine, error) {
	templates, err := Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.SetHTMLTemplate(templates)

	router.GET("/", handler.Index)
	partials := router.Group("/partials")
	{
		partials.GET("/games", handler.RecentGames)
		partials.GET("/teams", handler.Teams)
		partials.GET("/players", handler.PlayerOptions)
		partials.GET("/player/:id", handler.PlayerAnalysis)
	}
	return router, nil
}
