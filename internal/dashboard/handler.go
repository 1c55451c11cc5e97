package dashboard

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const recentGamesLimit = 5

// APIClient is the subset of the research API the dashboard renders.
type APIClient interface {
	RecentGames(ctx context.Context, limit int) ([]Game, error)
	Teams(ctx context.Context) ([]Team, error)
	Players(ctx context.Context) ([]Player, error)
	PlayerStats(ctx context.Context, playerID uint) (PlayerStats, error)
	PlayerInsights(ctx context.Context, playerID uint) (Insights, error)
}

// Templates parses the embedded page and partial templates.
func Templates() (*template.Template, error) {
	return template.New("dashboard").Funcs(template.FuncMap{
		"pct": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	}).ParseFS(templateFS, "templates/*.html")
}

type Handler struct {
	client       APIClient
	pollInterval time.Duration
	logger       *logrus.Logger
}

func NewHandler(client APIClient, pollInterval time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		client:       client,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Index renders the page shell; every panel is filled from a partial.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":          "NBA Betting Research",
		"PollIntervalMs": h.pollInterval.Milliseconds(),
	})
}

func (h *Handler) RecentGames(c *gin.Context) {
	games, err := h.client.RecentGames(c.Request.Context(), recentGamesLimit)
	if err != nil {
		h.renderError(c, "Error loading games", err)
		return
	}
	c.HTML(http.StatusOK, "games.html", gin.H{"Games": gameRows(games)})
}

func (h *Handler) Teams(c *gin.Context) {
	teams, err := h.client.Teams(c.Request.Context())
	if err != nil {
		h.renderError(c, "Error loading teams", err)
		return
	}
	c.HTML(http.StatusOK, "teams.html", gin.H{"Teams": teamRows(teams)})
}

// PlayerOptions renders the selector options, keeping ?selected= chosen.
func (h *Handler) PlayerOptions(c *gin.Context) {
	players, err := h.client.Players(c.Request.Context())
	if err != nil {
		h.renderError(c, "Error loading players", err)
		return
	}

	selected, _ := strconv.ParseUint(c.Query("selected"), 10, 32)
	c.HTML(http.StatusOK, "players.html", gin.H{
		"Players":  players,
		"Selected": uint(selected),
	})
}

// PlayerAnalysis renders the stats, insights and chart panels for one player.
func (h *Handler) PlayerAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Invalid player ID"})
		return
	}
	ctx := c.Request.Context()

	stats, err := h.client.PlayerStats(ctx, uint(id))
	if err != nil {
		h.renderError(c, "Error loading player", err)
		return
	}
	insights, err := h.client.PlayerInsights(ctx, uint(id))
	if err != nil {
		h.renderError(c, "Error loading insights", err)
		return
	}

	data := gin.H{
		"Stats":    stats,
		"HasGames": stats.GamesPlayed > 0,
		"Insights": insightsView(insights),
	}
	if stats.GamesPlayed > 0 {
		data["Chart"] = seasonChart(stats)
	}
	c.HTML(http.StatusOK, "player.html", data)
}

// renderError answers 502 with a fragment the page drops into the panel.
func (h *Handler) renderError(c *gin.Context, prefix string, err error) {
	h.logger.WithFields(logrus.Fields{
		"component": "dashboard",
		"path":      c.FullPath(),
	}).WithError(err).Warn(prefix)

	status := http.StatusBadGateway
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
		status = http.StatusNotFound
	}
	c.HTML(status, "error.html", gin.H{"Message": prefix + ": " + err.Error()})
}
