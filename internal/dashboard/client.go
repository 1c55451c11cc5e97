package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// APIError is a non-2xx answer from the research API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Only server-side failures count against the breaker; a 404 is an answer.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError
}

type Game struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

type Team struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type Player struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	TeamID uint   `json:"team_id"`
}

// PlayerStats mirrors the stats payload; averages stay zero when the player
// has no games.
type PlayerStats struct {
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	GamesPlayed       int     `json:"games_played"`
	AvgPoints         float64 `json:"avg_points"`
	AvgAssists        float64 `json:"avg_assists"`
	AvgRebounds       float64 `json:"avg_rebounds"`
	FGPercentage      float64 `json:"fg_percentage"`
	ThreePtPercentage float64 `json:"three_pt_percentage"`
}

// Insights covers both shapes of the insights payload. Message is set only
// for a player without games.
type Insights struct {
	Player         string   `json:"player"`
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
	Message        string   `json:"insight"`
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	BreakerTimeout time.Duration
}

// Client reads the research API on behalf of the dashboard. Calls are rate
// limited and go through a circuit breaker so a dead API fails fast.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

func NewClient(cfg ClientConfig, logger *logrus.Logger) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
		burst = int(cfg.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
	}

	settings := gobreaker.Settings{
		Name:    "research-api",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (c *Client) RecentGames(ctx context.Context, limit int) ([]Game, error) {
	var games []Game
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/games/recent?"+query.Encode(), "games", &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/teams", "teams", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) Players(ctx context.Context) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "/players", "players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (c *Client) PlayerStats(ctx context.Context, playerID uint) (PlayerStats, error) {
	var stats PlayerStats
	err := c.get(ctx, fmt.Sprintf("/players/%d/stats", playerID), "stats", &stats)
	return stats, err
}

func (c *Client) PlayerInsights(ctx context.Context, playerID uint) (Insights, error) {
	var insights Insights
	err := c.get(ctx, fmt.Sprintf("/players/%d/insights", playerID), "insights", &insights)
	return insights, err
}

// BreakerState reports the circuit breaker state, e.g. "closed".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// get fetches path and decodes the value stored under key in the envelope.
func (c *Client) get(ctx context.Context, path, key string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"component": "api_client",
			"path":      path,
		}).WithError(err).Warn("API request failed")
		return err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body.([]byte), &envelope); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	raw, ok := envelope[key]
	if !ok {
		return fmt.Errorf("response from %s has no %q field", path, key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage pulls error.message out of an API error body, if there is one.
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}
