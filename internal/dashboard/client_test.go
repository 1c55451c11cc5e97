package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeAPI serves canned research API responses keyed by request URI.
func fakeAPI(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Player not found"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL + "/api/",
		Timeout:        2 * time.Second,
		RequestsPerSec: 100,
		BreakerTimeout: time.Minute,
	}, quietLogger())
}

var cannedResponses = map[string]string{
	"/api/games/recent?limit=5": `{"games":[
		{"id":2,"date":"2024-01-13","home_team":"Celtics","away_team":"Lakers","home_score":120,"away_score":99,"status":"completed"},
		{"id":3,"date":"2024-01-12","home_team":"Lakers","away_team":"Warriors","home_score":0,"away_score":0,"status":"scheduled"}]}`,
	"/api/teams": `{"teams":[
		{"id":1,"name":"Lakers","city":"Los Angeles","wins":2,"losses":1},
		{"id":2,"name":"Expansion","city":"Seattle","wins":0,"losses":0}]}`,
	"/api/players": `{"players":[
		{"id":1,"name":"LeBron James","team_id":1,"position":"SF","age":38,"injury_status":"healthy"},
		{"id":3,"name":"Rookie Bench","team_id":2,"position":"PG","age":19,"injury_status":"healthy"}]}`,
	"/api/players/1/stats": `{"stats":{"name":"LeBron James","team":"Lakers","position":"SF","games_played":2,
		"avg_points":28.5,"avg_assists":8.5,"avg_rebounds":8.5,"fg_percentage":57.5,"three_pt_percentage":41.7}}`,
	"/api/players/1/insights": `{"insights":{"player":"LeBron James","insights":[
		"High scorer averaging 28.5 PPG - good for over bets",
		"Excellent shooter at 57.5% FG - reliable for prop bets"],"recommendation":"BUY"}}`,
	"/api/players/3/stats":    `{"stats":{"name":"Rookie Bench","games_played":0}}`,
	"/api/players/3/insights": `{"insights":{"player":"Rookie Bench","insight":"Insufficient data for analysis"}}`,
}

func TestClient_DecodesEnvelopes(t *testing.T) {
	client := newTestClient(fakeAPI(t, cannedResponses).URL)
	ctx := context.Background()

	games, err := client.RecentGames(ctx, 5)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Celtics", games[0].HomeTeam)
	assert.Equal(t, 99, games[0].AwayScore)

	teams, err := client.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	players, err := client.Players(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rookie Bench", players[1].Name)

	stats, err := client.PlayerStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 41.7, stats.ThreePtPercentage)

	insights, err := client.PlayerInsights(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BUY", insights.Recommendation)
	assert.Len(t, insights.Insights, 2)
	assert.Empty(t, insights.Message)

	insights, err = client.PlayerInsights(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Insufficient data for analysis", insights.Message)
	assert.Empty(t, insights.Insights)
}

func TestClient_NotFoundIsAPIError(t *testing.T) {
	client := newTestClient(fakeAPI(t, cannedResponses).URL)

	_, err := client.PlayerStats(context.Background(), 99)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Player not found", apiErr.Message)
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	client := newTestClient(fakeAPI(t, cannedResponses).URL)

	for i := 0; i < 5; i++ {
		_, err := client.PlayerStats(context.Background(), 99)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed.String(), client.BreakerState())
}

func TestClient_ServerErrorsOpenBreaker(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	client := newTestClient(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := client.Teams(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen.String(), client.BreakerState())

	_, err := client.Teams(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_MissingEnvelopeKey(t *testing.T) {
	client := newTestClient(fakeAPI(t, map[string]string{"/api/teams": `{"players":[]}`}).URL)

	_, err := client.Teams(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "teams" field`)
}

func TestClient_CancelledContext(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL:        "http://127.0.0.1:1",
		Timeout:        time.Second,
		RequestsPerSec: 0.001,
		BreakerTimeout: time.Minute,
	}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Teams(ctx)
	assert.Error(t, err)
}
