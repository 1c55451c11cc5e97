package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) RecentGames(ctx context.Context, limit int) ([]Game, error) {
	args := m.Called(ctx, limit)
	games, _ := args.Get(0).([]Game)
	return games, args.Error(1)
}

func (m *MockAPIClient) Teams(ctx context.Context) ([]Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]Team)
	return teams, args.Error(1)
}

func (m *MockAPIClient) Players(ctx context.Context) ([]Player, error) {
	args := m.Called(ctx)
	players, _ := args.Get(0).([]Player)
	return players, args.Error(1)
}

func (m *MockAPIClient) PlayerStats(ctx context.Context, playerID uint) (PlayerStats, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(PlayerStats), args.Error(1)
}

func (m *MockAPIClient) PlayerInsights(ctx context.Context, playerID uint) (Insights, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(Insights), args.Error(1)
}

type HandlerTestSuite struct {
	suite.Suite
	client *MockAPIClient
	router *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.client = new(MockAPIClient)

	router, err := NewRouter(NewHandler(s.client, 30*time.Second, quietLogger()), quietLogger())
	s.Require().NoError(err)
	s.router = router
}

func (s *HandlerTestSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *HandlerTestSuite) TestIndex() {
	w := s.get("/")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "Recent Games")
	s.Contains(body, "Teams Overview")
	s.Contains(body, "/partials/games")
	s.Contains(body, "30000")
}

func (s *HandlerTestSuite) TestRecentGames() {
	s.client.On("RecentGames", mock.Anything, 5).Return([]Game{
		{Date: "2024-01-13", HomeTeam: "Celtics", AwayTeam: "Lakers", HomeScore: 120, AwayScore: 99, Status: "completed"},
	}, nil)

	w := s.get("/partials/games")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "Lakers @ Celtics")
	s.Contains(body, "99 - 120")
	s.Contains(body, `class="completed"`)
}

func (s *HandlerTestSuite) TestRecentGames_Empty() {
	s.client.On("RecentGames", mock.Anything, 5).Return([]Game{}, nil)

	w := s.get("/partials/games")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "No recent games data available")
}

func (s *HandlerTestSuite) TestTeams() {
	s.client.On("Teams", mock.Anything).Return([]Team{
		{Name: "Lakers", City: "Los Angeles", Wins: 2, Losses: 1},
		{Name: "Expansion", City: "Seattle"},
	}, nil)

	w := s.get("/partials/teams")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "<td>2-1</td><td>66.7</td>")
	s.Contains(body, "<td>0-0</td><td>0.0</td>")
}

func (s *HandlerTestSuite) TestTeams_FetchFailure() {
	s.client.On("Teams", mock.Anything).Return(nil, &APIError{StatusCode: http.StatusInternalServerError})

	w := s.get("/partials/teams")
	s.Equal(http.StatusBadGateway, w.Code)
	s.Contains(w.Body.String(), "Error loading teams")
	s.Contains(w.Body.String(), `class="error"`)
}

func (s *HandlerTestSuite) TestPlayerOptions() {
	s.client.On("Players", mock.Anything).Return([]Player{
		{ID: 1, Name: "LeBron James"},
		{ID: 3, Name: "Rookie Bench"},
	}, nil)

	w := s.get("/partials/players?selected=3")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `<option value="1">LeBron James</option>`)
	s.Contains(body, `<option value="3" selected>Rookie Bench</option>`)
}

func (s *HandlerTestSuite) TestPlayerAnalysis() {
	s.client.On("PlayerStats", mock.Anything, uint(1)).Return(PlayerStats{
		Name: "LeBron James", Team: "Lakers", Position: "SF", GamesPlayed: 2,
		AvgPoints: 28.5, AvgAssists: 8.5, AvgRebounds: 8.5, FGPercentage: 57.5, ThreePtPercentage: 41.7,
	}, nil)
	s.client.On("PlayerInsights", mock.Anything, uint(1)).Return(Insights{
		Player:         "LeBron James",
		Insights:       []string{"High scorer averaging 28.5 PPG - good for over bets"},
		Recommendation: "BUY",
	}, nil)

	w := s.get("/partials/player/1")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "LeBron James (Lakers)")
	s.Contains(body, "PPG: 28.5")
	s.Contains(body, "3P%: 41.7%")
	s.Contains(body, "High scorer averaging 28.5 PPG")
	s.Contains(body, "badge buy")
	s.Contains(body, "Recommendation: BUY")
	s.Contains(body, "<svg")
	s.Contains(body, "LeBron James - Season Averages")
}

func (s *HandlerTestSuite) TestPlayerAnalysis_NoGames() {
	s.client.On("PlayerStats", mock.Anything, uint(3)).Return(PlayerStats{Name: "Rookie Bench"}, nil)
	s.client.On("PlayerInsights", mock.Anything, uint(3)).Return(Insights{
		Player:  "Rookie Bench",
		Message: "Insufficient data for analysis",
	}, nil)

	w := s.get("/partials/player/3")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "No stats available")
	s.Contains(body, "Insufficient data for analysis")
	s.NotContains(body, "<svg")
	s.NotContains(body, "Recommendation:")
}

func (s *HandlerTestSuite) TestPlayerAnalysis_UnknownPlayer() {
	s.client.On("PlayerStats", mock.Anything, uint(99)).
		Return(PlayerStats{}, &APIError{StatusCode: http.StatusNotFound, Message: "Player not found"})

	w := s.get("/partials/player/99")
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "Player not found")
}

func (s *HandlerTestSuite) TestPlayerAnalysis_InvalidID() {
	w := s.get("/partials/player/abc")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Invalid player ID")
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"index.html", "games.html", "teams.html", "players.html", "player.html", "error.html"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}
