package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

func testConfig() config.Config {
	return config.Config{
		DailySalt:       "test_salt",
		JWTSecret:       "test_secret",
		JWTDays:         1,
		CookieName:      "wordsearch_token",
		ClientOrigin:    "http://localhost:5173",
		NumWords:        4,
		IncorrectBudget: 2,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	conn, err := db.OpenMigrated(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	dict, err := words.Load("", "")
	require.NoError(t, err)
	return New(testConfig(), store.NewMemoryStore(), conn, dict)
}

// client carries cookies between requests like a browser would.
type client struct {
	t       *testing.T
	s       *Server
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, s *Server) *client {
	return &client{t: t, s: s, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.s.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// spanOf returns the span covering a placed word.
func spanOf(g *game.Game, w string) game.Span {
	pw := g.Placed[w]
	end := pw.Cells()[pw.Len()-1]
	return game.Span{StartRow: pw.Anchor.Row, StartCol: pw.Anchor.Col, EndRow: end.Row, EndCol: end.Col}
}

func TestHealthAndNotFound(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/debug/words", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]int](t, rec)
	assert.Positive(t, stats["basic"])
	assert.Positive(t, stats["hardcore"])
}

func TestNewGameGetAndPrompt(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)

	rec := c.do(http.MethodPost, "/game/new", map[string]any{"seed": 42})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ng := decode[newGameRes](t, rec)
	assert.NotEmpty(t, ng.GameID)
	assert.Equal(t, uint64(42), ng.Seed)
	assert.Equal(t, 4, len(ng.Words)+len(ng.Dropped))
	assert.Equal(t, 2, ng.Remaining)
	assert.Contains(t, ng.Board, "R00 ")
	assert.Equal(t, 1, s.store.Len())
	assert.Contains(t, c.cookies, anonCookieName)

	// Same seed, same grid.
	again := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", map[string]any{"seed": 42}))
	assert.Equal(t, ng.Board, again.Board)
	assert.NotEqual(t, ng.GameID, again.GameID)

	rec = c.do(http.MethodGet, "/game/"+ng.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[game.Snapshot](t, rec)
	assert.Equal(t, ng.GameID, snap.ID)
	assert.Equal(t, game.StatusPlaying, snap.Status)

	rec = c.do(http.MethodGet, "/game/"+ng.GameID+"/prompt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["prompt"], "Good luck!")

	var owner string
	require.NoError(t, s.db.QueryRow(`SELECT anonymous_id FROM games WHERE id=?`, ng.GameID).Scan(&owner))
	assert.Equal(t, c.cookies[anonCookieName].Value, owner)
}

func TestNewGameRejectsUnknownMode(t *testing.T) {
	c := newClient(t, newTestServer(t))
	rec := c.do(http.MethodPost, "/game/new", map[string]any{"mode": "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuessWinsAndPersists(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)

	ng := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", map[string]any{"seed": 7}))
	g, err := s.store.Get(context.Background(), ng.GameID)
	require.NoError(t, err)
	require.NotEmpty(t, g.Words)

	first := spanOf(g, g.Words[0])
	rec := c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "span": first})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[guessRes](t, rec)
	require.Len(t, res.Results, 1)
	assert.True(t, res.Results[0].Correct)
	assert.Equal(t, g.Words[0], res.Results[0].Word)

	var action strings.Builder
	for _, w := range g.Words[1:] {
		sp := spanOf(g, w)
		fmt.Fprintf(&action, "[%d %d %d %d] ", sp.StartRow, sp.StartCol, sp.EndRow, sp.EndCol)
	}
	if action.Len() > 0 {
		rec = c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": action.String()})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res = decode[guessRes](t, rec)
	}
	assert.Equal(t, game.StatusWon, res.Status)
	assert.ElementsMatch(t, g.Words, res.Found)

	var status string
	var found int
	var finished *string
	require.NoError(t, s.db.QueryRow(`SELECT status, found, finished_at FROM games WHERE id=?`, ng.GameID).
		Scan(&status, &found, &finished))
	assert.Equal(t, "won", status)
	assert.Equal(t, len(g.Words), found)
	assert.NotNil(t, finished)
}

func TestGuessInvalidMoves(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)
	ng := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", map[string]any{"seed": 3}))

	cases := []map[string]any{
		{"gameId": ng.GameID, "span": game.Span{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 99}},
		{"gameId": ng.GameID, "span": game.Span{StartRow: 0, StartCol: 0, EndRow: 2, EndCol: 2}},
		{"gameId": ng.GameID, "action": "top left to bottom right"},
	}
	for _, body := range cases {
		rec := c.do(http.MethodPost, "/game/guess", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		res := decode[guessRes](t, rec)
		assert.NotEmpty(t, res.Error)
		assert.Equal(t, 2, res.Remaining)
	}

	rec := c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": "missing", "action": "[0 0 0 2]"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.do(http.MethodGet, "/game/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuessBudgetDrawsGame(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)
	ng := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", map[string]any{"seed": 5}))

	// Single cells never match: every word is at least three letters.
	res := decode[guessRes](t, c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": "[0 0 0 0]"}))
	assert.Equal(t, 1, res.Remaining)
	res = decode[guessRes](t, c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": "[1 1 1 1]"}))
	assert.Equal(t, game.StatusDrawn, res.Status)
	assert.Equal(t, "No more incorrect tries remaining.", res.Reason)

	rec := c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": "[2 2 2 2]"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[guessRes](t, rec).Error, "finished")
}

func TestAuthStatsAndHistory(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)

	rec := c.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A guest game is claimed on signup.
	guest := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", nil))

	creds := map[string]string{"username": "alice_1", "password": "correct horse"}
	rec = c.do(http.MethodPost, "/auth/signup", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, c.cookies, "wordsearch_token")

	rec = c.do(http.MethodPost, "/auth/signup", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	me := decode[authUser](t, c.do(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, "alice_1", me.Username)

	ng := decode[newGameRes](t, c.do(http.MethodPost, "/game/new", map[string]any{"seed": 11}))
	c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": "[0 0 0 0]"})
	res := decode[guessRes](t, c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": ng.GameID, "action": "[1 1 1 1]"}))
	require.Equal(t, game.StatusDrawn, res.Status)

	stats := decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	assert.EqualValues(t, 1, stats["gamesPlayed"])
	assert.EqualValues(t, 0, stats["wins"])
	assert.EqualValues(t, 0, stats["streak"])

	mine := decode[[]gameRow](t, c.do(http.MethodGet, "/games/mine", nil))
	ids := make([]string, 0, len(mine))
	for _, gr := range mine {
		ids = append(ids, gr.ID)
	}
	assert.ElementsMatch(t, []string{guest.GameID, ng.GameID}, ids)

	rec = c.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/auth/me", nil).Code)

	rec = c.do(http.MethodPost, "/auth/login", map[string]string{"username": "alice_1", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = c.do(http.MethodPost, "/auth/login", creds)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/auth/me", nil).Code)
}

func TestSignupValidation(t *testing.T) {
	c := newClient(t, newTestServer(t))
	for _, creds := range []map[string]string{
		{"username": "ab", "password": "long enough"},
		{"username": "bad name", "password": "long enough"},
		{"username": "carol", "password": "short"},
	} {
		rec := c.do(http.MethodPost, "/auth/signup", creds)
		assert.Equal(t, http.StatusBadRequest, rec.Code, creds["username"])
	}
}

func TestDailyFlow(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s)
	other := newClient(t, s)

	first := decode[dailyNewRes](t, c.do(http.MethodPost, "/daily/new", nil))
	require.NotEmpty(t, first.GameID)
	assert.False(t, first.Played)

	again := decode[dailyNewRes](t, c.do(http.MethodPost, "/daily/new", nil))
	assert.Equal(t, first.GameID, again.GameID)

	// Everyone gets the same grid for the day.
	theirs := decode[dailyNewRes](t, other.do(http.MethodPost, "/daily/new", nil))
	assert.NotEqual(t, first.GameID, theirs.GameID)
	assert.Equal(t, first.Board, theirs.Board)

	rec := other.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": first.GameID, "action": "[0 0 0 0]"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	res := decode[dailyGuessRes](t, c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": first.GameID, "action": "[0 0 0 0]"}))
	assert.Equal(t, "in_progress", res.State)
	res = decode[dailyGuessRes](t, c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": first.GameID, "action": "[1 1 1 1]"}))
	assert.Equal(t, "drawn", res.State)
	res = decode[dailyGuessRes](t, c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": first.GameID, "action": "[2 2 2 2]"}))
	assert.Equal(t, "locked", res.State)
	assert.Empty(t, res.Results)

	played := decode[dailyNewRes](t, c.do(http.MethodPost, "/daily/new", nil))
	assert.True(t, played.Played)
	assert.Empty(t, played.GameID)

	lb := decode[lbRes](t, c.do(http.MethodGet, "/daily/leaderboard", nil))
	assert.Equal(t, first.Date, lb.Date)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, c.cookies[anonCookieName].Value, lb.Top[0].UserID)
	assert.Equal(t, 0, lb.Top[0].Found)
	assert.Equal(t, 2, lb.Top[0].Incorrect)
	assert.Equal(t, len(first.Words), lb.Top[0].Total)

	empty := decode[lbRes](t, c.do(http.MethodGet, "/daily/leaderboard?date=2000-01-01", nil))
	assert.Empty(t, empty.Top)
}
