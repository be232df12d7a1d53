// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses a session)
//   - POST /daily/guess       → apply a guess to today's puzzle
//   - GET  /daily/leaderboard → top 20 results for today (or a given date)
//
// Everyone gets the same grid for a date: the seed is derived from date + salt.
// Each player can finish the daily once (enforced by DB + in-memory session).
// Daily games live only in their session, never in the free-play store.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient state for an in-progress daily game.
type dailySession struct {
	UserID string
	Date   string
	Seed   uint64
	Start  time.Time
	Game   *game.Game
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the date key and seed of the current daily puzzle.
func (d *dailyServer) today() (string, uint64) {
	now := d.now().UTC()
	return daily.DateKey(now), daily.Seed(now, d.salt)
}

// userID returns the authenticated user ID if logged in,
// otherwise the anonymous cookie ID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID    string   `json:"gameId"`
	Date      string   `json:"date"`
	Played    bool     `json:"played"`
	Size      int      `json:"size,omitempty"`
	Board     string   `json:"board,omitempty"`
	Words     []string `json:"words,omitempty"`
	Remaining int      `json:"remaining,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// A player with a stored result for today gets played=true and no game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date, seed := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[key]
	if !ok {
		g, err := d.srv.newGame(words.ModeBasic, &seed)
		if err != nil {
			log.Error().Err(err).Str("date", date).Msg("daily game")
			writeError(w, http.StatusInternalServerError, "generate_failed")
			return
		}
		sess = &dailySession{UserID: uid, Date: date, Seed: seed, Start: d.now(), Game: g}
		d.sessions[key] = sess
	}

	snap := sess.Game.Snapshot()
	writeJSON(w, http.StatusOK, dailyNewRes{
		GameID:    snap.ID,
		Date:      date,
		Size:      snap.Size,
		Board:     snap.Board,
		Words:     snap.Words,
		Remaining: snap.Remaining,
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessRes adds the daily state to the regular guess response.
type dailyGuessRes struct {
	guessRes
	State string `json:"state"` // in_progress | won | drawn | locked
}

// handleGuess applies a guess to today's session. The finishing move
// persists the result; later guesses come back as "locked".
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _ := d.today()

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || sess.Game.ID != req.GameID {
		writeError(w, http.StatusConflict, "no session")
		return
	}

	g := sess.Game
	if g.Outcome().Status.Finished() {
		writeJSON(w, http.StatusOK, dailyGuessRes{guessRes: stateOf(g), State: "locked"})
		return
	}

	res, err := applyGuess(g, req)
	out := dailyGuessRes{guessRes: res, State: "in_progress"}
	if res.Status.Finished() {
		out.State = string(res.Status)
		snap := g.Snapshot()
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			Seed:      sess.Seed,
			Found:     len(snap.Found),
			Total:     len(snap.Words),
			Incorrect: len(snap.Incorrect),
			ElapsedMs: int(d.now().Sub(sess.Start).Milliseconds()),
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
