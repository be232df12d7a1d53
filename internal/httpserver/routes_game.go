// internal/httpserver/routes_game.go
//
// HTTP routes for free-play word search games.
//   - POST /game/new         → generate a puzzle (optionally seeded / hardcore)
//   - GET  /game/{id}        → current state snapshot
//   - GET  /game/{id}/prompt → player instructions with the unmarked board
//   - POST /game/guess       → apply a structured span or "[r c r c]" action text
//
// Guesses that are malformed, out of bounds, diagonal or repeated come back as
// 400 with the reason; they never consume the incorrect-attempt budget.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// mountGame registers the /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Get("/game/{id}/prompt", s.handlePrompt)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string  `json:"mode"` // "basic" | "hardcore"
	Seed *uint64 `json:"seed"` // optional, reproduces a puzzle exactly
}
type newGameRes struct {
	GameID    string   `json:"gameId"`
	Seed      uint64   `json:"seed"`
	Size      int      `json:"size"`
	Board     string   `json:"board"`
	Words     []string `json:"words"`
	Dropped   []string `json:"dropped,omitempty"`
	Remaining int      `json:"remaining"`
}

// newGame builds a game with the server's word count and budget.
func (s *Server) newGame(mode words.Mode, seed *uint64) (*game.Game, error) {
	return game.New(s.dict, game.Options{
		Mode:     mode,
		Seed:     seed,
		NumWords: s.cfg.NumWords,
		Budget:   s.cfg.IncorrectBudget,
	})
}

// handleNewGame creates a new in-memory game and persists an owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means defaults

	mode, err := words.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := s.newGame(mode, req.Seed)
	if err != nil {
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "generate_failed")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	ownerCol, ownerArg := s.owner(w, r)
	if _, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, `+ownerCol+`, mode, seed, words, status, started_at) VALUES (?,?,?,?,?,?,?)`,
		g.ID, ownerArg, string(g.Mode), strconv.FormatUint(g.Seed, 10), len(g.Words), string(g.Status),
		g.CreatedAt.Format(time.RFC3339)); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    g.ID,
		Seed:      g.Seed,
		Size:      g.Board.Size(),
		Board:     g.Render(false),
		Words:     g.Words,
		Dropped:   g.Dropped,
		Remaining: g.Remaining,
	})
}

// handleGetGame returns a snapshot of a live game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// handlePrompt returns the player instructions for a live game.
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": g.Prompt()})
}

// guessReq is the payload for POST /game/guess and /daily/guess.
// Exactly one of Span or Action is expected; Span wins when both are set.
type guessReq struct {
	GameID string     `json:"gameId"`
	Span   *game.Span `json:"span,omitempty"`
	Action string     `json:"action,omitempty"`
}

// guessRes reports every applied guess plus the state afterwards.
type guessRes struct {
	Results   []game.Result `json:"results"`
	Error     string        `json:"error,omitempty"`
	Board     string        `json:"board"`
	Found     []string      `json:"found"`
	Remaining int           `json:"remaining"`
	Status    game.Status   `json:"status"`
	Reason    string        `json:"reason,omitempty"`
}

// applyGuess runs req against g and builds the response body.
// The returned error is an invalid move when non-nil; partial results from an
// action are still included.
func applyGuess(g *game.Game, req guessReq) (guessRes, error) {
	var results []game.Result
	var err error
	if req.Span != nil {
		var res game.Result
		res, err = g.ApplyGuess(*req.Span)
		if err == nil {
			results = []game.Result{res}
		}
	} else {
		results, err = g.ApplyAction(req.Action)
	}

	out := stateOf(g)
	if results != nil {
		out.Results = results
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out, err
}

// stateOf is a guess response with no results, describing g as it stands.
func stateOf(g *game.Game) guessRes {
	snap := g.Snapshot()
	return guessRes{
		Results:   []game.Result{},
		Board:     snap.Board,
		Found:     snap.Found,
		Remaining: snap.Remaining,
		Status:    snap.Status,
		Reason:    snap.Reason,
	}
}

// handleGuess applies a guess to an in-memory game, persists progress,
// and (if finished) updates user stats in a best-effort transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	wasFinished := g.Outcome().Status.Finished()
	res, err := applyGuess(g, req)
	if len(res.Results) > 0 {
		s.recordProgress(w, r, g, !wasFinished && res.Status.Finished())
	}
	if err != nil {
		if !game.IsInvalidMove(err) {
			log.Error().Err(err).Str("gameId", g.ID).Msg("apply guess")
		}
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// recordProgress updates the game row and, on the finishing move, the
// owner's stats. Failures are logged and otherwise ignored.
func (s *Server) recordProgress(w http.ResponseWriter, r *http.Request, g *game.Game, justFinished bool) {
	snap := g.Snapshot()
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerCol, ownerArg := s.owner(w, r)

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET found=?, incorrect=?, status=? WHERE id=? AND `+ownerCol+`=?`,
		len(snap.Found), len(snap.Incorrect), string(snap.Status), g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update progress")
	}
	if justFinished {
		if _, err := tx.Exec(`UPDATE games SET finished_at=? WHERE id=? AND `+ownerCol+`=?`,
			time.Now().UTC().Format(time.RFC3339), g.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, snap.Status == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress")
	}
}

// owner returns the column and value identifying who is playing.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, any) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return "user_id", me.ID
	}
	return "anonymous_id", s.ensureAnonID(w, r)
}

// bumpStats increments games played; a win extends the streak, a draw resets it.
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}
