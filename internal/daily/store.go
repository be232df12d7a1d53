package daily

import (
	"context"
	"database/sql"
	"strconv"
)

// Result is one player's finished daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Seed      uint64 `json:"seed"`
	Found     int    `json:"found"`
	Total     int    `json:"total"`
	Incorrect int    `json:"incorrect"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is one leaderboard line.
type LBRow struct {
	UserID    string `json:"userId"`
	Found     int    `json:"found"`
	Total     int    `json:"total"`
	Incorrect int    `json:"incorrect"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

// NewStore wraps an opened, migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (user_id, date, seed, found, total, incorrect, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Date, strconv.FormatUint(r.Seed, 10), r.Found, r.Total, r.Incorrect, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the best results for date: most words found, then
// fewest incorrect attempts, then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, found, total, incorrect, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY found DESC, incorrect ASC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Found, &r.Total, &r.Incorrect, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
