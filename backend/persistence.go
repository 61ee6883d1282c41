package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultStore records finished games. Boards are never stored, so a game
// cannot be resumed from it.
type ResultStore interface {
	SaveResult(ctx context.Context, r GameRecord) error
	QueryLeaderboard(ctx context.Context, difficulty string) ([]LBRow, error)
	QueryRecentGames(ctx context.Context, limit int) ([]RecentGameRow, error)
}

type DB struct{ Pool *pgxpool.Pool }

func OpenDB(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() { db.Pool.Close() }

func (db *DB) AutoMigrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id         UUID PRIMARY KEY,
			username   TEXT NOT NULL,
			size       INT NOT NULL,
			difficulty TEXT NOT NULL,
			strategy   TEXT NOT NULL,
			human_side TEXT NOT NULL,
			winner     TEXT,
			is_draw    BOOLEAN NOT NULL DEFAULT FALSE,
			moves      INT NOT NULL DEFAULT 0,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ended_at   TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);
	`)
	return err
}

type GameRecord struct {
	ID         string
	Username   string
	Size       int
	Difficulty string
	Strategy   string
	HumanSide  string
	Winner     *string
	IsDraw     bool
	Moves      int
	Started    time.Time
	Ended      *time.Time
}

func recordOf(g *Game) GameRecord {
	return GameRecord{
		ID:         g.ID.String(),
		Username:   g.Username,
		Size:       g.Board.Size(),
		Difficulty: string(g.Difficulty),
		Strategy:   g.Strategy.String(),
		HumanSide:  g.Human.String(),
		Winner:     g.Winner,
		IsDraw:     g.IsDraw,
		Moves:      g.Moves,
		Started:    g.Started,
		Ended:      g.Ended,
	}
}

func (db *DB) SaveResult(ctx context.Context, r GameRecord) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO games (id, username, size, difficulty, strategy, human_side, winner, is_draw, moves, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			winner   = EXCLUDED.winner,
			is_draw  = EXCLUDED.is_draw,
			moves    = EXCLUDED.moves,
			ended_at = EXCLUDED.ended_at
	`, r.ID, r.Username, r.Size, r.Difficulty, r.Strategy, r.HumanSide, r.Winner, r.IsDraw, r.Moves, r.Started, r.Ended)
	return err
}

// PersistGame writes the finished game in the background path; errors are only logged.
func (a *App) PersistGame(r GameRecord) {
	if a.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Store.SaveResult(ctx, r); err != nil {
		log.Println("persist game err:", err)
	}
}

type RecentGameRow struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Size       int        `json:"size"`
	Difficulty string     `json:"difficulty"`
	Winner     *string    `json:"winner,omitempty"`
	IsDraw     bool       `json:"is_draw"`
	Moves      int        `json:"moves"`
	Started    time.Time  `json:"started"`
	Ended      *time.Time `json:"ended,omitempty"`
}

func (db *DB) QueryRecentGames(ctx context.Context, limit int) ([]RecentGameRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id::text, username, size, difficulty, winner, is_draw, moves, started_at, ended_at
		FROM games
		ORDER BY ended_at DESC NULLS LAST, started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RecentGameRow{}
	for rows.Next() {
		var r RecentGameRow
		if err := rows.Scan(&r.ID, &r.Username, &r.Size, &r.Difficulty, &r.Winner, &r.IsDraw, &r.Moves, &r.Started, &r.Ended); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
