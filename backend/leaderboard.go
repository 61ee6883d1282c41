package main

import "context"

type LBRow struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
}

// QueryLeaderboard ranks humans by wins against the engine, optionally for one difficulty.
func (db *DB) QueryLeaderboard(ctx context.Context, difficulty string) ([]LBRow, error) {
	rows, err := db.Pool.Query(ctx, `SELECT username,
			COUNT(*) FILTER (WHERE winner = username) AS wins,
			COUNT(*) FILTER (WHERE is_draw) AS draws,
			COUNT(*) FILTER (WHERE winner = $2) AS losses
		FROM games
		WHERE ended_at IS NOT NULL AND ($1 = '' OR difficulty = $1)
		GROUP BY username ORDER BY wins DESC, draws DESC LIMIT 50`, difficulty, BotName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Wins, &r.Draws, &r.Losses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
