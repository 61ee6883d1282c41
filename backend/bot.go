package main

import (
	"fmt"
	"strings"

	"github.com/Dileas1/RioTicTacToe/game"
)

// botMove lets the engine reply when it is its turn. Callers hold g.mu.
func botMove(g *Game) (game.CellRef, bool) {
	if g.over() || g.Turn == g.Human {
		return game.CellRef{}, false
	}
	ref := g.Board.CPUMove(g.Strategy)
	g.advance()
	return ref, true
}

// botSettings resolves the request's difficulty, optional explicit strategy
// and the human's side, falling back to the server defaults.
func botSettings(req NewGameRequest, cfg Config) (game.Difficulty, game.Strategy, game.Cell, error) {
	d := req.Difficulty
	if d == "" {
		d = cfg.DefaultDifficulty
	}
	diff, err := game.ParseDifficulty(d)
	if err != nil {
		return "", 0, game.Empty, err
	}
	strat := diff.Strategy()
	if req.Strategy != "" {
		if strat, err = game.ParseStrategy(req.Strategy); err != nil {
			return "", 0, game.Empty, err
		}
	}
	human := game.X
	switch strings.ToUpper(req.Side) {
	case "", "X":
	case "O":
		human = game.O
	default:
		return "", 0, game.Empty, fmt.Errorf("side must be X or O, got %q", req.Side)
	}
	return diff, strat, human, nil
}
