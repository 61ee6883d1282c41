package main

import (
	"errors"
	"time"

	"github.com/Dileas1/RioTicTacToe/game"
	"github.com/google/uuid"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("cell is occupied or off the board")
	ErrNoSuchGame  = errors.New("game not found")
)

func newGame(cache *game.GeometryCache, username string, size int, diff game.Difficulty, strat game.Strategy, human game.Cell) (*Game, error) {
	b, err := cache.NewBoard(size)
	if err != nil {
		return nil, err
	}
	b.SetEngineSide(human.Opposite())
	now := time.Now()
	return &Game{
		ID:         uuid.New(),
		Username:   username,
		Board:      b,
		Difficulty: diff,
		Strategy:   strat,
		Human:      human,
		Turn:       game.X,
		Started:    now,
		LastMove:   now,
	}, nil
}

func (g *Game) over() bool { return g.Ended != nil }

// play applies the human move. Callers hold g.mu.
func (g *Game) play(ref game.CellRef) error {
	if g.over() {
		return ErrGameOver
	}
	if g.Turn != g.Human {
		return ErrNotYourTurn
	}
	if !g.Board.PlayerMove(ref) {
		return ErrIllegalMove
	}
	g.advance()
	return nil
}

func (g *Game) advance() {
	g.Moves++
	g.LastMove = time.Now()
	g.Turn = g.Turn.Opposite()
	g.settle()
}

// settle records the outcome once the board reaches a terminal state.
func (g *Game) settle() bool {
	if g.over() {
		return true
	}
	w, over := g.Board.Result()
	if !over {
		return false
	}
	now := time.Now()
	g.Ended = &now
	if w == game.Empty {
		g.IsDraw = true
		return true
	}
	name := BotName
	if w == g.Human {
		name = g.Username
	}
	g.Winner = &name
	return true
}

// reason describes the end of the game from the human's point of view.
func (g *Game) reason() string {
	switch {
	case g.IsDraw:
		return "draw"
	case g.Winner != nil && *g.Winner == BotName:
		return "loss"
	default:
		return "win"
	}
}

func (g *Game) state(lastBot *game.CellRef) StatePayload {
	cells := g.Board.Cells()
	board := make([][]string, len(cells))
	for i, row := range cells {
		board[i] = make([]string, len(row))
		for j, c := range row {
			board[i][j] = c.String()
		}
	}
	st := StatePayload{
		GameID:     g.ID.String(),
		Size:       g.Board.Size(),
		WinLength:  g.Board.WinLength(),
		Board:      board,
		Text:       g.Board.String(),
		Turn:       g.Turn.String(),
		You:        g.Human.String(),
		Difficulty: string(g.Difficulty),
		Strategy:   g.Strategy.String(),
		LastBot:    lastBot,
	}
	if g.over() {
		st.Turn = ""
		if g.IsDraw {
			st.Winner = "draw"
		} else {
			st.Winner = g.Board.CheckWin().String()
			st.WinningLine = g.Board.WinningLine()
		}
	}
	return st
}
