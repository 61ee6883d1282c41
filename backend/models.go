package main

import (
	"sync"
	"time"

	"github.com/Dileas1/RioTicTacToe/game"
	"github.com/google/uuid"
)

type GameID = uuid.UUID

const BotName = "BOT"

type Game struct {
	mu sync.Mutex

	ID         GameID
	Username   string
	Board      *game.Board
	Difficulty game.Difficulty
	Strategy   game.Strategy
	Human      game.Cell
	Turn       game.Cell
	Moves      int
	Started    time.Time
	LastMove   time.Time
	Ended      *time.Time
	Winner     *string
	IsDraw     bool
}

// WebSocket message payloads

type WSMessage struct {
	Type string      `json:"type"` // new|move|state|error|end
	Data interface{} `json:"data"`
}

type NewGameRequest struct {
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Strategy   string `json:"strategy,omitempty"`
	Side       string `json:"side,omitempty"` // X moves first
	Username   string `json:"username,omitempty"`
}

type MoveRequest struct {
	I int `json:"i"`
	J int `json:"j"`
}

type StatePayload struct {
	GameID      string         `json:"gameId"`
	Size        int            `json:"size"`
	WinLength   int            `json:"winLength"`
	Board       [][]string     `json:"board"`
	Text        string         `json:"text"`
	Turn        string         `json:"turn"`
	You         string         `json:"you"`
	Difficulty  string         `json:"difficulty"`
	Strategy    string         `json:"strategy"`
	Winner      string         `json:"winner,omitempty"` // X, O or draw
	WinningLine []game.CellRef `json:"winningLine,omitempty"`
	LastBot     *game.CellRef  `json:"lastBot,omitempty"`
}

type EndPayload struct {
	GameID string `json:"gameId"`
	Reason string `json:"reason"` // win|loss|draw
	Winner string `json:"winner"`
}
