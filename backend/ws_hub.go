package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Dileas1/RioTicTacToe/game"
	"github.com/gorilla/websocket"
)

type WSConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *WSConn) SafeWriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.WriteJSON(v)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live games and websocket connections. Each game carries its own
// lock, so a long engine search never blocks other games.
type Hub struct {
	mu          sync.RWMutex
	games       map[GameID]*Game
	currentGame map[string]GameID
	conns       map[string]*WSConn
	geometry    *game.GeometryCache
	idleTTL     time.Duration
}

func NewHub(ttl time.Duration) *Hub {
	return &Hub{
		games:       make(map[GameID]*Game),
		currentGame: make(map[string]GameID),
		conns:       make(map[string]*WSConn),
		geometry:    game.NewGeometryCache(),
		idleTTL:     ttl,
	}
}

func (h *Hub) AddGame(g *Game) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games[g.ID] = g
	h.currentGame[g.Username] = g.ID
}

func (h *Hub) GetGame(gid GameID) (*Game, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	g := h.games[gid]
	return g, g != nil
}

// CurrentGame is the last game the user started.
func (h *Hub) CurrentGame(username string) (*Game, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	gid, ok := h.currentGame[username]
	if !ok {
		return nil, false
	}
	g := h.games[gid]
	return g, g != nil
}

func (h *Hub) RemoveGame(gid GameID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g := h.games[gid]
	if g == nil {
		return
	}
	if h.currentGame[g.Username] == gid {
		delete(h.currentGame, g.Username)
	}
	delete(h.games, gid)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games)
}

// SweepIdle drops games nobody has moved in for the idle TTL and returns how many went.
func (h *Hub) SweepIdle(now time.Time) int {
	h.mu.RLock()
	games := make([]*Game, 0, len(h.games))
	for _, g := range h.games {
		games = append(games, g)
	}
	h.mu.RUnlock()

	swept := 0
	for _, g := range games {
		g.mu.Lock()
		idle := now.Sub(g.LastMove) > h.idleTTL
		g.mu.Unlock()
		if idle {
			h.RemoveGame(g.ID)
			swept++
		}
	}
	return swept
}

func (h *Hub) RunSweeper(stop <-chan struct{}) {
	if h.idleTTL <= 0 {
		return
	}
	t := time.NewTicker(h.idleTTL / 2)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			if n := h.SweepIdle(now); n > 0 {
				log.Printf("swept %d idle games", n)
			}
		}
	}
}

func (h *Hub) SetConn(username string, ws *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[username] = ws
}

func (h *Hub) DelConn(username string, ws *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[username] == ws {
		delete(h.conns, username)
	}
}

func (h *Hub) Conn(username string) *WSConn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[username]
}

func wsHandler(app *App, w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade failed:", err)
		return
	}
	ws := &WSConn{Conn: conn}
	app.Hub.SetConn(username, ws)
	log.Printf("player %s connected", username)

	// resume the current game on reconnect
	if g, ok := app.Hub.CurrentGame(username); ok {
		g.mu.Lock()
		st := g.state(nil)
		g.mu.Unlock()
		_ = ws.SafeWriteJSON(WSMessage{Type: "state", Data: st})
	}

	go func() {
		defer func() {
			conn.Close()
			app.Hub.DelConn(username, ws)
			log.Printf("player %s disconnected", username)
		}()
		for {
			var incoming struct {
				Type string          `json:"type"`
				Data json.RawMessage `json:"data"`
			}
			if err := conn.ReadJSON(&incoming); err != nil {
				log.Println("read err:", err)
				return
			}

			switch incoming.Type {
			case "new":
				var req NewGameRequest
				if len(incoming.Data) > 0 {
					if err := json.Unmarshal(incoming.Data, &req); err != nil {
						writeError(ws, err)
						continue
					}
				}
				req.Username = username
				if _, err := app.CreateGame(req); err != nil {
					writeError(ws, err)
				}

			case "move":
				var m MoveRequest
				if err := json.Unmarshal(incoming.Data, &m); err != nil {
					writeError(ws, err)
					continue
				}
				g, ok := app.Hub.CurrentGame(username)
				if !ok {
					writeError(ws, ErrNoSuchGame)
					continue
				}
				if _, err := app.HandleMove(g.ID, game.CellRef{I: m.I, J: m.J}); err != nil {
					writeError(ws, err)
				}

			default:
				writeError(ws, errors.New("unknown message type "+incoming.Type))
			}
		}
	}()
}

func writeError(ws *WSConn, err error) {
	_ = ws.SafeWriteJSON(WSMessage{Type: "error", Data: map[string]any{"error": err.Error()}})
}
