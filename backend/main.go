package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Dileas1/RioTicTacToe/game"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const guestName = "guest"

type App struct {
	Hub       *Hub
	Store     ResultStore
	Analytics *Analytics
	Config    Config
}

type moveEvent struct {
	by  string
	ref game.CellRef
}

// CreateGame starts a game against the engine. When the human plays O the
// engine opens immediately.
func (a *App) CreateGame(req NewGameRequest) (StatePayload, error) {
	size := req.Size
	if size == 0 {
		size = a.Config.DefaultBoardSize
	}
	diff, strat, human, err := botSettings(req, a.Config)
	if err != nil {
		return StatePayload{}, err
	}
	username := req.Username
	if username == "" {
		username = guestName
	}
	g, err := newGame(a.Hub.geometry, username, size, diff, strat, human)
	if err != nil {
		return StatePayload{}, err
	}
	a.Hub.AddGame(g)
	log.Printf("created game %s for %s: size=%d difficulty=%s strategy=%s side=%s", g.ID, username, size, diff, strat, human)
	a.Analytics.Emit("match.start", map[string]any{
		"gameId": g.ID.String(), "username": username, "size": size,
		"difficulty": string(diff), "strategy": strat.String(), "side": human.String(),
	})

	g.mu.Lock()
	var lastBot *game.CellRef
	if ref, ok := botMove(g); ok {
		lastBot = &ref
	}
	st := g.state(lastBot)
	g.mu.Unlock()

	if lastBot != nil {
		a.emitMoves(g, []moveEvent{{by: BotName, ref: *lastBot}})
	}
	a.push(username, WSMessage{Type: "state", Data: st})
	return st, nil
}

// HandleMove plays the human move and the engine's reply.
func (a *App) HandleMove(gid GameID, ref game.CellRef) (StatePayload, error) {
	g, ok := a.Hub.GetGame(gid)
	if !ok {
		return StatePayload{}, ErrNoSuchGame
	}

	g.mu.Lock()
	if err := g.play(ref); err != nil {
		g.mu.Unlock()
		return StatePayload{}, err
	}
	moves := []moveEvent{{by: g.Username, ref: ref}}
	var lastBot *game.CellRef
	if reply, ok := botMove(g); ok {
		lastBot = &reply
		moves = append(moves, moveEvent{by: BotName, ref: reply})
	}
	st := g.state(lastBot)
	ended := g.over()
	var rec GameRecord
	var end EndPayload
	if ended {
		rec = recordOf(g)
		end = EndPayload{GameID: g.ID.String(), Reason: g.reason(), Winner: st.Winner}
	}
	g.mu.Unlock()

	a.emitMoves(g, moves)
	a.push(g.Username, WSMessage{Type: "state", Data: st})
	if ended {
		a.finish(rec, end)
	}
	return st, nil
}

func (a *App) emitMoves(g *Game, moves []moveEvent) {
	for _, m := range moves {
		a.Analytics.Emit("move", map[string]any{"gameId": g.ID.String(), "by": m.by, "i": m.ref.I, "j": m.ref.J})
	}
}

func (a *App) finish(rec GameRecord, end EndPayload) {
	log.Printf("game %s finished: %s (winner %s, %d moves)", rec.ID, end.Reason, end.Winner, rec.Moves)
	go a.PersistGame(rec)

	var duration time.Duration
	if rec.Ended != nil {
		duration = rec.Ended.Sub(rec.Started)
	}
	a.Analytics.Emit("game.end", map[string]any{
		"gameId":     rec.ID,
		"username":   rec.Username,
		"size":       rec.Size,
		"difficulty": rec.Difficulty,
		"strategy":   rec.Strategy,
		"reason":     end.Reason,
		"winner":     end.Winner,
		"moves":      rec.Moves,
		"duration":   duration.String(),
	})
	a.push(rec.Username, WSMessage{Type: "end", Data: end})
}

func (a *App) push(username string, msg WSMessage) {
	if ws := a.Hub.Conn(username); ws != nil {
		if err := ws.SafeWriteJSON(msg); err != nil {
			log.Printf("push to %s failed: %v", username, err)
		}
	}
}

func (a *App) createGameHandler(c *gin.Context) {
	var req NewGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Username == "" {
		req.Username = c.Query("username")
	}
	st, err := a.CreateGame(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (a *App) gameFromParam(c *gin.Context) (*Game, bool) {
	gid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad game id"})
		return nil, false
	}
	g, ok := a.Hub.GetGame(gid)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNoSuchGame.Error()})
		return nil, false
	}
	return g, true
}

func (a *App) getGameHandler(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	g.mu.Lock()
	st := g.state(nil)
	g.mu.Unlock()
	c.JSON(http.StatusOK, st)
}

func (a *App) moveHandler(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	var m MoveRequest
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := a.HandleMove(g.ID, game.CellRef{I: m.I, J: m.J})
	switch {
	case errors.Is(err, ErrNoSuchGame):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, st)
	}
}

func (a *App) deleteGameHandler(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	a.Hub.RemoveGame(g.ID)
	c.Status(http.StatusNoContent)
}

func (a *App) leaderboardHandler(c *gin.Context) {
	if a.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results ledger disabled"})
		return
	}
	rows, err := a.Store.QueryLeaderboard(c.Request.Context(), c.Query("difficulty"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (a *App) recentHandler(c *gin.Context) {
	if a.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results ledger disabled"})
		return
	}
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rows, err := a.Store.QueryRecentGames(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (a *App) routes() http.Handler {
	r := gin.Default()
	// simple CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true, "games": a.Hub.Len()}) })
	r.GET("/ws", func(c *gin.Context) { wsHandler(a, c.Writer, c.Request) })
	r.POST("/games", a.createGameHandler)
	r.GET("/games/:id", a.getGameHandler)
	r.POST("/games/:id/move", a.moveHandler)
	r.DELETE("/games/:id", a.deleteGameHandler)
	r.GET("/leaderboard", a.leaderboardHandler)
	r.GET("/recent", a.recentHandler)
	return r
}

func main() {
	_ = os.Setenv("TZ", "UTC")
	cfg := LoadConfig()
	app := &App{
		Hub:       NewHub(time.Duration(cfg.IdleGameTTLSeconds) * time.Second),
		Analytics: NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic),
		Config:    cfg,
	}
	defer app.Analytics.Close()

	if cfg.PostgresDSN != "" {
		db, err := OpenDB(context.Background(), cfg.PostgresDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		app.Store = db
		go func() {
			if err := db.AutoMigrate(context.Background()); err != nil {
				log.Println("migrate err:", err)
			}
		}()
	} else {
		log.Println("POSTGRES_DSN disabled, results are not recorded")
	}

	stop := make(chan struct{})
	go app.Hub.RunSweeper(stop)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: app.routes()}
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		log.Println("shutting down…")
		close(stop)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Println("backend listening on", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
