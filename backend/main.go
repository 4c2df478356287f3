package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/you/4inarow/analytics"
	"github.com/you/4inarow/engine"
)

type App struct {
	Cfg       Config
	Engine    *engine.Engine
	Analytics *analytics.Analytics
}

func NewApp(cfg Config, a *analytics.Analytics) *App {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = engine.DefaultMaxDepth
	}
	return &App{
		Cfg:       cfg,
		Engine:    engine.NewEngine(engine.WithMaxDepth(cfg.MaxDepth), engine.WithLogger(log.Default())),
		Analytics: a,
	}
}

func parseTurn(s string) (engine.Player, bool) {
	switch s {
	case "", "computer":
		return engine.Computer, true
	case "human":
		return engine.Human, true
	}
	return 0, false
}

func (a *App) engineFor(depth int) *engine.Engine {
	if depth <= 0 || depth >= a.Cfg.MaxDepth {
		return a.Engine
	}
	return engine.NewEngine(engine.WithMaxDepth(depth), engine.WithLogger(log.Default()))
}

func (a *App) analyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	turn, ok := parseTurn(req.Turn)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "turn must be computer or human"})
		return
	}
	if len(req.Rows) > a.Cfg.MaxHeight || (len(req.Rows) > 0 && len(req.Rows[0]) > a.Cfg.MaxWidth) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "board too large"})
		return
	}
	state, err := engine.ParseBoard(req.Rows, turn)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if who, won := state.FindWinner(); won {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "game already won", Winner: who.String()})
		return
	}

	ctx := c.Request.Context()
	if a.Cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.Cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}
	eng := a.engineFor(req.Depth)
	d, err := eng.Decide(ctx, state)
	switch {
	case errors.Is(err, engine.ErrBoardFull):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "board full"})
		return
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "search timed out"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	row, _ := state.LandingRow(d.Column)
	resp := AnalyzeResponse{
		RequestID: uuid.NewString(),
		Column:    d.Column,
		Row:       row,
		Score:     d.Score,
		Fallback:  d.Fallback,
		Tally:     d.Tally,
		Nodes:     d.Nodes,
		Depth:     eng.MaxDepth(),
		ElapsedMs: d.Elapsed.Milliseconds(),
	}
	a.Analytics.Emit("analysis", map[string]any{
		"requestId": resp.RequestID, "col": d.Column, "score": d.Score,
		"fallback": d.Fallback, "nodes": d.Nodes, "elapsedMs": resp.ElapsedMs,
	})
	c.JSON(http.StatusOK, resp)
}

func (a *App) routes() http.Handler {
	r := gin.Default()
	// simple CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true, "maxDepth": a.Cfg.MaxDepth}) })
	r.POST("/v1/analyze", a.analyzeHandler)
	return r
}

func main() {
	_ = os.Setenv("TZ", "UTC")
	cfg := LoadConfig()
	events := analytics.NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer events.Close()
	app := NewApp(cfg, events)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: app.routes()}
	log.Println("engine service listening on", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}
