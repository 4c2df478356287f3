package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/you/4inarow/analytics"
	"github.com/you/4inarow/engine"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		modeFlag = flag.String("mode", "", "game mode: easy, hard, hell or pvp (menu when empty)")
		width    = flag.Int("width", engine.DefaultWidth, "board width")
		height   = flag.Int("height", engine.DefaultHeight, "board height")
		depth    = flag.Int("depth", engine.DefaultMaxDepth, "search depth for hard and hell modes")
		seed     = flag.Int64("seed", 0, "random seed for easy mode (0 = time)")
		verbose  = flag.Bool("v", false, "log every search decision")
	)
	flag.Parse()

	if *width < 1 || *height < 1 {
		log.Fatalf("invalid board %dx%d", *width, *height)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	opts := []engine.Option{engine.WithMaxDepth(*depth)}
	if *verbose {
		opts = append(opts, engine.WithLogger(log.Default()))
	}
	eng := engine.NewEngine(opts...)
	events := analytics.NewAnalytics(getenv("KAFKA_BROKERS", ""), getenv("KAFKA_TOPIC", analytics.DefaultTopic))
	defer events.Close()

	con := NewConsole(os.Stdin, os.Stdout)
	rng := rand.New(rand.NewSource(*seed))
	fmt.Println("Welcome to Connect 4")

	for {
		mode, ok := ParseMode(*modeFlag)
		if !ok {
			var err error
			if mode, err = con.ChooseMode(); err != nil {
				return
			}
		}
		s := &Session{
			ID:     uuid.New(),
			Mode:   mode,
			State:  engine.New(*width, *height, engine.Computer),
			Engine: eng,
			Rng:    rng,
			Events: events,
			Con:    con,
		}
		if _, err := s.Run(context.Background()); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println("game err:", err)
			}
			return
		}
		again, err := con.AskYesNo("\n\nWould you like to play again?(y/n) ")
		if err != nil || !again {
			return
		}
	}
}
