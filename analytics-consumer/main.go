package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/you/4inarow/analytics"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	brokers := getenv("KAFKA_BROKERS", "localhost:9092")
	topic := getenv("KAFKA_TOPIC", analytics.DefaultTopic)
	groupID := getenv("KAFKA_GROUP", "analytics")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		log.Println("shutting down")
		cancel()
	}()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer r.Close()

	metrics := analytics.NewMetrics()
	log.Printf("analytics consumer started. brokers=%s topic=%s group=%s", brokers, topic, groupID)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.Print(log.Writer())
			}
		}
	}()

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				metrics.Print(log.Writer())
				return
			}
			log.Printf("read error: %v", err)
			time.Sleep(time.Second)
			continue
		}
		ev, err := analytics.DecodeEvent(m.Value)
		if err != nil {
			log.Printf("skip message key=%s: %v", m.Key, err)
			continue
		}
		metrics.Apply(ev)
	}
}
