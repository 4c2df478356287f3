package analytics

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "game.analytics"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Analytics publishes game events. A nil *Analytics drops everything.
type Analytics struct {
	writer  messageWriter
	timeout time.Duration
}

// NewAnalytics returns nil when no brokers are configured.
func NewAnalytics(brokers, topic string) *Analytics {
	if strings.TrimSpace(brokers) == "" {
		return nil
	}
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Analytics{writer: w, timeout: 2 * time.Second}
}

func (a *Analytics) Emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	b, err := json.Marshal(payload)
	if err != nil {
		log.Println("kafka encode err:", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	if err := a.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event), Value: b}); err != nil {
		log.Println("kafka emit err:", err)
	}
}

func (a *Analytics) Close() error {
	if a == nil || a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
