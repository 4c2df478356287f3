package main

import (
	"fmt"
	"os"
)

type Config struct {
	Port         string
	KafkaBrokers string
	KafkaTopic   string
	MaxDepth     int
	TimeoutMs    int
	MaxWidth     int
	MaxHeight    int
}

func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		KafkaBrokers: getenv("KAFKA_BROKERS", ""),
		KafkaTopic:   getenv("KAFKA_TOPIC", "game.analytics"),
		MaxDepth:     atoi(getenv("ENGINE_MAX_DEPTH", "8")),
		TimeoutMs:    atoi(getenv("ENGINE_TIMEOUT_MS", "0")),
		MaxWidth:     atoi(getenv("BOARD_MAX_WIDTH", "9")),
		MaxHeight:    atoi(getenv("BOARD_MAX_HEIGHT", "9")),
	}
}

func getenv(k, def string) string { v := os.Getenv(k); if v == "" { return def }; return v }
func atoi(s string) int { var n int; _, _ = fmt.Sscan(s, &n); return n }
