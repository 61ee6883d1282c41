package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func newReader(brokers, topic, groupID string) *kafka.Reader {
	cfg := kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	}
	if groupID == "" {
		cfg.StartOffset = kafka.FirstOffset
	}
	return kafka.NewReader(cfg)
}

// decode reads an event, taking its kind from the message key when the body lacks one.
func decode(m kafka.Message) (Event, error) {
	var ev Event
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		return ev, err
	}
	if ev.Event == "" {
		ev.Event = string(m.Key)
	}
	return ev, nil
}

func main() {
	brokers := getenv("KAFKA_BROKERS", "localhost:9092")
	topic := getenv("KAFKA_TOPIC", "game.analytics")
	groupID := getenv("KAFKA_GROUP", "analytics")
	if groupID == "-" {
		groupID = ""
	}

	log.Printf("analytics consumer started. brokers=%s topic=%s group=%s", brokers, topic, groupID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc
		log.Println("shutting down…")
		cancel()
	}()

	r := newReader(brokers, topic, groupID)
	defer r.Close()

	agg := NewAggregates()
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				agg.Print(os.Stdout, now, 10*time.Second)
			}
		}
	}()

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("read error: %v", err)
			time.Sleep(time.Second)
			continue
		}
		ev, err := decode(m)
		if err != nil {
			log.Printf("bad event at offset %d: %v", m.Offset, err)
			continue
		}
		if !agg.Add(ev, time.Now()) {
			log.Printf("ignoring event %q", ev.Event)
		}
	}
}
