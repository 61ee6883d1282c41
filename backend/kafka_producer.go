package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type Analytics struct{ writer *kafka.Writer }

// NewAnalytics returns nil when no brokers are configured; a nil *Analytics drops events.
func NewAnalytics(brokers, topic string) *Analytics {
	if brokers == "" || topic == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Analytics{writer: w}
}

func (a *Analytics) Emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	b, err := json.Marshal(payload)
	if err != nil {
		log.Println("kafka marshal err:", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
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
