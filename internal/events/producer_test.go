package events

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.PublishEvent(context.Background(), TopicUserEvents, "1", map[string]any{"type": "noop"}))
}

// Runs against a live broker; set KAFKA_BROKERS to enable.
func TestProducerPublish(t *testing.T) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_BROKERS not set, skipping kafka integration test")
	}

	p := NewProducer(strings.Split(brokers, ","))
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := p.PublishEvent(ctx, TopicOrderEvents, "42", map[string]any{
		"type":    "order_created",
		"orderID": 42,
	})
	require.NoError(t, err)
}
