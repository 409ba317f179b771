package broker

import (
	"context"
	"testing"
	"time"
)

func TestPublishRespectsCanceledContext(t *testing.T) {
	p := NewPublisher(&Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "retail.operations",
	})
	t.Cleanup(func() { p.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.Publish(ctx, "sale.recorded", map[string]int64{"transaction_id": 9001})
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Expected publish with canceled context to fail")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Publish did not return after context cancellation")
	}
}
