package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const emitTimeout = 2 * time.Second

// Emitter ships game telemetry to kafka. A nil Emitter is a valid no-op, so
// callers never need to check whether analytics is configured.
type Emitter struct {
	logger *slog.Logger
	writer *kafka.Writer
}

// New - creates an emitter writing to the given brokers and topic. Brokers is
// a comma separated address list.
func New(logger *slog.Logger, brokers, topic string) *Emitter {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Emitter{
		logger: logger.With("component", "analytics"),
		writer: writer,
	}
}

// Emit - sends one event with the given payload. Delivery is best effort: a
// broker problem is logged and the game goes on.
func (that *Emitter) Emit(event string, payload map[string]any) {
	if that == nil || that.writer == nil {
		return
	}

	payload["event"] = event
	payload["ts"] = time.Now().UTC()

	body, err := json.Marshal(payload)
	if err != nil {
		that.logger.Warn("could not marshal analytics event", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	if err = that.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		that.logger.Warn("could not emit analytics event", "event", event, "error", err)
	}
}

// Close - flushes and closes the underlying writer.
func (that *Emitter) Close() error {
	if that == nil || that.writer == nil {
		return nil
	}

	if err := that.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
