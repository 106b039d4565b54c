package events

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Dial connects to RabbitMQ, retrying while the broker is still starting.
func Dial(ctx context.Context, url string, logger zerolog.Logger) (*amqp.Connection, error) {
	const attempts = 10

	var lastErr error
	for i := 1; i <= attempts; i++ {
		conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", i).Msg("rabbitmq not reachable yet")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i) * 500 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("dial rabbitmq: %w", lastErr)
}
