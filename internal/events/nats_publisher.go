package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const publishAttempts = 3

// natsConn is the subset of *nats.Conn used by the publisher.
type natsConn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

type natsPublisher struct {
	conn    natsConn
	subject string
	logger  zerolog.Logger
}

// NewNATSPublisher connects to url and publishes order notifications on
// subject.
func NewNATSPublisher(url, subject string, logger zerolog.Logger) (Publisher, error) {
	logger = logger.With().Str("component", "nats-publisher").Logger()

	nc, err := nats.Connect(url,
		nats.Name("storefront"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info().Str("url", url).Str("subject", subject).Msg("connected to NATS")

	return newNATSPublisher(nc, subject, logger), nil
}

func newNATSPublisher(conn natsConn, subject string, logger zerolog.Logger) *natsPublisher {
	return &natsPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}
}

// PublishOrderPlaced publishes the event, retrying a few times before giving up.
func (p *natsPublisher) PublishOrderPlaced(ctx context.Context, username model.Username, order model.Order) error {
	data, err := json.Marshal(NewOrderPlacedEvent(username, order, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.conn.Publish(p.subject, data); err != nil {
			lastErr = err
			p.logger.Warn().Err(err).Int("attempt", attempt).Msg("failed to publish to NATS")
			continue
		}

		if err := p.conn.FlushTimeout(2 * time.Second); err != nil {
			lastErr = err
			p.logger.Warn().Err(err).Int("attempt", attempt).Msg("failed to flush NATS connection")
			continue
		}

		p.logger.Debug().Str("order_id", order.ID).Msg("published order placed event")
		return nil
	}

	return fmt.Errorf("failed to publish event after %d attempts: %w", publishAttempts, lastErr)
}

func (p *natsPublisher) Close() error {
	return p.conn.Drain()
}
