package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher sends fire-and-forget JSON events over NATS. The core's
// contract for these delegate hand-offs ends at "accepted for delivery";
// downstream failures are the consumer's responsibility.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
	source string
}

// NewPublisher connects to NATS and returns a Publisher tagged with the
// given source service name.
func NewPublisher(url string, log *logger.Logger, source string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Timeout(5*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		conn:   conn,
		logger: log.Named("NATSPublisher"),
		source: source,
	}, nil
}

type envelope struct {
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Publish marshals data into a JSON envelope and publishes it on subject.
func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(envelope{
		Source:    p.source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		p.logger.Error("Failed to marshal event payload", zap.String("subject", subject), zap.Error(err))
		return err
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Error("Failed to publish event", zap.String("subject", subject), zap.Error(err))
		return err
	}
	p.logger.Debug("Event published", zap.String("subject", subject))
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
