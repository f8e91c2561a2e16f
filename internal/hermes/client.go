package hermes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client publishes domain events. Implementations must be safe for
// concurrent use by request handlers.
type Client interface {
	Publish(subject string, data interface{}) error
	Subscribe(subject string, handler func(subject string, data []byte)) error
	Close()
}

// Options configure a NATSClient.
type Options struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	// Stream is created or updated on connect. Nil leaves JetStream alone.
	Stream *jetstream.StreamConfig
}

// DefaultStream retains every supplier and weights event for StreamMaxAge.
func DefaultStream() *jetstream.StreamConfig {
	return &jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectAllSuppliers, SubjectWeightsUpdated},
		MaxAge:   StreamMaxAge,
	}
}

func DefaultOptions(url string) Options {
	return Options{
		URL:           url,
		Name:          "verdant",
		MaxReconnects: 60,
		ReconnectWait: 2 * time.Second,
		Stream:        DefaultStream(),
	}
}

type NATSClient struct {
	conn   *nats.Conn
	logger *slog.Logger
}

var errNoURL = errors.New("hermes: url is required")

// NewNATSClient connects to opts.URL. A failure to set up the stream is
// logged and does not fail the connection; plain publish still works.
func NewNATSClient(ctx context.Context, opts Options, logger *slog.Logger) (*NATSClient, error) {
	if opts.URL == "" {
		return nil, errNoURL
	}
	nc, err := nats.Connect(opts.URL,
		nats.Name(opts.Name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("hermes disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("hermes reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	if opts.Stream != nil {
		if err := ensureStream(ctx, nc, *opts.Stream); err != nil {
			logger.Warn("failed to ensure stream", "stream", opts.Stream.Name, "error", err)
		}
	}
	return &NATSClient{conn: nc, logger: logger}, nil
}

func ensureStream(ctx context.Context, nc *nats.Conn, cfg jetstream.StreamConfig) error {
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("jetstream: %w", err)
	}
	_, err = js.CreateOrUpdateStream(ctx, cfg)
	return err
}

func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *NATSClient) Subscribe(subject string, handler func(string, []byte)) error {
	if _, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.logger.Debug("subscribed", "subject", subject)
	return nil
}

// Close drains subscriptions and pending publishes before disconnecting.
func (c *NATSClient) Close() {
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
