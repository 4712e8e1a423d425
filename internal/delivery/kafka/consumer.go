package kafka

import (
	"context"
	"errors"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

// Consumer ingests partner-submitted orders. Payloads that keep failing go
// to the DLQ so the partition never wedges on one bad message.
type Consumer struct {
	reader      *kafka.Reader
	dlq         dlqWriter
	svc         service.CRM
	maxRetries  int
	baseBackoff time.Duration
}

type dlqWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewConsumer(cfg Config, svc service.CRM) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.DLQ,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}

	return &Consumer{
		reader:      r,
		dlq:         w,
		svc:         svc,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
	}
}

func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("kafka fetch error")
			select {
			case <-time.After(300 * time.Millisecond):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		if !c.handleMessage(ctx, m) {
			// quarantine failed too; refetch the message instead of losing it
			select {
			case <-time.After(c.baseBackoff):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			logrus.WithError(err).Error("kafka commit failed")
		}
	}
}

// handleMessage reports whether the message may be committed. A rejected
// payload is only committable once it has landed in the DLQ.
func (c *Consumer) handleMessage(ctx context.Context, m kafka.Message) bool {
	err := c.process(ctx, m.Value)
	if err == nil {
		return true
	}
	logrus.WithError(err).
		WithField("offset", m.Offset).
		Error("partner order rejected, sending to DLQ")
	if derr := c.dlq.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value}); derr != nil {
		logrus.WithError(derr).Error("DLQ write failed")
		return false
	}
	return true
}

func (c *Consumer) process(ctx context.Context, payload []byte) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err = c.svc.HandlePartnerOrder(ctx, payload); err == nil {
			return nil
		}
		// malformed payloads never heal; skip straight to the DLQ
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrConflict) {
			return err
		}
		select {
		case <-time.After(c.baseBackoff << attempt):
		case <-ctx.Done():
			return err
		}
	}
	return err
}

func (c *Consumer) Close(_ context.Context) error {
	rerr := c.reader.Close()
	werr := c.dlq.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}
