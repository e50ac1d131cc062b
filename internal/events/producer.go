// internal/events/producer.go
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"betledger/pkg/contracts/events"
	"betledger/pkg/contracts/topics"
)

// Producer publishes ticket lifecycle events. Publishing happens after the
// owning transaction commits and is best effort: the ledger is the source of
// truth, the stream is a projection.
//
// A nil *Producer is valid and drops every publish, so the services do not
// branch on whether Kafka is configured.
type Producer struct {
	placed  *kafka.Writer
	settled *kafka.Writer
}

// NewProducer creates a Producer for the given broker list ("a:9092,b:9092").
// Returns nil when brokers is empty.
func NewProducer(brokers string) *Producer {
	if brokers == "" {
		return nil
	}
	addrs := strings.Split(brokers, ",")
	return &Producer{
		placed: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topics.TicketPlaced,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
		settled: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topics.TicketSettled,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishTicketPlaced emits a TicketPlaced event keyed by ticket id.
func (p *Producer) PublishTicketPlaced(ctx context.Context, e events.TicketPlaced) error {
	if p == nil {
		return nil
	}
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.placed.WriteMessages(ctx, kafka.Message{Key: []byte(e.TicketID), Value: b})
}

// PublishTicketSettled emits a TicketSettled event keyed by ticket id.
func (p *Producer) PublishTicketSettled(ctx context.Context, e events.TicketSettled) error {
	if p == nil {
		return nil
	}
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.settled.WriteMessages(ctx, kafka.Message{Key: []byte(e.TicketID), Value: b})
}

// Close flushes and closes the underlying writers.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	if err := p.placed.Close(); err != nil {
		return err
	}
	return p.settled.Close()
}
