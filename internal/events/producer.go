// Package events publishes marketplace domain events to Kafka. Publishing is
// best-effort: failures are logged and never fail the originating request.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"packaging/models"
)

const topic = "packaging.requests"

// Event types carried on the requests topic.
const (
	TypeRequestCreated  = "request.created"
	TypeInterestChanged = "interest.changed"
)

type envelope struct {
	Type       string          `json:"type"`
	RequestID  int             `json:"requestId"`
	SupplierID int             `json:"supplierId,omitempty"`
	Interested *bool           `json:"interested,omitempty"`
	Request    *models.Request `json:"request,omitempty"`
	At         time.Time       `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a producer for the requests topic. An empty broker
// disables publishing; a nil *Producer is safe to call.
func NewProducer(broker string) *Producer {
	if broker == "" {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// RequestCreated announces a new ledger entry.
func (p *Producer) RequestCreated(ctx context.Context, r *models.Request) {
	p.publish(ctx, envelope{
		Type:      TypeRequestCreated,
		RequestID: r.ID,
		Request:   r,
		At:        time.Now(),
	})
}

// InterestChanged announces an interest toggle outcome.
func (p *Producer) InterestChanged(ctx context.Context, r *models.Request, supplierID int, interested bool) {
	p.publish(ctx, envelope{
		Type:       TypeInterestChanged,
		RequestID:  r.ID,
		SupplierID: supplierID,
		Interested: &interested,
		Request:    r,
		At:         time.Now(),
	})
}

func (p *Producer) publish(ctx context.Context, ev envelope) {
	if p == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("encode event")
		return
	}
	// Keyed by request id so toggles on one request stay ordered per partition.
	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(ev.RequestID)),
		Value: data,
		Time:  ev.At,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("type", ev.Type).Int("request_id", ev.RequestID).Msg("publish event")
	}
}
