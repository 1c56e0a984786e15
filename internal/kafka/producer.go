package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Muratozbk/support-desk/internal/model"
)

// Ticket lifecycle event names.
const (
	EventTicketCreated = "ticket.created"
	EventTicketUpdated = "ticket.updated"
	EventTicketClosed  = "ticket.closed"
	EventTicketDeleted = "ticket.deleted"
)

// TicketEventProducer is the producer contract (mockable in tests).
type TicketEventProducer interface {
	ProduceTicketEventAsync(event string, t *model.Ticket)
}

// Producer writes ticket lifecycle events to a Kafka topic. Delivery is
// best-effort: failures are logged and never surface to the API caller.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer. With no brokers or an empty topic the
// methods are no-ops.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

type ticketEvent struct {
	Event       string `json:"event"`
	TicketID    string `json:"ticket_id"`
	Owner       string `json:"owner"`
	Product     string `json:"product"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProduceTicketEvent publishes one lifecycle event for t.
func (p *Producer) ProduceTicketEvent(ctx context.Context, event string, t *model.Ticket) {
	if p.writer == nil || t == nil {
		return
	}
	body, err := json.Marshal(ticketEvent{
		Event:       event,
		TicketID:    t.ID,
		Owner:       t.Owner,
		Product:     t.Product,
		Description: t.Description,
		Status:      string(t.Status),
	})
	if err != nil {
		log.Error().Err(err).Msg("kafka: marshal ticket event")
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(t.ID), Value: body}); err != nil {
		log.Error().Err(err).Str("event", event).Msg("kafka: write ticket event")
	}
}

// ProduceTicketEventAsync publishes in a goroutine so the HTTP response is
// never blocked on the broker.
func (p *Producer) ProduceTicketEventAsync(event string, t *model.Ticket) {
	if p.writer == nil || t == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.ProduceTicketEvent(ctx, event, t)
	}()
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
