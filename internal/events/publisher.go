package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/sun6bks/ticket-api/internal/models"
)

// Event types published to the status stream.
const (
	EventTransactionPaid     = "TransactionPaid"
	EventTransactionExpired  = "TransactionExpired"
	EventTransactionFailed   = "TransactionFailed"
	EventTransactionRefunded = "TransactionRefunded"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	OrderID      string          `json:"order_id"`
	Payload      json.RawMessage `json:"payload"`
}

// StatusChangedPayload describes one applied transition.
type StatusChangedPayload struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Quantity  int    `json:"quantity"`
	Amount    int64  `json:"amount"`
	Trigger   string `json:"trigger"`
}

// Publisher streams applied status transitions to Kafka. Publishing is
// fire-and-forget through a buffered inbox so the reconciliation pipeline is
// never blocked by a slow broker. A nil *Publisher is valid and publishes
// nothing, which is how the engine runs when no brokers are configured.
type Publisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

// NewPublisher creates a Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, 256),
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until the context is cancelled, flushing the
// inbox before closing the writer.
func (p *Publisher) Start(ctx context.Context) {
	if p == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				// Drain whatever is queued; the inbox stays open so a late
				// publish cannot panic, it just gets dropped.
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						_ = p.w.Close()
						close(p.closeCh)
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Publisher) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Warn().Err(err).Str("key", string(m.Key)).Msg("Failed to publish status event")
	}
}

// PublishStatusChanged emits an envelope for one applied transition. The
// order id is the partition key so all events of one order stay ordered.
func (p *Publisher) PublishStatusChanged(trx *models.Transaction, oldStatus, newStatus models.TransactionStatus, trigger string) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(StatusChangedPayload{
		OrderID:   trx.OrderID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Quantity:  trx.Quantity,
		Amount:    trx.Amount,
		Trigger:   trigger,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal status event payload")
		return
	}

	env := Envelope{
		EventID:      uuid.New().String(),
		EventType:    eventTypeFor(newStatus),
		EventVersion: 1,
		OccurredAt:   time.Now(),
		Producer:     "ticket-api",
		OrderID:      trx.OrderID,
		Payload:      payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal status event envelope")
		return
	}

	msg := kafka.Message{
		Key:   []byte(trx.OrderID),
		Value: value,
		Time:  time.Now(),
	}
	select {
	case p.inbox <- msg:
	default:
		log.Warn().Str("order_id", trx.OrderID).Msg("Status event inbox full, dropping event")
	}
}

// WaitClosed blocks until the writer loop has flushed and exited.
func (p *Publisher) WaitClosed() {
	if p == nil {
		return
	}
	<-p.closeCh
}

func eventTypeFor(status models.TransactionStatus) string {
	switch status {
	case models.StatusPaid:
		return EventTransactionPaid
	case models.StatusExpired:
		return EventTransactionExpired
	case models.StatusRefunded:
		return EventTransactionRefunded
	default:
		return EventTransactionFailed
	}
}
