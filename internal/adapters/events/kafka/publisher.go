package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
)

// Publisher emits entry-created events to a Kafka topic so downstream
// consumers (alerting, projections) can react without coupling to the write
// path.
type Publisher struct {
	writer *kafka.Writer
}

var _ portssvc.EntryNotifier = (*Publisher)(nil)

// NewPublisher creates a Publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// entryCreatedEvent is the wire shape of one published entry.
type entryCreatedEvent struct {
	EntryID        string `json:"entryID"`
	OrganizationID string `json:"organizationID"`
	SeriesID       string `json:"seriesID,omitempty"`
	TransferID     string `json:"transferID,omitempty"`
	Nature         string `json:"nature"`
	Amount         string `json:"amount"`
	DueDate        string `json:"dueDate"`
}

// PublishEntriesCreated writes one message per entry, keyed by organization
// so an organization's entries stay ordered within a partition.
func (p *Publisher) PublishEntriesCreated(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		event := entryCreatedEvent{
			EntryID:        e.EntryID,
			OrganizationID: e.OrganizationID,
			SeriesID:       e.SeriesID,
			TransferID:     e.TransferID,
			Nature:         string(e.Nature),
			Amount:         e.Amount.String(),
			DueDate:        e.DueDate.Format("2006-01-02"),
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal entry event: %w", err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(e.OrganizationID),
			Value: data,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish entry events: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
