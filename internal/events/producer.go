// Package events publishes point-of-sale events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TableCreated    = "table_created"
	TableReserved   = "table_reserved"
	BundleConfirmed = "bundle_confirmed"
	OrderSubmitted  = "order_submitted"
	SaleClosed      = "sale_closed"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	TableID    int64     `json:"table_id"`
	OperatorID string    `json:"operator_id,omitempty"`
	At         time.Time `json:"at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ string, tableID int64, operatorID string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		TableID:    tableID,
		OperatorID: operatorID,
		At:         time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Discard is used when no brokers are configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
	}
}

// encode keys messages by table so one table's events stay ordered.
func encode(ev Event) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.TableID, 10)),
		Value: data,
		Time:  ev.At,
	}, nil
}

func (p *Producer) Publish(ctx context.Context, ev Event) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
