package tripevents

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	pkgerrors "github.com/pkg/errors"

	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/tripevents"
)

// Publisher is a Kafka implementation of tripevents.Publisher.
// Messages carry no key, so the producer's partitioner picks the partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// NewProducerConfig returns the producer settings used for trip events:
// leader ack only and no retries (at-most-once).
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 0
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// NewSyncProducer connects to brokers. It fails when no broker is reachable.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	p, err := sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create kafka producer")
	}
	return p, nil
}

type eventMessage struct {
	EventID    string      `json:"eventId"`
	EventType  string      `json:"eventType"`
	OccurredAt time.Time   `json:"occurredAt"`
	Trip       tripMessage `json:"trip"`
}

type tripMessage struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

func encodeEvent(e tripevents.Event) ([]byte, error) {
	return json.Marshal(eventMessage{
		EventID:    e.ID,
		EventType:  e.Type,
		OccurredAt: e.OccurredAt.UTC(),
		Trip: tripMessage{
			ID:          string(e.Trip.ID),
			Destination: e.Trip.Destination,
			StartDate:   e.Trip.StartDate,
			EndDate:     e.Trip.EndDate,
		},
	})
}

func (p *Publisher) Publish(ctx context.Context, e tripevents.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encodeEvent(e)
	if err != nil {
		return pkgerrors.Wrap(err, "encode trip event")
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "publish %s to %s", e.Type, p.topic)
	}
	return nil
}

func (p *Publisher) Topic() string { return p.topic }

func (p *Publisher) Close() error {
	return p.producer.Close()
}
