// Package kafka provides the Kafka-backed implementation of the tracking
// publisher port. Events are JSON-encoded and keyed so all notifications for
// one order or container land on the same partition, preserving their order.
package kafka

import (
	"context"
	"encoding/json"

	"freight/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// TrackingPublisher publishes tracking notifications to two topics: one for
// order changes and one for hire expiries.
type TrackingPublisher struct {
	orderWriter     *kafka.Writer
	containerWriter *kafka.Writer
}

// NewTrackingPublisher creates a publisher for the given broker and topics.
func NewTrackingPublisher(brokers []string, orderTopic, containerTopic string) *TrackingPublisher {
	return &TrackingPublisher{
		orderWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    orderTopic,
			Balancer: &kafka.Hash{},
		},
		containerWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    containerTopic,
			Balancer: &kafka.Hash{},
		},
	}
}

// PublishOrderChanged emits one order tracking notification, keyed by
// booking reference.
func (p *TrackingPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.orderWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BookingRef),
		Value: payload,
	})
}

// PublishContainerReturnDue emits one hire-expiry notification, keyed by
// container number.
func (p *TrackingPublisher) PublishContainerReturnDue(
	ctx context.Context,
	event ports.ContainerReturnDueEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.containerWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ContainerNumber),
		Value: payload,
	})
}

// Close releases both underlying writers.
func (p *TrackingPublisher) Close() error {
	if err := p.orderWriter.Close(); err != nil {
		_ = p.containerWriter.Close()
		return err
	}
	return p.containerWriter.Close()
}
