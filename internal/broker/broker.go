// Package broker implements interfaces.Broker over a shared AMQP 0-9-1
// connection, the at-least-once delivery transport for the queued hand-offs
// (filings -> embeddings -> extraction, and telemetry scheduler -> scraper ->
// sink). Catalog and filings meet through the database, and scoring runs
// in-process inside the extraction worker.
package broker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
)

// Broker owns one AMQP connection and channel, declaring durable queues
// lazily on first use so producer and consumer processes can start in
// either order.
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     arbor.ILogger
}

// Connect dials url and opens a single channel. Queues are declared durable
// with no TTL; messages survive a broker restart and are only removed once
// acked by a consumer.
func Connect(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, common.Wrap(common.Transient, "broker: dial", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, common.Wrap(common.Transient, "broker: open channel", err)
	}
	return &Broker{conn: conn, channel: ch, log: common.GetLogger()}, nil
}

func (b *Broker) declare(queue string) error {
	_, err := b.channel.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

// Publish declares queue if needed and publishes body as a persistent
// message.
func (b *Broker) Publish(ctx context.Context, queue string, body []byte) error {
	if err := b.declare(queue); err != nil {
		return common.Wrap(common.Transient, fmt.Sprintf("broker: declare %s", queue), err)
	}
	err := b.channel.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return common.Wrap(common.Transient, fmt.Sprintf("broker: publish %s", queue), err)
	}
	return nil
}

// Consume runs handle once per delivery with prefetch controlling how many
// unacked deliveries the broker will hand this consumer at once. A nil
// return from handle acks the delivery; any error, transient or not, nacks
// it without requeue (spec.md's dead-letter-by-nack policy), since handlers
// run their own retries before giving up. Consume blocks until ctx is cancelled or the channel closes.
func (b *Broker) Consume(ctx context.Context, queue string, prefetch int, handle func(ctx context.Context, body []byte) error) error {
	if err := b.declare(queue); err != nil {
		return common.Wrap(common.Transient, fmt.Sprintf("broker: declare %s", queue), err)
	}
	if err := b.channel.Qos(prefetch, 0, false); err != nil {
		return common.Wrap(common.Transient, "broker: qos", err)
	}
	deliveries, err := b.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return common.Wrap(common.Transient, fmt.Sprintf("broker: consume %s", queue), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return common.Wrap(common.Transient, fmt.Sprintf("broker: %s channel closed", queue), fmt.Errorf("delivery channel closed"))
			}
			err := handle(ctx, d.Body)
			if err == nil {
				if ackErr := d.Ack(false); ackErr != nil {
					b.log.Warn().Err(ackErr).Msg("broker: ack failed")
				}
				continue
			}
			b.log.Warn().Err(err).Str("queue", queue).Msg("broker: handler failed")
			if nackErr := d.Nack(false, false); nackErr != nil {
				b.log.Warn().Err(nackErr).Msg("broker: nack failed")
			}
		}
	}
}

// Close tears down the channel and connection.
func (b *Broker) Close() error {
	if err := b.channel.Close(); err != nil {
		return err
	}
	return b.conn.Close()
}
