package queue

import (
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// job is the wire payload on the broadcast queue.
type job struct {
	RecipientID int `json:"broadcast_recipient_id"`
}

// AmqpQueue is the RabbitMQ-backed queue used when the API and the send
// worker run as separate processes.
type AmqpQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	Log  *zap.Logger
}

// DialAmqp connects with exponential backoff so the broker may come up after
// the service.
func DialAmqp(url string, log *zap.Logger) (*AmqpQueue, error) {
	var conn *amqp.Connection

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(func() error {
		var dialErr error
		conn, dialErr = amqp.Dial(url)
		return dialErr
	}, b)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &AmqpQueue{conn: conn, ch: ch, Log: log}, nil
}

func (q *AmqpQueue) Close() {
	q.ch.Close()
	q.conn.Close()
}

func (q *AmqpQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func (q *AmqpQueue) Publish(topic string, id int) error {
	declared, err := q.declare(topic)
	if err != nil {
		return err
	}

	body, err := json.Marshal(job{RecipientID: id})
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		declared.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Subscribe consumes the topic until the channel closes. Failed jobs are
// requeued up to maxRetries times via the x-retry-count header, then acked
// away; the database row keeps the failure for operators.
func (q *AmqpQueue) Subscribe(topic string, handler func(id int) error) error {
	declared, err := q.declare(topic)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(
		declared.Name,
		"",
		false, // autoAck off for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var j job
			if err := json.Unmarshal(d.Body, &j); err != nil {
				q.Log.Warn("invalid queue payload", zap.Error(err))
				d.Ack(false)
				continue
			}

			if err := handler(j.RecipientID); err != nil {
				q.Log.Warn("queue job failed",
					zap.Int("recipient_id", j.RecipientID),
					zap.Error(err),
				)

				var retryCount int32
				if v, ok := d.Headers["x-retry-count"].(int32); ok {
					retryCount = v
				}
				if retryCount < maxRetries {
					// Republish with the bumped header instead of Nack, which
					// would requeue without counting the attempt.
					q.ch.Publish("", declared.Name, false, false, amqp.Publishing{
						ContentType:  "application/json",
						DeliveryMode: amqp.Persistent,
						Headers:      amqp.Table{"x-retry-count": retryCount + 1},
						Body:         d.Body,
					})
				}
			}

			d.Ack(false)
		}
	}()

	return nil
}

var _ Queue = (*AmqpQueue)(nil)
