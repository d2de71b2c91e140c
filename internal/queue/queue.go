package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Queue carries broadcast recipient ids from the API to the send worker.
type Queue interface {
	Publish(topic string, id int) error
	Subscribe(topic string, handler func(id int) error) error
}

// InMemoryQueue dispatches jobs to in-process subscribers with bounded retry.
// It backs single-process deployments and tests; production uses the AMQP
// queue in amqp.go.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(id int) error
	Log      *zap.Logger
}

func NewInMemoryQueue(log *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(id int) error),
		Log:      log,
	}
}

const maxRetries = 3

func (q *InMemoryQueue) Publish(topic string, id int) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, id)
	}
	return nil
}

func (q *InMemoryQueue) processJob(handler func(id int) error, id int) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := handler(id)
		if err == nil {
			return
		}

		q.Log.Warn("queue job failed",
			zap.Int("id", id),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)

		if attempt == maxRetries {
			q.Log.Error("queue job permanently failed", zap.Int("id", id))
			return
		}

		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(id int) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
