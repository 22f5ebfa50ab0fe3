package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"BankReserves/internal/model"
)

// AMQPConfig describes the RabbitMQ queue tick reports are published to.
type AMQPConfig struct {
	URL     string
	Queue   string
	Durable bool
	Timeout time.Duration
}

// AMQPRecorder publishes run and tick reports as JSON messages.
type AMQPRecorder struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

// NewAMQPRecorder dials the broker and declares the queue.
func NewAMQPRecorder(cfg AMQPConfig) (*AMQPRecorder, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	queue := cfg.Queue
	if queue == "" {
		queue = "bankreserves.ticks"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, cfg.Durable, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare rabbitmq queue: %w", err)
	}
	return &AMQPRecorder{conn: conn, ch: ch, queue: queue, timeout: timeout}, nil
}

func (r *AMQPRecorder) publish(kind string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        kind,
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", kind, err)
	}
	return nil
}

func (r *AMQPRecorder) RecordRun(evt *RunEvent) error { return r.publish("run", evt) }

func (r *AMQPRecorder) RecordTick(rep *model.TickReport) error { return r.publish("tick", rep) }

func (r *AMQPRecorder) RecordAgents(reps []model.AgentReport) error {
	if len(reps) == 0 {
		return nil
	}
	return r.publish("agents", reps)
}

func (r *AMQPRecorder) Close() error {
	if r == nil || r.conn == nil {
		return nil
	}
	r.ch.Close()
	return r.conn.Close()
}
