package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	Exchange = "calendar"

	EventCreated = "event.created"
	EventUpdated = "event.updated"
	EventDeleted = "event.deleted"
)

// Publisher announces event changes to other services.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data interface{}) error
}

// NopPublisher drops every message. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, data interface{}) error {
	return nil
}

type Producer struct {
	// Rabbitmq DSN
	connStr string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewProducer(connStr string) *Producer {
	return &Producer{
		connStr: connStr,
	}
}

func (p *Producer) Open() (err error) {
	// ensure a DSN is set before attempting to connect.
	if p.connStr == "" {
		return fmt.Errorf("connection string required")
	}

	if p.conn, err = amqp.Dial(p.connStr); err != nil {
		return err
	}

	if p.channel, err = p.conn.Channel(); err != nil {
		p.conn.Close()
		return err
	}

	if err = p.channel.ExchangeDeclare(Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		p.Close()
		return fmt.Errorf("cannot declare exchange %q: %w", Exchange, err)
	}

	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Producer) Publish(ctx context.Context, routingKey string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return fmt.Errorf("producer is not open")
	}

	return p.channel.Publish(
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now().UTC(),
			Body:        body,
		})
}
