package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// Event routing keys published on the order queue.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderPaid          = "order.paid"

	queueName = "order_events"
)

// Publisher emits order lifecycle events to RabbitMQ. A nil Publisher is
// a valid no-op, so callers never need to check whether the broker is
// configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func Connect(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queueName, err)
	}

	log.Println("✅ Connected to RabbitMQ, queue declared:", queueName)
	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Publish sends one event; failures are logged and swallowed because the
// order flow must not depend on the broker.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil || p.channel == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Println("❌ Could not marshal event:", err)
		return
	}

	err = p.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Println("❌ Could not publish event:", err)
		return
	}
	log.Printf("📨 Event published: %s", eventType)
}
