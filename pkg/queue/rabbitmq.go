package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"rentdesk/pkg/config"
	"rentdesk/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventQueueName = "notification_events"
	EventExchange  = "domain_events"
)

// Routing keys for the events notifications are derived from.
const (
	EventPaymentRecorded      = "payment.recorded"
	EventPaymentStatusChanged = "payment.status_changed"
	EventTaxReturnSubmitted   = "tax_return.submitted"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventExchange, // name
		"topic",       // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EventQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// One queue sees every domain event; the consumer dispatches on type.
	err = channel.QueueBind(
		EventQueueName, // queue name
		"#",            // routing key
		EventExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEvent publishes a domain event under the given routing key. The
// event type is carried inside the payload so the consumer can dispatch
// without inspecting the delivery envelope.
func (c *Client) PublishEvent(eventType string, payload map[string]interface{}) error {
	event := map[string]interface{}{"type": eventType}
	for k, v := range payload {
		event[k] = v
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		EventExchange, // exchange
		eventType,     // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         eventJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish event %s: %v", eventType, err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published event %s: %s", eventType, string(eventJSON))
	return nil
}

// ConsumeEvents delivers domain events to the handler. Handler failures
// requeue the delivery; malformed payloads are dropped.
func (c *Client) ConsumeEvents(handler func(event map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		EventQueueName, // queue
		"",             // consumer
		false,          // auto-ack (we ack after processing)
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", EventQueueName)

	go func() {
		for msg := range msgs {
			var event map[string]interface{}
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal event: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed to process event: %v, event=%+v", err, event)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// GetQueueLength returns the number of messages in the event queue.
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(EventQueueName)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return queue.Messages, nil
}
