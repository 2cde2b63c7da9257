package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

type GenerationMessage struct {
	BlogID string `json:"blog_id"`
}

type queueSpec struct {
	Name string
	Args amqp.Table
}

// Topology returns the queue declarations for a generation queue: the main
// queue dead-letters rejected deliveries to the DLQ for manual inspection.
// The orchestrator never retries a job, so there is no retry loop here.
func Topology(queue string) []queueSpec {
	dlqQ := queue + ".dlq"
	return []queueSpec{
		{Name: dlqQ},
		{Name: queue, Args: amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": dlqQ,
		}},
	}
}

// DeclareTopology declares the generation queues on the channel. Both the
// publisher and the worker go through this, so the two binaries can never
// disagree on queue arguments (RabbitMQ rejects inequivalent re-declarations).
func DeclareTopology(ch *amqp.Channel, queue string) error {
	for _, q := range Topology(queue) {
		if _, err := ch.QueueDeclare(
			q.Name,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false,
			q.Args,
		); err != nil {
			return err
		}
	}
	return nil
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := DeclareTopology(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// PublishGeneration submits one blog's generation job to the durable queue.
// The worker is the only consumer; a nacked message dead-letters to the DLQ.
func (p *Publisher) PublishGeneration(ctx context.Context, blogID string) error {
	body, err := json.Marshal(GenerationMessage{BlogID: blogID})
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
