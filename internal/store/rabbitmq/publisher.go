package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
)

// TicketEvent is the message published for each escalation ticket so a human
// can pick it up out of band.
type TicketEvent struct {
	TicketID    string    `json:"ticket_id"`
	SessionID   string    `json:"session_id"`
	Topic       string    `json:"topic"`
	Priority    string    `json:"priority"`
	PatientName string    `json:"patient_name"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
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

	if err := declareQueues(ch, queue); err != nil {
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

// NotifyTicket publishes the escalation event. Satisfies frontdesk.Notifier.
func (p *Publisher) NotifyTicket(ctx context.Context, sessionID string, t frontdesk.Ticket) error {
	body, err := json.Marshal(TicketEvent{
		TicketID:    t.ID,
		SessionID:   sessionID,
		Topic:       t.Topic,
		Priority:    string(t.Priority),
		PatientName: t.PatientName,
		Phone:       t.Phone,
		CreatedAt:   t.CreatedAt,
	})
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
