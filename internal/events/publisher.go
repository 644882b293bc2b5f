// Package events публикует события жизненного цикла участника в RabbitMQ.
// Публикация — побочный эффект "в лучшем случае": отказ брокера логируется
// и никогда не проваливает исходную операцию.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/gymhub/members-api/internal/lib/sl"
)

const (
	exchangeName = "members"

	// EventMemberCreated публикуется после успешного создания участника.
	EventMemberCreated = "member.created"
	// EventMemberDeleted публикуется после удаления участника.
	EventMemberDeleted = "member.deleted"
	// EventPlanAssigned публикуется после назначения тарифного плана.
	EventPlanAssigned = "member.plan_assigned"
)

// Publisher отправляет события в direct-exchange "members".
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *slog.Logger
}

// Message — конверт события.
type Message struct {
	Event      string    `json:"event"`
	MemberID   string    `json:"member_id"`
	PlanID     string    `json:"plan_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New подключается к RabbitMQ и объявляет exchange.
func New(amqpURL string, log *slog.Logger) (*Publisher, error) {
	const op = "events.New"

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{conn: conn, ch: ch, log: log}, nil
}

// Publish отправляет событие с routing key, равным имени события.
// Ошибки логируются и не возвращаются вызывающему.
func (p *Publisher) Publish(event, memberID, planID string) {
	if p == nil {
		return
	}

	body, err := json.Marshal(Message{
		Event:      event,
		MemberID:   memberID,
		PlanID:     planID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		p.log.Warn("failed to marshal event", sl.Err(err))
		return
	}

	err = p.ch.Publish(exchangeName, event, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Warn("failed to publish event",
			slog.String("event", event), sl.Err(err))
		return
	}
	p.log.Info("event published", slog.String("event", event),
		slog.String("member_id", memberID))
}

// Close закрывает канал и соединение с брокером.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	_ = p.ch.Close()
	_ = p.conn.Close()
}
