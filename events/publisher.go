// SPDX-License-Identifier: GPL-3.0-only

// Package events publishes waitlist activity to an AMQP topic exchange so
// downstream consumers (analytics, live tickers) can follow signups and
// referrals. Publishing is fire-and-forget: a broker outage never affects
// the request that triggered the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"waitline-server/commons"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TypeSignup   = "signup"
	TypeReferral = "referral"
)

type Activity struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ReferralCode string    `json:"referral_code"`
	At           time.Time `json:"at"`
}

type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to the broker named by EVENTS_AMQP_URL. When the
// variable is unset the feature is off and a nil publisher is returned;
// all Publisher methods are nil-safe.
func NewPublisher() (*Publisher, error) {
	amqpURL := commons.GetEnv("EVENTS_AMQP_URL")
	if amqpURL == "" {
		commons.Logger.Debug("EVENTS_AMQP_URL not set, activity events disabled")
		return nil, nil
	}

	exchange := commons.GetEnv("EVENTS_EXCHANGE", "waitline.activity")

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}

	commons.Logger.Infof("Activity events enabled, exchange: %s", exchange)
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish emits one activity event with routing key waitline.<type>.
// Failures are logged and swallowed.
func (p *Publisher) Publish(eventType, referralCode string) {
	if p == nil {
		return
	}

	activity := Activity{
		ID:           uuid.NewString(),
		Type:         eventType,
		ReferralCode: referralCode,
		At:           time.Now().UTC(),
	}

	body, err := json.Marshal(activity)
	if err != nil {
		commons.Logger.Errorf("Failed to marshal activity event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		"waitline."+eventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    activity.ID,
			Timestamp:    activity.At,
			Body:         body,
		},
	)
	if err != nil {
		commons.Logger.Errorf("Failed to publish %s event: %v", eventType, err)
		return
	}

	commons.Logger.Debugf("Published %s event %s", eventType, activity.ID)
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
