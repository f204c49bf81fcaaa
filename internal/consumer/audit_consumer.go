package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/shareit/internal/events"
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// errMalformed marks a message that can never be stored, so it is dropped
// instead of requeued.
var errMalformed = errors.New("malformed booking event")

// AuditConsumer records every booking lifecycle message it receives.
type AuditConsumer struct {
	repo repository.AuditRepository
	log  *zerolog.Logger
	now  func() time.Time
}

func NewAuditConsumer(repo repository.AuditRepository, log *zerolog.Logger) *AuditConsumer {
	return &AuditConsumer{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (ac *AuditConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			ac.log.Info().Msg("context done, stopping audit consumer")
			return
		case msg, ok := <-msgs:
			if !ok {
				ac.log.Info().Msg("delivery channel closed, stopping audit consumer")
				return
			}
			ac.handleMessage(ctx, msg)
		}
	}
}

func (ac *AuditConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	event, err := ac.process(ctx, msg.RoutingKey, msg.Body)
	switch {
	case errors.Is(err, errMalformed):
		ac.log.Warn().Err(err).Str("routing_key", msg.RoutingKey).Msg("dropping message")
		ackErr(ac.log, msg.Nack(false, false))
	case err != nil:
		ac.log.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("store audit event, requeueing")
		ackErr(ac.log, msg.Nack(false, true))
	default:
		ac.log.Info().
			Uint("booking_id", event.BookingID).
			Str("event_type", string(event.EventType)).
			Msg("audit event stored")
		ackErr(ac.log, msg.Ack(false))
	}
}

// process decodes body and stores it as an audit row. The routing key names
// the event type; a message without one falls back to its status.
func (ac *AuditConsumer) process(ctx context.Context, routingKey string, body []byte) (*models.AuditEvent, error) {
	var ev events.BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if ev.BookingID == 0 {
		return nil, fmt.Errorf("%w: missing booking id", errMalformed)
	}

	if routingKey == "" {
		routingKey = events.RoutingKeyFor(ev.Status)
	}
	eventType := models.AuditEventType(routingKey)
	switch eventType {
	case models.AuditBookingCreated, models.AuditBookingApproved, models.AuditBookingRejected:
	default:
		return nil, fmt.Errorf("%w: unknown routing key %q", errMalformed, routingKey)
	}

	row := &models.AuditEvent{
		EventType:  eventType,
		BookingID:  ev.BookingID,
		ItemID:     ev.ItemID,
		ActorID:    ev.ActorID,
		Payload:    datatypes.JSON(body),
		ReceivedAt: ac.now(),
	}
	if err := ac.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func ackErr(log *zerolog.Logger, err error) {
	if err != nil {
		log.Error().Err(err).Msg("acknowledge delivery")
	}
}
