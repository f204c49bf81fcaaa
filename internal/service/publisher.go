package service

import (
	"github.com/rs/zerolog"
)

// EventPublisher sends a JSON payload under a routing key.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publish is fire-and-forget: the change is already committed, so a broker
// failure is logged and never returned to the caller.
func publish(pub EventPublisher, log *zerolog.Logger, routingKey string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(routingKey, payload); err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("publish event")
	}
}
