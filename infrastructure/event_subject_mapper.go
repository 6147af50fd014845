package infrastructure

import (
	"fmt"

	"roulette/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeRoundPlayed:
		return "roulette.rounds.played"
	case events.EventTypeBalanceChange:
		return "roulette.players.balance_changed"
	case events.EventTypePlayerCreated:
		return "roulette.players.created"
	case events.EventTypePhaseChanged:
		return "roulette.game_state.phase_changed"
	case events.EventTypeGameStateReset:
		return "roulette.game_state.reset"
	default:
		return fmt.Sprintf("roulette.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"roulette.rounds.played",
		"roulette.players.balance_changed",
		"roulette.players.created",
		"roulette.game_state.phase_changed",
		"roulette.game_state.reset",
	}
}

// PublishedEventTypes lists the event types forwarded to NATS
func (m *EventSubjectMapper) PublishedEventTypes() []events.EventType {
	return []events.EventType{
		events.EventTypeRoundPlayed,
		events.EventTypeBalanceChange,
		events.EventTypePlayerCreated,
		events.EventTypePhaseChanged,
		events.EventTypeGameStateReset,
	}
}
