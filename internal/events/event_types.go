package events

import (
	"time"

	"github.com/spec-kit/chamados/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventChamadoCreated EventType = "chamado_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ChamadoID string      `json:"chamado_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ChamadoCreatedPayload payload.
type ChamadoCreatedPayload struct {
	Titulo      string                   `json:"titulo"`
	Status      domain.ChamadoStatus     `json:"status"`
	Prioridade  domain.ChamadoPrioridade `json:"prioridade"`
	Area        domain.ChamadoArea       `json:"area"`
	Instalacao  string                   `json:"instalacao"`
	Responsavel *string                  `json:"responsavel,omitempty"`
}
