package dto

import (
	"github.com/spec-kit/chamados/internal/domain"
)

// CreateChamadoRequest payload.
type CreateChamadoRequest struct {
	Titulo      string                   `json:"titulo"`
	Status      domain.ChamadoStatus     `json:"status"`
	Prioridade  domain.ChamadoPrioridade `json:"prioridade"`
	Area        domain.ChamadoArea       `json:"area"`
	Equipamento string                   `json:"equipamento"`
	Instalacao  string                   `json:"instalacao"`
	Descricao   string                   `json:"descricao"`
	Responsavel *string                  `json:"responsavel"`
}

// ChamadoListResponse is a page of search results.
type ChamadoListResponse struct {
	Data     []domain.Chamado `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
