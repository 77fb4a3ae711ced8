package domain

import "time"

// ChamadoStatus enumerates lifecycle states for chamados.
type ChamadoStatus string

const (
	StatusOpen       ChamadoStatus = "Aberto"
	StatusInProgress ChamadoStatus = "Em andamento"
	StatusResolved   ChamadoStatus = "Resolvido"
	StatusCancelled  ChamadoStatus = "Cancelado"
)

// ChamadoPrioridade enumerates urgency levels.
type ChamadoPrioridade string

const (
	PrioridadeCritical ChamadoPrioridade = "Crítica"
	PrioridadeHigh     ChamadoPrioridade = "Alta"
	PrioridadeMedium   ChamadoPrioridade = "Média"
	PrioridadeLow      ChamadoPrioridade = "Baixa"
)

// ChamadoArea enumerates the maintenance areas a chamado belongs to.
type ChamadoArea string

const (
	AreaRefrigeration   ChamadoArea = "Refrigeração"
	AreaEnergy          ChamadoArea = "Energia"
	AreaAirConditioning ChamadoArea = "Ar-condicionado"
	AreaWater           ChamadoArea = "Água"
)

// Statuses lists every status in display order.
var Statuses = []ChamadoStatus{StatusOpen, StatusInProgress, StatusResolved, StatusCancelled}

// Prioridades lists every priority from most to least urgent.
var Prioridades = []ChamadoPrioridade{PrioridadeCritical, PrioridadeHigh, PrioridadeMedium, PrioridadeLow}

// Areas lists every area in display order.
var Areas = []ChamadoArea{AreaRefrigeration, AreaEnergy, AreaAirConditioning, AreaWater}

// Chamado is a single support/maintenance request.
type Chamado struct {
	ID                string            `json:"id"`
	Titulo            string            `json:"titulo"`
	Status            ChamadoStatus     `json:"status"`
	Prioridade        ChamadoPrioridade `json:"prioridade"`
	Area              ChamadoArea       `json:"area"`
	Equipamento       string            `json:"equipamento"`
	Instalacao        string            `json:"instalacao"`
	Abertura          time.Time         `json:"abertura"`
	UltimaAtualizacao time.Time         `json:"ultimaAtualizacao"`
	Descricao         string            `json:"descricao"`
	Responsavel       *string           `json:"responsavel,omitempty"`
}

// Clone returns a copy that shares no pointers with c.
func (c Chamado) Clone() Chamado {
	if c.Responsavel != nil {
		name := *c.Responsavel
		c.Responsavel = &name
	}
	return c
}

// Valid reports whether s is a known status.
func (s ChamadoStatus) Valid() bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known priority.
func (p ChamadoPrioridade) Valid() bool {
	for _, candidate := range Prioridades {
		if candidate == p {
			return true
		}
	}
	return false
}

// Valid reports whether a is a known area.
func (a ChamadoArea) Valid() bool {
	for _, candidate := range Areas {
		if candidate == a {
			return true
		}
	}
	return false
}
