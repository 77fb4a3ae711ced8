// Package query implements the read pipeline over chamados: text search,
// set filters, sorting and pagination.
package query

import (
	"fmt"
	"strings"

	"github.com/spec-kit/chamados/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortField names a chamado attribute that results can be ordered by.
type SortField string

const (
	SortByID                SortField = "id"
	SortByTitulo            SortField = "titulo"
	SortByStatus            SortField = "status"
	SortByPrioridade        SortField = "prioridade"
	SortByArea              SortField = "area"
	SortByEquipamento       SortField = "equipamento"
	SortByInstalacao        SortField = "instalacao"
	SortByAbertura          SortField = "abertura"
	SortByUltimaAtualizacao SortField = "ultimaAtualizacao"
	SortByDescricao         SortField = "descricao"
	SortByResponsavel       SortField = "responsavel"
)

var sortFields = []SortField{
	SortByID, SortByTitulo, SortByStatus, SortByPrioridade, SortByArea, SortByEquipamento,
	SortByInstalacao, SortByAbertura, SortByUltimaAtualizacao, SortByDescricao, SortByResponsavel,
}

// Spec describes one read request. Zero values mean "not set".
type Spec struct {
	Query      string
	Status     []domain.ChamadoStatus
	Prioridade []domain.ChamadoPrioridade
	Area       []domain.ChamadoArea
	SortBy     SortField
	SortOrder  SortOrder
	Page       int
	PageSize   int
}

// Result is a page of chamados plus the number of records that matched the filters.
type Result struct {
	Data  []domain.Chamado `json:"data"`
	Total int              `json:"total"`
}

// ParseSortField accepts the empty string (no sorting) or a known field name.
func ParseSortField(raw string) (SortField, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, field := range sortFields {
		if string(field) == raw {
			return field, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", raw)
}

// ParseSortOrder accepts "", "asc" or "desc" in any case.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", raw)
	}
}

// Normalized returns a copy of s with pagination and ordering defaults applied.
func (s Spec) Normalized() Spec {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	s.SortBy = SortField(strings.TrimSpace(string(s.SortBy)))
	s.SortOrder = SortOrder(strings.ToLower(strings.TrimSpace(string(s.SortOrder))))
	if s.SortBy != "" && s.SortOrder == "" {
		s.SortOrder = Asc
	}
	s.Query = strings.TrimSpace(s.Query)
	return s
}
