package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/spec-kit/chamados/internal/domain"
)

// Apply runs spec against chamados and returns the requested page.
// Stages run in a fixed order: text search, set filters, sort, count, slice.
// The input slice is never modified.
func Apply(chamados []domain.Chamado, spec Spec) Result {
	spec = spec.Normalized()

	filtered := make([]domain.Chamado, 0, len(chamados))
	needle := strings.ToLower(spec.Query)
	for i := range chamados {
		if Matches(&chamados[i], spec, needle) {
			filtered = append(filtered, chamados[i])
		}
	}

	if spec.SortBy != "" {
		sortChamados(filtered, spec.SortBy, spec.SortOrder)
	}

	total := len(filtered)
	if spec.Page-1 >= pageCount(total, spec.PageSize) {
		return Result{Data: []domain.Chamado{}, Total: total}
	}
	// Page is within range here, so start < total and cannot overflow.
	start := (spec.Page - 1) * spec.PageSize
	end := total
	if spec.PageSize < total-start {
		end = start + spec.PageSize
	}
	return Result{Data: filtered[start:end], Total: total}
}

// pageCount is the number of non-empty pages of size pageSize over total records.
func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Matches reports whether c passes the text search and every non-empty set filter.
// needle must already be lower-cased; an empty needle matches everything.
func Matches(c *domain.Chamado, spec Spec, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(c.Titulo), needle) &&
		!strings.Contains(strings.ToLower(c.Descricao), needle) &&
		!strings.Contains(strings.ToLower(c.Equipamento), needle) {
		return false
	}
	if len(spec.Status) > 0 && !slices.Contains(spec.Status, c.Status) {
		return false
	}
	if len(spec.Prioridade) > 0 && !slices.Contains(spec.Prioridade, c.Prioridade) {
		return false
	}
	if len(spec.Area) > 0 && !slices.Contains(spec.Area, c.Area) {
		return false
	}
	return true
}

// sortChamados orders items in place. Records without a value for field go
// last in both directions; ties keep their incoming order.
func sortChamados(items []domain.Chamado, field SortField, order SortOrder) {
	slices.SortStableFunc(items, func(a, b domain.Chamado) int {
		aOK, bOK := present(&a, field), present(&b, field)
		switch {
		case !aOK && !bOK:
			return 0
		case !aOK:
			return 1
		case !bOK:
			return -1
		}
		c := compareField(&a, &b, field)
		if order == Desc {
			return -c
		}
		return c
	})
}

func present(c *domain.Chamado, field SortField) bool {
	if field == SortByResponsavel {
		return c.Responsavel != nil
	}
	return true
}

func compareField(a, b *domain.Chamado, field SortField) int {
	switch field {
	case SortByID:
		return compareIDs(a.ID, b.ID)
	case SortByTitulo:
		return strings.Compare(a.Titulo, b.Titulo)
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case SortByPrioridade:
		return strings.Compare(string(a.Prioridade), string(b.Prioridade))
	case SortByArea:
		return strings.Compare(string(a.Area), string(b.Area))
	case SortByEquipamento:
		return strings.Compare(a.Equipamento, b.Equipamento)
	case SortByInstalacao:
		return strings.Compare(a.Instalacao, b.Instalacao)
	case SortByAbertura:
		return a.Abertura.Compare(b.Abertura)
	case SortByUltimaAtualizacao:
		return a.UltimaAtualizacao.Compare(b.UltimaAtualizacao)
	case SortByDescricao:
		return strings.Compare(a.Descricao, b.Descricao)
	case SortByResponsavel:
		return strings.Compare(*a.Responsavel, *b.Responsavel)
	default:
		return 0
	}
}

// compareIDs orders numeric ids by value so "999" sorts before "1000".
// Non-numeric ids fall back to string order after all numeric ones.
func compareIDs(a, b string) int {
	an, aErr := strconv.ParseInt(a, 10, 64)
	bn, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
