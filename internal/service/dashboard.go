package service

import (
	"fmt"
	"time"

	"github.com/spec-kit/chamados/internal/domain"
)

// StatusCount is the number of chamados in one status.
type StatusCount struct {
	Status domain.ChamadoStatus `json:"status"`
	Count  int                  `json:"count"`
}

// AreaCount is the number of chamados in one area.
type AreaCount struct {
	Area  domain.ChamadoArea `json:"area"`
	Count int                `json:"count"`
}

// PrioridadeCount is the number of chamados with one priority.
type PrioridadeCount struct {
	Prioridade domain.ChamadoPrioridade `json:"prioridade"`
	Count      int                      `json:"count"`
}

// Dashboard is the manager overview of the store.
type Dashboard struct {
	Total               int               `json:"total"`
	ByStatus            []StatusCount     `json:"byStatus"`
	ByArea              []AreaCount       `json:"byArea"`
	ByPrioridade        []PrioridadeCount `json:"byPrioridade"`
	OpenCount           int               `json:"openCount"`
	AverageOpenTime     time.Duration     `json:"-"`
	AverageOpenTimeMs   int64             `json:"averageOpenTimeMs"`
	AverageOpenTimeText string            `json:"averageOpenTime"`
	GeneratedAt         time.Time         `json:"generatedAt"`
}

// BuildDashboard counts chamados per status, area and priority, and averages
// how long the still-open ones (Aberto and Em andamento) have been open.
// Every enumeration value is listed, with zero when unused.
func BuildDashboard(chamados []domain.Chamado, now time.Time) Dashboard {
	byStatus := make(map[domain.ChamadoStatus]int, len(domain.Statuses))
	byArea := make(map[domain.ChamadoArea]int, len(domain.Areas))
	byPrioridade := make(map[domain.ChamadoPrioridade]int, len(domain.Prioridades))

	var openTotal time.Duration
	open := 0
	for i := range chamados {
		c := &chamados[i]
		byStatus[c.Status]++
		byArea[c.Area]++
		byPrioridade[c.Prioridade]++
		if c.Status == domain.StatusOpen || c.Status == domain.StatusInProgress {
			open++
			openTotal += now.Sub(c.Abertura)
		}
	}

	var average time.Duration
	if open > 0 {
		average = openTotal / time.Duration(open)
	}
	if average < 0 {
		average = 0
	}

	d := Dashboard{
		Total:               len(chamados),
		OpenCount:           open,
		AverageOpenTime:     average,
		AverageOpenTimeMs:   average.Milliseconds(),
		AverageOpenTimeText: FormatDuration(average),
		GeneratedAt:         now.UTC(),
	}
	for _, st := range domain.Statuses {
		d.ByStatus = append(d.ByStatus, StatusCount{Status: st, Count: byStatus[st]})
	}
	for _, a := range domain.Areas {
		d.ByArea = append(d.ByArea, AreaCount{Area: a, Count: byArea[a]})
	}
	for _, p := range domain.Prioridades {
		d.ByPrioridade = append(d.ByPrioridade, PrioridadeCount{Prioridade: p, Count: byPrioridade[p]})
	}
	return d
}

// StatusTotal returns the count for one status.
func (d Dashboard) StatusTotal(status domain.ChamadoStatus) int {
	for _, sc := range d.ByStatus {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}

// FormatDuration renders whole days and remaining hours, e.g. "3d 4h".
// Negative durations render as "0d 0h".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := d / (24 * time.Hour)
	hours := (d % (24 * time.Hour)) / time.Hour
	return fmt.Sprintf("%dd %dh", days, hours)
}
