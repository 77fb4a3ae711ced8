package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/chamados/internal/domain"
	"github.com/spec-kit/chamados/internal/service"
)

const titleWidth = 40

// render writes v as JSON or YAML, or calls table for the human format.
func render(w io.Writer, format string, v any, table func(p *printer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// Round-trip through JSON so YAML keys match the API field names.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		p := &printer{w: w}
		table(p)
		return p.err
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) success(format string, args ...any) {
	p.printf("%s %s\n", color.New(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}

func (p *printer) chamadoTable(chamados []domain.Chamado) {
	if len(chamados) == 0 {
		p.printf("%s\n", color.New(color.Faint).Sprint("Nenhum chamado encontrado"))
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	fmt.Fprintln(tw, bold.Sprint("ID")+"\t"+bold.Sprint("TÍTULO")+"\t"+bold.Sprint("STATUS")+"\t"+
		bold.Sprint("PRIORIDADE")+"\t"+bold.Sprint("ÁREA")+"\t"+bold.Sprint("INSTALAÇÃO")+"\t"+
		bold.Sprint("ABERTURA")+"\t"+bold.Sprint("RESPONSÁVEL"))
	for i := range chamados {
		c := &chamados[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			truncate(c.Titulo, titleWidth),
			statusColor(c.Status).Sprint(c.Status),
			prioridadeColor(c.Prioridade).Sprint(c.Prioridade),
			c.Area,
			c.Instalacao,
			c.Abertura.Local().Format("02/01/2006 15:04"),
			responsavel(c.Responsavel))
	}
	if err := tw.Flush(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *printer) pageFooter(total, page, pageSize, shown int) {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	p.printf("\n%s\n", color.New(color.Faint).Sprintf("Página %d de %d · %d de %d chamados", page, pages, shown, total))
}

func (p *printer) chamadoDetail(c *domain.Chamado) {
	dim := color.New(color.Faint)
	p.printf("%s %s\n", color.New(color.Bold).Sprintf("#%s", c.ID), c.Titulo)
	p.printf("──────────────────────────────\n")
	p.printf("%s      %s\n", dim.Sprint("Status:"), statusColor(c.Status).Sprint(c.Status))
	p.printf("%s  %s\n", dim.Sprint("Prioridade:"), prioridadeColor(c.Prioridade).Sprint(c.Prioridade))
	p.printf("%s        %s\n", dim.Sprint("Área:"), c.Area)
	p.printf("%s %s\n", dim.Sprint("Equipamento:"), c.Equipamento)
	p.printf("%s  %s\n", dim.Sprint("Instalação:"), c.Instalacao)
	p.printf("%s    %s\n", dim.Sprint("Abertura:"), formatTime(c.Abertura))
	p.printf("%s  %s\n", dim.Sprint("Atualizado:"), formatTime(c.UltimaAtualizacao))
	p.printf("%s %s\n", dim.Sprint("Responsável:"), responsavel(c.Responsavel))
	p.printf("\n%s\n", c.Descricao)
}

func (p *printer) dashboard(d *service.Dashboard) {
	bold := color.New(color.Bold)
	p.printf("%s %d chamados\n", bold.Sprint("Total:"), d.Total)
	p.printf("%s %s (%d em aberto)\n", bold.Sprint("Tempo médio em aberto:"), d.AverageOpenTimeText, d.OpenCount)
	p.printf("%s %d resolvidos, %d cancelados\n\n", bold.Sprint("Encerrados:"),
		d.StatusTotal(domain.StatusResolved), d.StatusTotal(domain.StatusCancelled))

	p.printf("%s\n", bold.Sprint("Por status"))
	for _, sc := range d.ByStatus {
		p.bar(statusColor(sc.Status).Sprint(padRight(string(sc.Status), 14)), sc.Count, d.Total)
	}
	p.printf("\n%s\n", bold.Sprint("Por prioridade"))
	for _, pc := range d.ByPrioridade {
		p.bar(prioridadeColor(pc.Prioridade).Sprint(padRight(string(pc.Prioridade), 14)), pc.Count, d.Total)
	}
	p.printf("\n%s\n", bold.Sprint("Por área"))
	for _, ac := range d.ByArea {
		p.bar(padRight(string(ac.Area), 14), ac.Count, d.Total)
	}
}

func (p *printer) bar(label string, count, total int) {
	const width = 30
	filled := 0
	if total > 0 {
		filled = count * width / total
	}
	p.printf("  %s %s %d\n", label, color.New(color.FgCyan).Sprint(strings.Repeat("█", filled)), count)
}

func statusColor(s domain.ChamadoStatus) *color.Color {
	switch s {
	case domain.StatusOpen:
		return color.New(color.FgYellow)
	case domain.StatusInProgress:
		return color.New(color.FgCyan)
	case domain.StatusResolved:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

func prioridadeColor(p domain.ChamadoPrioridade) *color.Color {
	switch p {
	case domain.PrioridadeCritical:
		return color.New(color.FgRed, color.Bold)
	case domain.PrioridadeHigh:
		return color.New(color.FgRed)
	case domain.PrioridadeMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func responsavel(name *string) string {
	if name == nil {
		return "-"
	}
	return *name
}

func formatTime(t time.Time) string {
	return t.Local().Format("Mon, 02 Jan 2006 15:04")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
