package persistence

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/tidwall/jsonc"

	"github.com/spec-kit/chamados/internal/domain"
)

//go:embed seed/chamados.jsonc
var baseSeed []byte

// generatedWindow bounds how far back synthetic chamados are opened.
const generatedWindow = 30 * 24 * time.Hour

// seedRecord mirrors the seed file, where ids may be numbers or strings.
type seedRecord struct {
	ID                json.Number              `json:"id"`
	Titulo            string                   `json:"titulo"`
	Status            domain.ChamadoStatus     `json:"status"`
	Prioridade        domain.ChamadoPrioridade `json:"prioridade"`
	Area              domain.ChamadoArea       `json:"area"`
	Equipamento       string                   `json:"equipamento"`
	Instalacao        string                   `json:"instalacao"`
	Abertura          time.Time                `json:"abertura"`
	UltimaAtualizacao time.Time                `json:"ultimaAtualizacao"`
	Descricao         string                   `json:"descricao"`
	Responsavel       *string                  `json:"responsavel"`
}

// GeneratorOptions makes synthetic data reproducible.
type GeneratorOptions struct {
	RandomSeed int64
	Now        time.Time
}

// LoadSeed parses the embedded base set.
func LoadSeed() ([]domain.Chamado, error) {
	return ParseSeed(baseSeed)
}

// ParseSeed decodes a JSON-with-comments array of chamados and validates every record.
func ParseSeed(data []byte) ([]domain.Chamado, error) {
	var records []seedRecord
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]domain.Chamado, 0, len(records))
	for i, rec := range records {
		c := domain.Chamado{
			ID:                rec.ID.String(),
			Titulo:            rec.Titulo,
			Status:            rec.Status,
			Prioridade:        rec.Prioridade,
			Area:              rec.Area,
			Equipamento:       rec.Equipamento,
			Instalacao:        rec.Instalacao,
			Abertura:          rec.Abertura.UTC(),
			UltimaAtualizacao: rec.UltimaAtualizacao.UTC(),
			Descricao:         rec.Descricao,
			Responsavel:       rec.Responsavel,
		}
		if err := checkRecord(c); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("seed record %d: duplicate id %s", i, c.ID)
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// GenerateChamados returns count chamados: the base set first, then synthetic
// records whose ids continue after the highest base id.
func GenerateChamados(base []domain.Chamado, count int, opts GeneratorOptions) []domain.Chamado {
	if count <= len(base) {
		return cloneAll(base[:max(count, 0)])
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	nextID := maxNumericID(base) + 1
	faker := gofakeit.New(opts.RandomSeed)

	out := cloneAll(base)
	for i := 0; i < count-len(base); i++ {
		out = append(out, randomChamado(faker, nextID+int64(i), now))
	}
	return out
}

func randomChamado(faker *gofakeit.Faker, id int64, now time.Time) domain.Chamado {
	opened := faker.DateRange(now.Add(-generatedWindow), now).Truncate(time.Millisecond)
	updated := faker.DateRange(opened, now).Truncate(time.Millisecond)
	if updated.Before(opened) {
		updated = opened
	}
	responsavel := faker.Name()

	return domain.Chamado{
		ID:                strconv.FormatInt(id, 10),
		Titulo:            strings.TrimSuffix(faker.Sentence(5), "."),
		Status:            domain.Statuses[faker.Number(0, len(domain.Statuses)-1)],
		Prioridade:        domain.Prioridades[faker.Number(0, len(domain.Prioridades)-1)],
		Area:              domain.Areas[faker.Number(0, len(domain.Areas)-1)],
		Equipamento:       fmt.Sprintf("%s %s%03d", faker.ProductName(), strings.ToUpper(faker.LetterN(2)), faker.Number(0, 999)),
		Instalacao:        fmt.Sprintf("%s, %s", faker.City(), faker.StateAbr()),
		Abertura:          opened.UTC(),
		UltimaAtualizacao: updated.UTC(),
		Descricao:         faker.Paragraph(1, 3, 12, " "),
		Responsavel:       &responsavel,
	}
}

func checkRecord(c domain.Chamado) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("missing id")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("id %s: invalid status %q", c.ID, c.Status)
	}
	if !c.Prioridade.Valid() {
		return fmt.Errorf("id %s: invalid prioridade %q", c.ID, c.Prioridade)
	}
	if !c.Area.Valid() {
		return fmt.Errorf("id %s: invalid area %q", c.ID, c.Area)
	}
	if c.UltimaAtualizacao.Before(c.Abertura) {
		return fmt.Errorf("id %s: ultimaAtualizacao before abertura", c.ID)
	}
	return nil
}

func maxNumericID(chamados []domain.Chamado) int64 {
	var highest int64
	for i := range chamados {
		if n, err := strconv.ParseInt(chamados[i].ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

func cloneAll(chamados []domain.Chamado) []domain.Chamado {
	out := make([]domain.Chamado, 0, len(chamados))
	for i := range chamados {
		out = append(out, chamados[i].Clone())
	}
	return out
}
