package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/chamados/internal/cache"
	"github.com/spec-kit/chamados/internal/domain"
	"github.com/spec-kit/chamados/internal/events"
	"github.com/spec-kit/chamados/internal/query"
	"github.com/spec-kit/chamados/internal/repository"
	apperrors "github.com/spec-kit/chamados/pkg/util/errorutil"
)

// Minimum lengths accepted on create, counted in runes.
const (
	minTituloLen      = 5
	minEquipamentoLen = 3
	minInstalacaoLen  = 3
	minDescricaoLen   = 10
)

// ChamadoService coordinates chamado workflows.
type ChamadoService struct {
	chamados   repository.ChamadoRepository
	cache      cache.SearchCache
	latency    Latency
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ChamadoDependencies bundles collaborators for the chamado service.
// Only ChamadoRepo is required.
type ChamadoDependencies struct {
	ChamadoRepo repository.ChamadoRepository
	Cache       cache.SearchCache
	Latency     Latency
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Clock       func() time.Time
}

// CreateInput describes the payload of a new chamado.
type CreateInput struct {
	Titulo      string
	Status      domain.ChamadoStatus
	Prioridade  domain.ChamadoPrioridade
	Area        domain.ChamadoArea
	Equipamento string
	Instalacao  string
	Descricao   string
	Responsavel *string
}

// NewChamadoService constructs the service.
func NewChamadoService(deps ChamadoDependencies) *ChamadoService {
	s := &ChamadoService{
		chamados:   deps.ChamadoRepo,
		cache:      deps.Cache,
		latency:    deps.Latency,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if s.cache == nil {
		s.cache = cache.NewNoopSearchCache()
	}
	if s.latency == nil {
		s.latency = NoLatency{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Search answers a read query against the current store contents.
func (s *ChamadoService) Search(ctx context.Context, spec query.Spec) (query.Result, error) {
	if err := validateSpec(spec); err != nil {
		return query.Result{}, err
	}
	if err := s.latency.Wait(ctx); err != nil {
		return query.Result{}, err
	}
	spec = spec.Normalized()

	lookup, err := s.cache.Get(ctx, spec)
	if err != nil {
		s.logger.Warn("search cache lookup failed", zap.Error(err))
	} else if lookup.Hit {
		return lookup.Result, nil
	}

	all, err := s.chamados.Snapshot(ctx)
	if err != nil {
		return query.Result{}, err
	}
	result := query.Apply(all, spec)

	if err := s.cache.Set(ctx, lookup, result); err != nil {
		s.logger.Warn("search cache store failed", zap.Error(err))
	}
	return result, nil
}

// Create validates input, allocates the next id and prepends the chamado.
func (s *ChamadoService) Create(ctx context.Context, input CreateInput) (*domain.Chamado, error) {
	input = normalizeCreateInput(input)
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	chamado := &domain.Chamado{
		Titulo:            input.Titulo,
		Status:            input.Status,
		Prioridade:        input.Prioridade,
		Area:              input.Area,
		Equipamento:       input.Equipamento,
		Instalacao:        input.Instalacao,
		Descricao:         input.Descricao,
		Responsavel:       input.Responsavel,
		Abertura:          now,
		UltimaAtualizacao: now,
	}
	if err := s.chamados.Create(ctx, chamado); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventChamadoCreated,
		ChamadoID: chamado.ID,
		Payload: events.ChamadoCreatedPayload{
			Titulo:      chamado.Titulo,
			Status:      chamado.Status,
			Prioridade:  chamado.Prioridade,
			Area:        chamado.Area,
			Instalacao:  chamado.Instalacao,
			Responsavel: chamado.Responsavel,
		},
	})
	return chamado, nil
}

// Get returns a single chamado.
func (s *ChamadoService) Get(ctx context.Context, id string) (*domain.Chamado, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.chamados.GetByID(ctx, strings.TrimSpace(id))
}

// Dashboard aggregates the whole store for the manager view.
func (s *ChamadoService) Dashboard(ctx context.Context) (Dashboard, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return Dashboard{}, err
	}
	all, err := s.chamados.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(all, s.now()), nil
}

func (s *ChamadoService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("chamado_id", event.ChamadoID),
			zap.Error(err))
	}
}

func normalizeCreateInput(input CreateInput) CreateInput {
	input.Titulo = strings.TrimSpace(input.Titulo)
	input.Equipamento = strings.TrimSpace(input.Equipamento)
	input.Instalacao = strings.TrimSpace(input.Instalacao)
	input.Descricao = strings.TrimSpace(input.Descricao)
	if input.Status == "" {
		input.Status = domain.StatusOpen
	}
	if input.Responsavel != nil {
		name := strings.TrimSpace(*input.Responsavel)
		if name == "" {
			input.Responsavel = nil
		} else {
			input.Responsavel = &name
		}
	}
	return input
}

func validateCreateInput(input CreateInput) error {
	details := map[string]any{}
	checkMinLen(details, "titulo", input.Titulo, minTituloLen)
	checkMinLen(details, "equipamento", input.Equipamento, minEquipamentoLen)
	checkMinLen(details, "instalacao", input.Instalacao, minInstalacaoLen)
	checkMinLen(details, "descricao", input.Descricao, minDescricaoLen)
	if !input.Status.Valid() {
		details["status"] = fmt.Sprintf("unknown status %q", input.Status)
	}
	if !input.Prioridade.Valid() {
		details["prioridade"] = fmt.Sprintf("unknown prioridade %q", input.Prioridade)
	}
	if !input.Area.Valid() {
		details["area"] = fmt.Sprintf("unknown area %q", input.Area)
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid chamado", details)
	}
	return nil
}

func validateSpec(spec query.Spec) error {
	details := map[string]any{}
	for _, st := range spec.Status {
		if !st.Valid() {
			details["status"] = fmt.Sprintf("unknown status %q", st)
		}
	}
	for _, p := range spec.Prioridade {
		if !p.Valid() {
			details["prioridade"] = fmt.Sprintf("unknown prioridade %q", p)
		}
	}
	for _, a := range spec.Area {
		if !a.Valid() {
			details["area"] = fmt.Sprintf("unknown area %q", a)
		}
	}
	if _, err := query.ParseSortField(string(spec.SortBy)); err != nil {
		details["sortBy"] = err.Error()
	}
	if _, err := query.ParseSortOrder(string(spec.SortOrder)); err != nil {
		details["sortOrder"] = err.Error()
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid query", details)
	}
	return nil
}

func checkMinLen(details map[string]any, field, value string, minLen int) {
	if utf8.RuneCountInString(value) < minLen {
		details[field] = fmt.Sprintf("must have at least %d characters", minLen)
	}
}
