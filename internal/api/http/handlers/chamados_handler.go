package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados/internal/api/dto"
	"github.com/spec-kit/chamados/internal/domain"
	"github.com/spec-kit/chamados/internal/query"
	"github.com/spec-kit/chamados/internal/service"
	apperrors "github.com/spec-kit/chamados/pkg/util/errorutil"
)

// ChamadosHandler serves the chamado list, detail and create endpoints.
type ChamadosHandler struct {
	service *service.ChamadoService
}

// NewChamadosHandler constructs handler.
func NewChamadosHandler(chamadoService *service.ChamadoService) *ChamadosHandler {
	return &ChamadosHandler{service: chamadoService}
}

// Search GET /chamados.
func (h *ChamadosHandler) Search(c *fiber.Ctx) error {
	spec, err := parseSearchQuery(c)
	if err != nil {
		return err
	}
	result, err := h.service.Search(c.UserContext(), spec)
	if err != nil {
		return err
	}
	spec = spec.Normalized()
	return c.JSON(dto.ChamadoListResponse{
		Data:     result.Data,
		Total:    result.Total,
		Page:     spec.Page,
		PageSize: spec.PageSize,
	})
}

// Create POST /chamados.
func (h *ChamadosHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateChamadoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	chamado, err := h.service.Create(c.UserContext(), service.CreateInput{
		Titulo:      req.Titulo,
		Status:      req.Status,
		Prioridade:  req.Prioridade,
		Area:        req.Area,
		Equipamento: req.Equipamento,
		Instalacao:  req.Instalacao,
		Descricao:   req.Descricao,
		Responsavel: req.Responsavel,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": chamado})
}

// Get GET /chamados/:id.
func (h *ChamadosHandler) Get(c *fiber.Ctx) error {
	chamado, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chamado})
}

func parseSearchQuery(c *fiber.Ctx) (query.Spec, error) {
	spec := query.Spec{
		Query:      c.Query("query"),
		Status:     splitList[domain.ChamadoStatus](c.Query("status")),
		Prioridade: splitList[domain.ChamadoPrioridade](c.Query("prioridade")),
		Area:       splitList[domain.ChamadoArea](c.Query("area")),
		Page:       parseInt(c.Query("page"), query.DefaultPage),
		PageSize:   parseInt(c.Query("pageSize"), query.DefaultPageSize),
	}

	details := map[string]any{}
	sortBy, err := query.ParseSortField(c.Query("sortBy"))
	if err != nil {
		details["sortBy"] = err.Error()
	}
	sortOrder, err := query.ParseSortOrder(c.Query("sortOrder"))
	if err != nil {
		details["sortOrder"] = err.Error()
	}
	if len(details) > 0 {
		return query.Spec{}, apperrors.NewValidationError("invalid query", details)
	}
	spec.SortBy = sortBy
	spec.SortOrder = sortOrder
	return spec, nil
}

// splitList reads a comma-separated query value. Blank entries are skipped.
func splitList[T ~string](raw string) []T {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []T
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, T(part))
		}
	}
	return out
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
