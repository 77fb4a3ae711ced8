package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/chamados/internal/api/http/handlers"
	"github.com/spec-kit/chamados/internal/domain"
	"github.com/spec-kit/chamados/internal/observability"
	"github.com/spec-kit/chamados/internal/repository"
	"github.com/spec-kit/chamados/internal/service"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type listBody struct {
	Data     []domain.Chamado `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func seedChamados() []domain.Chamado {
	statuses := []domain.ChamadoStatus{domain.StatusOpen, domain.StatusResolved, domain.StatusInProgress}
	out := make([]domain.Chamado, 0, 12)
	for i := 0; i < 12; i++ {
		opened := testNow.Add(-time.Duration(i+1) * time.Hour)
		out = append(out, domain.Chamado{
			ID:                strconv.Itoa(1001 + i),
			Titulo:            "Falha no equipamento",
			Status:            statuses[i%3],
			Prioridade:        domain.PrioridadeMedium,
			Area:              domain.AreaEnergy,
			Equipamento:       "Gerador",
			Instalacao:        "Loja Centro",
			Abertura:          opened,
			UltimaAtualizacao: opened,
			Descricao:         "Gerador não parte no teste semanal",
		})
	}
	out[4].Equipamento = "Bomba de recalque"
	return out
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	repo := repository.NewMemoryChamadoRepository(seedChamados())
	svc := service.NewChamadoService(service.ChamadoDependencies{
		ChamadoRepo: repo,
		Logger:      logger,
		Clock:       func() time.Time { return testNow },
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("chamados-test", "test", repo, nil, metrics),
		Chamados:  handlers.NewChamadosHandler(svc),
		Dashboard: handlers.NewDashboardHandler(svc),
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp
}

func TestSearchChamados(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name      string
		url       string
		wantTotal int
		wantLen   int
		wantFirst string
	}{
		{"defaults", "/chamados", 12, 10, "1001"},
		{"second page", "/chamados?page=2", 12, 2, "1011"},
		{"status filter", "/chamados?status=Resolvido&pageSize=5", 4, 4, "1002"},
		{"multi status", "/chamados?status=Resolvido,Aberto", 8, 8, "1001"},
		{"text search", "/chamados?query=bomba", 1, 1, "1005"},
		{"sort desc", "/chamados?sortBy=id&sortOrder=desc&pageSize=3", 12, 3, "1012"},
		{"invalid page falls back", "/chamados?page=0&pageSize=abc", 12, 10, "1001"},
		{"out of range", "/chamados?page=9", 12, 0, ""},
		{"huge page", "/chamados?page=1000000000000000000", 12, 0, ""},
		{"huge page size", "/chamados?page=2&pageSize=9223372036854775807", 12, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body listBody
			resp := do(t, app, httptest.NewRequest(http.MethodGet, tt.url, nil), &body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			if body.Total != tt.wantTotal || len(body.Data) != tt.wantLen {
				t.Fatalf("expected total=%d len=%d, got total=%d len=%d", tt.wantTotal, tt.wantLen, body.Total, len(body.Data))
			}
			if tt.wantFirst != "" && body.Data[0].ID != tt.wantFirst {
				t.Errorf("expected first %s, got %s", tt.wantFirst, body.Data[0].ID)
			}
			if body.Data == nil {
				t.Error("expected data array, got null")
			}
		})
	}
}

func TestSearchChamados_InvalidSort(t *testing.T) {
	app := newTestApp(t)
	var body errorBody
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/chamados?sortBy=cor", nil), &body)
	if resp.StatusCode != http.StatusBadRequest || body.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected 400 VALIDATION_FAILED, got %d %+v", resp.StatusCode, body)
	}
	if _, ok := body.Error.Details["sortBy"]; !ok {
		t.Errorf("expected sortBy detail, got %v", body.Error.Details)
	}
}

func TestCreateChamado(t *testing.T) {
	app := newTestApp(t)
	payload := `{"titulo":"Câmara fria sem refrigerar","prioridade":"Crítica","area":"Refrigeração",
		"equipamento":"Câmara 2","instalacao":"CD Norte","descricao":"Temperatura subiu para 8 graus","responsavel":""}`
	req := httptest.NewRequest(http.MethodPost, "/chamados", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	var created struct {
		Data domain.Chamado `json:"data"`
	}
	resp := do(t, app, req, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created.Data.ID != "1013" || created.Data.Status != domain.StatusOpen || created.Data.Responsavel != nil {
		t.Fatalf("unexpected created chamado %+v", created.Data)
	}

	var list listBody
	do(t, app, httptest.NewRequest(http.MethodGet, "/chamados?sortBy=id&sortOrder=desc", nil), &list)
	if list.Total != 13 || list.Data[0].ID != "1013" {
		t.Errorf("expected new chamado first of 13, got total=%d first=%s", list.Total, list.Data[0].ID)
	}

	var got struct {
		Data domain.Chamado `json:"data"`
	}
	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/chamados/1013", nil), &got)
	if resp.StatusCode != http.StatusOK || got.Data.Titulo != "Câmara fria sem refrigerar" {
		t.Errorf("expected chamado 1013, got %d %+v", resp.StatusCode, got.Data)
	}
}

func TestCreateChamado_Invalid(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"titulo":`},
		{"short fields", `{"titulo":"abc","prioridade":"Alta","area":"Energia","equipamento":"x","instalacao":"y","descricao":"z"}`},
		{"unknown area", `{"titulo":"Quadro geral","prioridade":"Alta","area":"Gás","equipamento":"QGBT","instalacao":"Loja 1","descricao":"Cheiro de queimado"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chamados", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			var body errorBody
			resp := do(t, app, req, &body)
			if resp.StatusCode != http.StatusBadRequest || body.Error.Code != "VALIDATION_FAILED" {
				t.Fatalf("expected 400 VALIDATION_FAILED, got %d %+v", resp.StatusCode, body)
			}
		})
	}
}

func TestGetChamado_NotFound(t *testing.T) {
	app := newTestApp(t)
	var body errorBody
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/chamados/42", nil), &body)
	if resp.StatusCode != http.StatusNotFound || body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected 404 NOT_FOUND, got %d %+v", resp.StatusCode, body)
	}
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t)
	var body struct {
		Data service.Dashboard `json:"data"`
	}
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard", nil), &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Data.Total != 12 || body.Data.StatusTotal(domain.StatusResolved) != 4 {
		t.Errorf("unexpected dashboard %+v", body.Data)
	}
	if body.Data.OpenCount != 8 {
		t.Errorf("expected 8 open, got %d", body.Data.OpenCount)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/health/live", nil), nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected live 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(observability.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}

	var ready struct {
		Status string `json:"status"`
	}
	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/health/ready", nil), &ready)
	if resp.StatusCode != http.StatusOK || ready.Status != "ready" {
		t.Errorf("expected ready, got %d %+v", resp.StatusCode, ready)
	}
}
