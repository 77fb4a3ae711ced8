package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/chamados/internal/api/dto"
	"github.com/spec-kit/chamados/internal/domain"
	"github.com/spec-kit/chamados/internal/service"
)

// Client calls the chamados HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error (%d %s): %s %v", e.StatusCode, e.Code, e.Message, e.Details)
}

// SearchParams mirrors the GET /chamados query string.
type SearchParams struct {
	Query      string
	Status     []string
	Prioridade []string
	Area       []string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	if len(p.Status) > 0 {
		v.Set("status", strings.Join(p.Status, ","))
	}
	if len(p.Prioridade) > 0 {
		v.Set("prioridade", strings.Join(p.Prioridade, ","))
	}
	if len(p.Area) > 0 {
		v.Set("area", strings.Join(p.Area, ","))
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

// Search sends GET /chamados.
func (c *Client) Search(ctx context.Context, params SearchParams) (*dto.ChamadoListResponse, error) {
	endpoint := c.BaseURL + "/chamados"
	if q := params.values().Encode(); q != "" {
		endpoint += "?" + q
	}
	var result dto.ChamadoListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create sends POST /chamados.
func (c *Client) Create(ctx context.Context, req dto.CreateChamadoRequest) (*domain.Chamado, error) {
	var result struct {
		Data domain.Chamado `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/chamados", req, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// Get sends GET /chamados/{id}.
func (c *Client) Get(ctx context.Context, id string) (*domain.Chamado, error) {
	var result struct {
		Data domain.Chamado `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, c.BaseURL+"/chamados/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// Dashboard sends GET /dashboard.
func (c *Client) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	var result struct {
		Data service.Dashboard `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, c.BaseURL+"/dashboard", nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Accept", "application/json")
	if body != nil {
		httpReq.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, respBody)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}
	return &APIError{
		StatusCode: status,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
		Details:    envelope.Error.Details,
	}
}
