package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/tutortrack/pkg/api"
)

// ErrUnauthorized возвращается, если сервер отклонил токен или пароль администратора
var ErrUnauthorized = errors.New("unauthorized")

// ClientAPI описывает операции клиента с сервером прогресса
type ClientAPI interface {
	TrackProgress(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error)
	GetReport(ctx context.Context, accessToken string) (*api.ReportResponse, error)
	AdminLogin(ctx context.Context, password string) (*api.AdminTokenResponse, error)
}

var _ ClientAPI = (*Client)(nil)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// TrackProgress отправляет событие прогресса на сервер
func (c *Client) TrackProgress(ctx context.Context, req api.TrackRequest) (*api.TrackResponse, error) {
	var resp api.TrackResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/progress/track", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("track request failed: %w", err)
	}
	return &resp, nil
}

// GetReport получает сводный отчет по всем ученикам.
// accessToken может быть пустым, если сервер не защищает отчет паролем.
func (c *Client) GetReport(ctx context.Context, accessToken string) (*api.ReportResponse, error) {
	var resp api.ReportResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/progress/track", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	return &resp, nil
}

// AdminLogin обменивает пароль администратора на токен
func (c *Client) AdminLogin(ctx context.Context, password string) (*api.AdminTokenResponse, error) {
	var resp api.AdminTokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/admin/login", "", api.AdminLoginRequest{Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("admin login request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func statusError(status int, body []byte) error {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("request failed with status %d: %s", status, strings.TrimSpace(string(body)))
	}

	msg := errResp.Error
	if errResp.Message != "" {
		msg += ": " + errResp.Message
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: server error (%d): %s", ErrUnauthorized, status, msg)
	}
	return fmt.Errorf("server error (%d): %s", status, msg)
}
