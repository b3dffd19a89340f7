// Package api предоставляет клиент REST API платформы FoodHive.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Ошибки транспортного уровня, различаемые вызывающим кодом.
var (
	// ErrNotFound — 404 на запросе по области видимости: валидное
	// пустое состояние, а не сбой.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized — 401: сессия недействительна, требуется
	// повторная аутентификация.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict — 409: например, платёж уже находится в обработке.
	ErrConflict = errors.New("conflict")
)

// TokenSource возвращает текущий токен сессии; пустая строка означает
// анонимный запрос.
type TokenSource func() string

// Client инкапсулирует HTTP-взаимодействие с сервером FoodHive.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokenSource    TokenSource
	onUnauthorized func()
}

// NewClient создаёт клиент API по указанному адресу. onUnauthorized
// вызывается на каждый ответ 401 независимо от того, какой вызов его
// получил: обработка недействительной сессии — сквозная забота
// транспортного уровня.
func NewClient(baseURL string, tokenSource TokenSource, onUnauthorized func()) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokenSource:    tokenSource,
		onUnauthorized: onUnauthorized,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("api client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusConflict:
		return nil, ErrConflict
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("api: %s (status %d)", env.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return env.Data, nil
}

// decodeData разбирает поле data конверта ответа в указанную структуру.
func decodeData(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
