package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/logger/handlers/urllog"
	"github.com/linemk/storefront/internal/storage"
	"golang.org/x/time/rate"
)

// Client - обертка над REST API магазина: json в обе стороны, Bearer токен, единый тип ошибки.
type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
	tokens     storage.Storage
	limiter    *rate.Limiter
}

// New создаёт клиента. Токен для авторизованных запросов читается из tokens при каждом вызове,
// поэтому логин/логаут сразу влияют на последующие запросы. transport может быть nil.
func New(log *slog.Logger, cfg config.APIConfig, tokens storage.Storage, transport http.RoundTripper) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		log:     log,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: urllog.CustomLoggerTransport(log, transport),
		},
		tokens:  tokens,
		limiter: limiter,
	}
}

// Call выполняет запрос к endpoint (путь относительно base url) и раскладывает json ответа в out.
// body сериализуется в json, если не nil. Любая неудача возвращается как *Error.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any, requiresAuth bool, out any) error {
	const op = "api.Client.Call"
	logger := c.log.With(
		slog.String("op", op),
		slog.String("method", method),
		slog.String("endpoint", endpoint),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Warn("rate limiter wait failed", slog.Any("error", err))
			return &Error{Message: FallbackMessage, Err: fmt.Errorf("%s: rate limit: %w", op, err)}
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: FallbackMessage, Err: fmt.Errorf("%s: failed to encode body: %w", op, err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &Error{Message: FallbackMessage, Err: fmt.Errorf("%s: failed to build request: %w", op, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if requiresAuth {
		// отсутствие токена не ошибка: права проверяет сервер
		token, ok, err := storage.Lookup(ctx, c.tokens, storage.KeyToken)
		if err != nil {
			logger.Warn("failed to read token", slog.Any("error", err))
		} else if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", slog.Any("error", err))
		return &Error{Message: FallbackMessage, Err: fmt.Errorf("%s: %w", op, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response", slog.Any("error", err))
		return &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: fmt.Errorf("%s: read body: %w", op, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(raw)}
		logger.Warn("api returned error", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Error("failed to decode response", slog.Any("error", err))
		return &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: fmt.Errorf("%s: decode body: %w", op, err)}
	}
	return nil
}
