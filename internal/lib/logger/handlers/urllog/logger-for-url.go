package urllog

import (
	"log/slog"
	"net/http"
	"time"
)

// RoundTripperFunc позволяет использовать функцию как http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// CustomLoggerTransport логирует каждый исходящий запрос к API: метод, url, статус и время ответа.
// Если next == nil, используется http.DefaultTransport.
func CustomLoggerTransport(log *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		logger := log.With(
			slog.String("method", r.Method),
			slog.String("url", r.URL.String()),
			slog.String("request_id", r.Header.Get("X-Request-Id")),
		)
		logger.Debug("request sent")

		resp, err := next.RoundTrip(r)
		if err != nil {
			logger.Warn("request failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))
			return nil, err
		}

		logger.Debug("response received",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp, nil
	})
}
