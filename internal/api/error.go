package api

import (
	"errors"

	"github.com/tidwall/gjson"
)

// FallbackMessage - сообщение, когда сервер не прислал своего или ответа нет вовсе
const FallbackMessage = "Something went wrong"

// Error - ошибка обращения к API: неуспешный статус или сетевой сбой (Status == 0).
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageOf возвращает текст ошибки API для показа пользователю или fallback для прочих ошибок
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf возвращает HTTP статус ошибки API, 0 - если ответа не было
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// errorMessage достает message (или error) из json тела ответа
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return FallbackMessage
	}
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return FallbackMessage
}
