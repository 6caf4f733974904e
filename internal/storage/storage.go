package storage

import (
	"context"
	"errors"
)

// Ключи, под которыми клиент хранит состояние сессии между запусками
const (
	KeyToken      = "token"
	KeyRememberMe = "rememberMe"
)

var ErrNotFound = errors.New("key not found")

// Storage - аналог localStorage браузера: строковые значения по ключу.
type Storage interface {
	// Get возвращает значение или ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove не считает ошибкой отсутствие ключа
	Remove(ctx context.Context, key string) error
}

// Lookup возвращает значение и признак его наличия, ErrNotFound не считается ошибкой
func Lookup(ctx context.Context, s Storage, key string) (string, bool, error) {
	v, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}
