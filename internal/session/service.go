// Package session управляет входом, выходом и текущим состоянием пользователя клиента.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidCredentials - вход не удался (неверные данные или сбой сети)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// Client - часть API, нужная сессии
type Client interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Balance(ctx context.Context) (int64, error)
	Logout(ctx context.Context) error
}

type Service struct {
	log     *slog.Logger
	client  Client
	storage storage.Storage
	store   *Store
}

func NewService(log *slog.Logger, client Client, st storage.Storage, store *Store) *Service {
	return &Service{
		log:     log,
		client:  client,
		storage: st,
		store:   store,
	}
}

// Store возвращает состояние сессии
func (s *Service) Store() *Store {
	return s.store
}

// Login проверяет email и пароль и сохраняет токен. Состояние сессии не меняется до Refresh.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "session.Service.Login"
	log := s.log.With(slog.String("op", op))

	resp, err := s.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Warn("login failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidCredentials, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%s: %w: empty token", op, ErrInvalidCredentials)
	}

	if err := s.storage.Set(ctx, storage.KeyToken, resp.Token); err != nil {
		log.Error("failed to save token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save token: %w", op, err)
	}

	user := resp.Data.User
	log.Info("user logged in", slog.String("user_id", user.ID))
	return &user, nil
}

// Register создаёт аккаунт и сохраняет токен; ошибка API возвращается как есть (*api.Error)
func (s *Service) Register(ctx context.Context, name, email, password, confirm string) (*models.User, error) {
	const op = "session.Service.Register"
	log := s.log.With(slog.String("op", op))

	resp, err := s.client.Signup(ctx, api.SignupRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: confirm,
	})
	if err != nil {
		log.Warn("signup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.Set(ctx, storage.KeyToken, resp.Token); err != nil {
		log.Error("failed to save token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save token: %w", op, err)
	}

	user := resp.Data.User
	log.Info("user registered", slog.String("user_id", user.ID))
	return &user, nil
}

// Logout сообщает серверу о выходе и всегда очищает локальную сессию, даже если сервер недоступен.
// Ошибка сервера все равно возвращается вызывающему.
func (s *Service) Logout(ctx context.Context) error {
	const op = "session.Service.Logout"
	log := s.log.With(slog.String("op", op))

	callErr := s.client.Logout(ctx)
	if callErr != nil {
		log.Warn("logout request failed, clearing local session anyway", slog.Any("error", callErr))
	}

	var errs []error
	if callErr != nil {
		errs = append(errs, callErr)
	}
	for _, key := range []string{storage.KeyToken, storage.KeyRememberMe} {
		if err := s.storage.Remove(ctx, key); err != nil {
			log.Error("failed to remove key", slog.String("key", key), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	s.store.Clear()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("user logged out")
	return nil
}

// Refresh загружает пользователя и баланс параллельно и сохраняет их вместе.
// При любой ошибке состояние не меняется.
func (s *Service) Refresh(ctx context.Context) error {
	const op = "session.Service.Refresh"
	log := s.log.With(slog.String("op", op))

	var (
		user    *models.User
		balance int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.client.Me(gctx)
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		b, err := s.client.Balance(gctx)
		if err != nil {
			return fmt.Errorf("fetch balance: %w", err)
		}
		balance = b
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Warn("failed to refresh session", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.store.Set(*user, balance)
	log.Debug("session refreshed", slog.String("user_id", user.ID), slog.Int64("balance", balance))
	return nil
}

// RestoreFromStorage восстанавливает сессию, если пользователь просил его запомнить.
// Без rememberMe или токена сессия остается пустой, это не ошибка.
func (s *Service) RestoreFromStorage(ctx context.Context) error {
	const op = "session.Service.RestoreFromStorage"

	remember, _, err := storage.Lookup(ctx, s.storage, storage.KeyRememberMe)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	token, hasToken, err := storage.Lookup(ctx, s.storage, storage.KeyToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if remember != "true" || !hasToken || token == "" {
		return nil
	}

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetRemember сохраняет или удаляет флаг "запомнить меня"
func (s *Service) SetRemember(ctx context.Context, remember bool) error {
	const op = "session.Service.SetRemember"

	var err error
	if remember {
		err = s.storage.Set(ctx, storage.KeyRememberMe, "true")
	} else {
		err = s.storage.Remove(ctx, storage.KeyRememberMe)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Token возвращает сохраненный токен
func (s *Service) Token(ctx context.Context) (string, bool, error) {
	return storage.Lookup(ctx, s.storage, storage.KeyToken)
}

// TokenExpiry читает exp из сохраненного токена без проверки подписи.
// ok == false, если токена нет или он не JWT.
func (s *Service) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, ok, err := s.Token(ctx)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return TokenExpiry(token)
}

// TokenExpiry достает срок действия из JWT без проверки подписи
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
