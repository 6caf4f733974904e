package api

import (
	"context"
	"net/http"

	"github.com/linemk/storefront/internal/domain/models"
)

// envelope - общий вид успешного ответа {data: ...}
type envelope[T any] struct {
	Data T `json:"data"`
}

// LoginRequest тело запроса POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest тело запроса POST /users/signup
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePasswordRequest тело запроса PATCH /users/updateMyPassword
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// AuthResponse ответ логина и регистрации
type AuthResponse struct {
	Token string `json:"token"`
	Data  struct {
		User models.User `json:"user"`
	} `json:"data"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Call(ctx, "/users/login", http.MethodPost, req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Call(ctx, "/users/signup", http.MethodPost, req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me возвращает текущего пользователя по токену
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp envelope[struct {
		User models.User `json:"user"`
	}]
	if err := c.Call(ctx, "/users/me", http.MethodGet, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.User, nil
}

func (c *Client) Balance(ctx context.Context) (int64, error) {
	var resp envelope[struct {
		Balance int64 `json:"balance"`
	}]
	if err := c.Call(ctx, "/users/me/balance", http.MethodGet, nil, true, &resp); err != nil {
		return 0, err
	}
	return resp.Data.Balance, nil
}

// Deposit пополняет баланс картой и возвращает новый баланс из ответа сервера
func (c *Client) Deposit(ctx context.Context, deposit models.Deposit) (int64, error) {
	var resp envelope[struct {
		User struct {
			Balance int64 `json:"balance"`
		} `json:"user"`
	}]
	if err := c.Call(ctx, "/users/deposit", http.MethodPost, deposit, true, &resp); err != nil {
		return 0, err
	}
	return resp.Data.User.Balance, nil
}

// Transactions возвращает историю операций, новые сверху
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var resp envelope[struct {
		Transactions []models.Transaction `json:"transactions"`
	}]
	if err := c.Call(ctx, "/users/transactions", http.MethodGet, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Transactions, nil
}

func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	return c.Call(ctx, "/users/updateMyPassword", http.MethodPatch, req, true, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Call(ctx, "/users/logout", http.MethodPost, nil, true, nil)
}
