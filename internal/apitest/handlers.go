package apitest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type depositRequest struct {
	CardNumber string `json:"cardNumber" validate:"required,numeric,min=10"`
	CardSerial string `json:"cardSerial" validate:"required,numeric,min=5"`
	CardType   string `json:"cardType" validate:"required,oneof=viettel mobifone vinaphone garena zing"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

func loginHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "apitest.loginHandler"
		logger := log.With(slog.String("op", op))

		var req loginRequest
		if !decode(w, r, logger, &req) {
			return
		}

		b.mu.Lock()
		acc, ok := b.accounts[b.byEmail[strings.ToLower(req.Email)]]
		b.mu.Unlock()
		if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}

		b.sendToken(w, logger, acc.user, http.StatusOK)
	}
}

func signupHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "apitest.signupHandler"
		logger := log.With(slog.String("op", op))

		var req signupRequest
		if !decode(w, r, logger, &req) {
			return
		}
		if req.Password != req.PasswordConfirm {
			writeError(w, http.StatusBadRequest, "Passwords are not the same!")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		b.mu.Lock()
		if _, exists := b.byEmail[strings.ToLower(req.Email)]; exists {
			b.mu.Unlock()
			writeError(w, http.StatusBadRequest, "Email already in use. Please use another email!")
			return
		}
		user := b.addLocked(req.Name, req.Email, hash, 0)
		b.mu.Unlock()

		b.sendToken(w, logger, user, http.StatusCreated)
	}
}

func meHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := b.current(w, r)
		if !ok {
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"user": acc.user},
		})
	}
}

func balanceHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := b.current(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		balance := acc.balance
		b.mu.Unlock()
		writeJSON(w, log, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"balance": balance},
		})
	}
}

func depositHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "apitest.depositHandler"
		logger := log.With(slog.String("op", op))

		acc, ok := b.current(w, r)
		if !ok {
			return
		}
		var req depositRequest
		if !decode(w, r, logger, &req) {
			return
		}
		if !slices.Contains(models.Denominations, req.Amount) {
			writeError(w, http.StatusBadRequest, "Invalid card amount")
			return
		}

		tx := models.Transaction{
			ID:         uuid.NewString(),
			Type:       models.TransactionTypeDeposit,
			Amount:     req.Amount,
			CardType:   req.CardType,
			CardNumber: req.CardNumber,
			CreatedAt:  time.Now().UTC(),
		}

		b.mu.Lock()
		acc.balance += req.Amount
		acc.transactions = append([]models.Transaction{tx}, acc.transactions...)
		balance := acc.balance
		b.mu.Unlock()

		writeJSON(w, logger, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{
				"user": map[string]any{
					"_id":     acc.user.ID,
					"name":    acc.user.Name,
					"email":   acc.user.Email,
					"balance": balance,
				},
			},
		})
	}
}

func transactionsHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := b.current(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		txs := slices.Clone(acc.transactions)
		b.mu.Unlock()
		if txs == nil {
			txs = []models.Transaction{}
		}
		writeJSON(w, log, http.StatusOK, map[string]any{
			"status":  "success",
			"results": len(txs),
			"data":    map[string]any{"transactions": txs},
		})
	}
}

func updatePasswordHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "apitest.updatePasswordHandler"
		logger := log.With(slog.String("op", op))

		acc, ok := b.current(w, r)
		if !ok {
			return
		}
		var req updatePasswordRequest
		if !decode(w, r, logger, &req) {
			return
		}
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.PasswordCurrent)) != nil {
			writeError(w, http.StatusUnauthorized, "Your current password is wrong.")
			return
		}
		if req.Password != req.PasswordConfirm {
			writeError(w, http.StatusBadRequest, "Passwords are not the same!")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		b.mu.Lock()
		acc.passwordHash = hash
		b.mu.Unlock()

		writeJSON(w, logger, http.StatusOK, map[string]any{"status": "success"})
	}
}

func logoutHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.revoked[bearerToken(r)] = struct{}{}
		b.mu.Unlock()
		writeJSON(w, log, http.StatusOK, map[string]any{"status": "success"})
	}
}

func productsHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		products := slices.Clone(b.products)
		b.mu.Unlock()
		if products == nil {
			products = []models.Product{}
		}
		writeJSON(w, log, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"products": products},
		})
	}
}

func productHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := b.findProduct(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "No product found with that ID")
			return
		}
		writeJSON(w, log, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"product": product},
		})
	}
}

// relatedHandler отдает товары той же категории, кроме запрошенного
func relatedHandler(log *slog.Logger, b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := b.findProduct(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "No product found with that ID")
			return
		}

		b.mu.Lock()
		related := make([]models.Product, 0)
		for _, p := range b.products {
			if p.ID != product.ID && p.Category == product.Category {
				related = append(related, p)
			}
		}
		b.mu.Unlock()

		writeJSON(w, log, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"products": related},
		})
	}
}

func (b *Backend) findProduct(id string) (models.Product, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (b *Backend) current(w http.ResponseWriter, r *http.Request) (*account, bool) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	b.mu.Lock()
	acc, ok := b.accounts[userID]
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return acc, true
}

func (b *Backend) sendToken(w http.ResponseWriter, logger *slog.Logger, user models.User, status int) {
	token, err := b.newToken(user.ID, user.Email)
	if err != nil {
		logger.Error("failed to sign token", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, logger, status, map[string]any{
		"status": "success",
		"token":  token,
		"data":   map[string]any{"user": user},
	})
}

func decode(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Error("invalid request: decoding error", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		logger.Error("invalid request: validation error", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, "Invalid input data")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"status":"fail","message":` + quote(message) + `}`))
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
