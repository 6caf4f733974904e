// Package apitest - поддельный REST бэкенд магазина в памяти для тестов клиента.
package apitest

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/linemk/storefront/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// BasePath - префикс всех маршрутов API
const BasePath = "/api/v1"

type account struct {
	user         models.User
	passwordHash []byte
	balance      int64
	transactions []models.Transaction // новые в начале
}

type failure struct {
	status     int
	body       string
	disconnect bool
}

// Backend хранит пользователей, товары и операции; все методы безопасны для конкурентного вызова.
type Backend struct {
	// URL базовый адрес API (с BasePath), заполняется Start
	URL string

	log      *slog.Logger
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	accounts map[string]*account // по id
	byEmail  map[string]string
	revoked  map[string]struct{}
	products []models.Product
	failures map[string]failure
	calls    map[string]int
}

func New(log *slog.Logger) *Backend {
	return &Backend{
		log:      log,
		secret:   []byte("apitest-secret"),
		tokenTTL: time.Hour,
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		revoked:  make(map[string]struct{}),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}
}

// Start поднимает httptest сервер, закрываемый по окончании теста
func Start(t testing.TB, log *slog.Logger) *Backend {
	t.Helper()

	b := New(log)
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	b.URL = srv.URL + BasePath
	return b
}

// Router собирает маршруты API
func (b *Backend) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(b.countAndFail)

	router.Route(BasePath, func(r chi.Router) {
		r.Post("/users/login", loginHandler(b.log, b))
		r.Post("/users/signup", signupHandler(b.log, b))

		r.Group(func(r chi.Router) {
			r.Use(b.requireAuth)
			r.Get("/users/me", meHandler(b.log, b))
			r.Get("/users/me/balance", balanceHandler(b.log, b))
			r.Post("/users/deposit", depositHandler(b.log, b))
			r.Get("/users/transactions", transactionsHandler(b.log, b))
			r.Patch("/users/updateMyPassword", updatePasswordHandler(b.log, b))
			r.Post("/users/logout", logoutHandler(b.log, b))
		})

		r.Get("/products", productsHandler(b.log, b))
		r.Get("/products/{id}", productHandler(b.log, b))
		r.Get("/products/related/{id}", relatedHandler(b.log, b))
	})
	return router
}

// AddUser регистрирует пользователя напрямую, минуя API
func (b *Backend) AddUser(name, email, password string, balance int64) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(name, email, hash, balance)
}

func (b *Backend) addLocked(name, email string, hash []byte, balance int64) models.User {
	user := models.User{ID: uuid.NewString(), Name: name, Email: strings.ToLower(email)}
	b.accounts[user.ID] = &account{user: user, passwordHash: hash, balance: balance}
	b.byEmail[user.Email] = user.ID
	return user
}

func (b *Backend) AddProduct(p models.Product) models.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append(b.products, p)
	return p
}

// AddTransaction добавляет операцию в начало истории пользователя
func (b *Backend) AddTransaction(userID string, tx models.Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if acc, ok := b.accounts[userID]; ok {
		acc.transactions = append([]models.Transaction{tx}, acc.transactions...)
	}
}

func (b *Backend) Balance(userID string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if acc, ok := b.accounts[userID]; ok {
		return acc.balance
	}
	return 0
}

// Fail заставляет маршрут отвечать status с json {"message": message}
func (b *Backend) Fail(method, path string, status int, message string) {
	body := `{"status":"fail"}`
	if message != "" {
		body = `{"status":"fail","message":` + quote(message) + `}`
	}
	b.FailRaw(method, path, status, body)
}

// FailRaw заставляет маршрут отвечать status с произвольным телом
func (b *Backend) FailRaw(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[routeKey(method, path)] = failure{status: status, body: body}
}

// Disconnect обрывает соединение на маршруте, имитируя сетевой сбой
func (b *Backend) Disconnect(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[routeKey(method, path)] = failure{disconnect: true}
}

// Recover снимает все сбои
func (b *Backend) Recover() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]failure)
}

// Calls сколько раз вызывали маршрут (path без BasePath)
func (b *Backend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[routeKey(method, path)]
}

// TotalCalls число всех запросов к API
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// Emails возвращает зарегистрированные адреса по алфавиту
func (b *Backend) Emails() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	emails := make([]string, 0, len(b.byEmail))
	for email := range b.byEmail {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

func (b *Backend) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, strings.TrimPrefix(r.URL.Path, BasePath))

		b.mu.Lock()
		b.calls[key]++
		f, failing := b.failures[key]
		b.mu.Unlock()

		if !failing {
			next.ServeHTTP(w, r)
			return
		}
		if f.disconnect {
			// Recoverer пробрасывает ErrAbortHandler, сервер рвет соединение без ответа
			panic(http.ErrAbortHandler)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	})
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
