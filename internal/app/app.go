package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/linemk/storefront/internal/api"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/flows"
	"github.com/linemk/storefront/internal/lib/clock"
	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/notify"
	"github.com/linemk/storefront/internal/session"
	"github.com/linemk/storefront/internal/storage"
)

// Драйверы хранилища сессии
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var ErrUnknownStorage = errors.New("unknown storage driver")

// Views - представления, в которые сценарии выводят результат
type Views struct {
	Toasts         notify.Renderer
	Page           modal.Page
	Modal          func(name string) modal.View
	Header         flows.HeaderView
	Login          flows.LoginView
	Register       flows.RegisterView
	ForgotPassword flows.ResettableFormView
	Deposit        flows.DepositView
	ChangePassword flows.ResettableView
	History        flows.HistoryView
	Account        flows.AccountView
}

// Flows - сценарии клиента, собранные на общих зависимостях
type Flows struct {
	Login          *flows.Login
	Register       *flows.Register
	ForgotPassword *flows.ForgotPassword
	Logout         *flows.Logout
	Deposit        *flows.Deposit
	ChangePassword *flows.ChangePassword
	History        *flows.History
	Account        *flows.Account
	ComingSoon     *flows.ComingSoon
	Catalog        *flows.Catalog
}

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *sql.DB // nil, если сессия хранится не в postgres
	Storage  storage.Storage
	API      *api.Client
	Session  *session.Service
	Modals   *modal.Manager
	Notifier *notify.Notifier
	Flows    Flows

	sched  *clock.Tracked
	header flows.HeaderView
	deps   flows.Deps
}

// Options - необязательные параметры сборки приложения
type Options struct {
	// Transport для http клиента, nil - http.DefaultTransport
	Transport http.RoundTripper
	// Scheduler для задержек, nil - реальные таймеры
	Scheduler clock.Scheduler
}

// NewApp создаёт новый экземпляр App
func NewApp(log *slog.Logger, cfg *config.Config, views Views, opts Options) (*App, error) {
	const op = "app.NewApp"

	st, db, err := openStorage(log, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	base := opts.Scheduler
	if base == nil {
		base = clock.Real{}
	}
	// сценарии и анимации окон отслеживаются, чтобы CLI дождался их перед выходом;
	// тосты живут дольше команды и не отслеживаются
	sched := clock.NewTracked(base)

	client := api.New(log, cfg.API, st, opts.Transport)
	svc := session.NewService(log, client, st, session.NewStore())

	modals := modal.NewManager(log,
		modal.NewTimed(sched, cfg.UI.ModalOpenDelay, cfg.UI.ModalTransition),
		modal.NewScrollLock(views.Page))
	for _, name := range []string{modal.Account, modal.Deposit, modal.ChangePassword, modal.ComingSoon} {
		modals.Register(name, views.Modal(name), "")
	}
	modals.Register(modal.Auth, views.Modal(modal.Auth), modal.FamilyAuth)
	modals.Register(modal.ForgotPassword, views.Modal(modal.ForgotPassword), modal.FamilyAuth).
		OnClosed(views.ForgotPassword.Reset)
	mustGet(modals, modal.Deposit).OnClosed(views.Deposit.Reset)
	mustGet(modals, modal.ChangePassword).OnClosed(views.ChangePassword.Reset)

	notifier := notify.New(log, base, views.Toasts, cfg.UI)

	deps := flows.Deps{
		Log:      log,
		Session:  svc,
		Modals:   modals,
		Notifier: notifier,
		Sched:    sched,
		UI:       cfg.UI,
	}

	history := flows.NewHistory(log, client, views.History)
	deposit := flows.NewDeposit(deps, client, views.Deposit, history)
	password := flows.NewChangePassword(deps, client, views.ChangePassword)
	logout := flows.NewLogout(deps, views.Header)

	return &App{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Storage:  st,
		API:      client,
		Session:  svc,
		Modals:   modals,
		Notifier: notifier,
		Flows: Flows{
			Login:          flows.NewLogin(deps, views.Login, views.Header),
			Register:       flows.NewRegister(deps, views.Register),
			ForgotPassword: flows.NewForgotPassword(deps, views.ForgotPassword),
			Logout:         logout,
			Deposit:        deposit,
			ChangePassword: password,
			History:        history,
			Account:        flows.NewAccount(deps, views.Account, history, deposit, password, logout),
			ComingSoon:     flows.NewComingSoon(modals),
			Catalog:        flows.NewCatalog(log, client),
		},
		sched:  sched,
		header: views.Header,
		deps:   deps,
	}, nil
}

// Restore восстанавливает сессию из хранилища и рисует шапку
func (a *App) Restore(ctx context.Context) error {
	return flows.Restore(ctx, a.deps, a.header)
}

// Wait ждёт завершения всех отложенных действий сценариев
func (a *App) Wait() {
	a.sched.Wait()
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func openStorage(log *slog.Logger, cfg config.StorageConfig) (storage.Storage, *sql.DB, error) {
	switch cfg.Driver {
	case StorageFile, "":
		path := cfg.StoragePath()
		log.Debug("using file storage", slog.String("path", path))
		return storage.NewFileStorage(path), nil, nil
	case StorageMemory:
		return storage.NewMemoryStorage(), nil, nil
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
		}
		// реализуем подключение к БД через DSN
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		log.Debug("using postgres storage", slog.String("profile", cfg.Profile))
		return storage.NewPostgresStorage(db, cfg.Profile), db, nil
	default:
		return nil, nil, fmt.Errorf("%q: %w", cfg.Driver, ErrUnknownStorage)
	}
}

func mustGet(m *modal.Manager, name string) *modal.Modal {
	mod, err := m.Get(name)
	if err != nil {
		panic(err)
	}
	return mod
}
