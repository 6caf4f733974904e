package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/storefront/internal/apitest"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/logger"
)

// mockapi - локальный бэкенд магазина в памяти для ручной проверки CLI
func main() {
	var addr, env string
	flag.StringVar(&addr, "addr", "localhost:3000", "listen address")
	flag.StringVar(&env, "env", "local", "environment: local, dev, prod")
	flag.Parse()

	log := logger.SetupLogger(env)
	log.Info("starting mock api", slog.String("env", env))

	backend := apitest.New(log)
	seed(log, backend)

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Mount("/", backend.Router())

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  4 * time.Second,
		WriteTimeout: 4 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", slog.String("address", "http://"+addr+apitest.BasePath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}

// seed заполняет витрину демо-данными
func seed(log *slog.Logger, b *apitest.Backend) {
	user := b.AddUser("Demo", "demo@example.com", "secret123", 50000)
	b.AddTransaction(user.ID, models.Transaction{
		Type:       models.TransactionTypeDeposit,
		Amount:     50000,
		CardType:   models.CardTypeViettel,
		CardNumber: "1234567890",
	})

	for _, p := range []models.Product{
		{ID: "p-gift-100", Name: "Thẻ quà tặng 100.000đ", Price: 95000, OldPrice: 100000, Category: "gift"},
		{ID: "p-gift-200", Name: "Thẻ quà tặng 200.000đ", Price: 190000, OldPrice: 200000, Category: "gift"},
		{ID: "p-game-60", Name: "Gói 60 kim cương", Price: 20000, Category: "game"},
		{ID: "p-game-300", Name: "Gói 300 kim cương", Price: 99000, Category: "game"},
	} {
		b.AddProduct(p)
	}
	log.Info("seeded demo data", slog.String("email", user.Email), slog.String("password", "secret123"))
}
