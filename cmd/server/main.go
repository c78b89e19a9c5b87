package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Hariksh/Expense-tracker/internal/api"
	"github.com/Hariksh/Expense-tracker/internal/auth"
	"github.com/Hariksh/Expense-tracker/internal/config"
	"github.com/Hariksh/Expense-tracker/internal/service"
	"github.com/Hariksh/Expense-tracker/internal/storage/sqlite"
	"github.com/Hariksh/Expense-tracker/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DatabasePath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := api.NewRouter(api.Services{
		Auth:     service.NewAuthService(authenticator, jwtManager, store),
		Stats:    service.NewStatsService(store),
		Expenses: service.NewExpenseService(store),
		Groups:   service.NewGroupService(store),
		Contacts: service.NewContactService(store),
		JWT:      jwtManager,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
