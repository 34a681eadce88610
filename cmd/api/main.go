package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/peter86cu/contable-multiempresa/internal/config"
	"github.com/peter86cu/contable-multiempresa/internal/database"
	contaHttp "github.com/peter86cu/contable-multiempresa/internal/http"
	entryHandler "github.com/peter86cu/contable-multiempresa/internal/http/entry"
	paymentHandler "github.com/peter86cu/contable-multiempresa/internal/http/payment"
	treasuryHandler "github.com/peter86cu/contable-multiempresa/internal/http/treasury"
	"github.com/peter86cu/contable-multiempresa/internal/posting"
	postingStore "github.com/peter86cu/contable-multiempresa/internal/posting/store"
	"github.com/peter86cu/contable-multiempresa/internal/treasury"
	treasuryStore "github.com/peter86cu/contable-multiempresa/internal/treasury/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		treasuryService = treasury.NewService(treasuryStore.New(db))
		postingService  = posting.NewService(postingStore.New(db), treasuryService)
	)

	var (
		paymentH  = paymentHandler.NewHandler(postingService)
		entryH    = entryHandler.NewHandler(postingService)
		treasuryH = treasuryHandler.NewHandler(treasuryService)
	)

	router := contaHttp.New(paymentH, entryH, treasuryH, contaHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
