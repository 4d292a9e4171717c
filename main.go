// Package main is the entry point for the receipt ledger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/yelinaung/receipt-ledger/internal/analytics"
	"gitlab.com/yelinaung/receipt-ledger/internal/auth"
	"gitlab.com/yelinaung/receipt-ledger/internal/config"
	"gitlab.com/yelinaung/receipt-ledger/internal/logger"
	"gitlab.com/yelinaung/receipt-ledger/internal/ocr"
	"gitlab.com/yelinaung/receipt-ledger/internal/storage"
	"gitlab.com/yelinaung/receipt-ledger/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("receipt-ledger %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		logger.SetJSON()
	}
	logger.InitHashSalt()

	kv, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open snapshot storage")
	}
	defer kv.Close()

	expenses := store.NewExpenseStore(kv)
	if err := expenses.Load(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load expense store")
	}

	debts := store.NewDebtStore(kv)
	if err := debts.Load(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load debt store")
	}

	if cfg.ScanningEnabled() {
		if _, err := ocr.NewClient(ctx, cfg.GeminiAPIKey); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		logger.Log.Info().Msg("Receipt scanning enabled")
	} else {
		logger.Log.Info().Msg("GEMINI_API_KEY not set, receipt scanning disabled")
	}

	verifier, err := newAuthVerifier(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create Google token verifier")
	}
	if verifier != nil {
		logger.Log.Info().Msg("Google sign-in enabled")
	} else {
		logger.Log.Info().Msg("GOOGLE_OAUTH_CLIENT_ID not set, sign-in disabled")
	}

	spend := analytics.ComputeSpendSummary(expenses.List())
	debtSummary := analytics.ComputeDebtSummary(debts.List())
	logger.Log.Info().
		Int("expenses", expenses.Count()).
		Int("debts", debts.Count()).
		Str("total_spend", spend.Total.String()).
		Str("net_balance", debtSummary.NetBalance.String()).
		Int("pending_debts", debtSummary.PendingCount).
		Int("paid_debts", debtSummary.PaidCount).
		Msg("Ledger loaded")

	if cfg.ChartOutputPath != "" && len(spend.CategoryShares) > 0 {
		chart, err := analytics.CategoryPieChart(spend, "Spending by Category")
		if err != nil {
			logger.Log.Error().Err(err).Msg("Failed to render category chart")
		} else if err := os.WriteFile(cfg.ChartOutputPath, chart, 0o600); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to write category chart")
		} else {
			logger.Log.Info().Str("path", cfg.ChartOutputPath).Msg("Category chart written")
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info().Msg("Shutting down...")
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	if cfg.UsePostgres() {
		return storage.ConnectPostgres(ctx, cfg.DatabaseURL)
	}
	return storage.OpenSQLite(cfg.DataPath)
}

// newAuthVerifier returns a nil Verifier when sign-in is not configured.
func newAuthVerifier(cfg *config.Config) (auth.Verifier, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}
	return auth.NewGoogleVerifier(cfg.GoogleOAuthClientID)
}
