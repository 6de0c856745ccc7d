package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/mailer"
	"bitcoin-analyst/internal/store"
	"bitcoin-analyst/internal/trace"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize tracer: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	if os.Getenv("GMAIL_EMAIL") == "" || os.Getenv("GMAIL_PASSWORD") == "" {
		logger.Warn(ctx, "GMAIL_EMAIL/GMAIL_PASSWORD not set - /send-report will return errors until configured")
	}

	sender := mailer.NewSMTPSender(cfg.Mailer.SMTPHost, cfg.Mailer.SMTPPort)
	server := mailer.NewServer(cfg, sender)

	if err := server.Run(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Mailer server failed", err)
		os.Exit(1)
	}

	logger.Info(context.Background(), "Mailer stopped")
}
