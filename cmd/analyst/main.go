package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitcoin-analyst/internal/crew"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/reader"
	"bitcoin-analyst/internal/report"
	"bitcoin-analyst/internal/search"
	"bitcoin-analyst/internal/trace"
	"bitcoin-analyst/internal/types"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	if issues := checkEnvironment(cfg); len(issues) > 0 {
		for _, issue := range issues {
			logger.Error(ctx, "Environment check failed", "issue", issue)
		}
		os.Exit(1)
	}

	completer := initializeCompleter(ctx, cfg)
	searcher := search.NewClient(cfg)
	pages := reader.New(cfg.ReaderTimeout(), cfg.Reader.MaxChars)

	pipeline, err := crew.NewDailyCrew(cfg, completer, searcher, pages)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to assemble pipeline", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Starting analysis", "topic", cfg.Topic)

	op := logger.StartOperation(ctx, "daily-analysis", "topic", cfg.Topic)
	raw, err := pipeline.Kickoff(op.GetContext())
	if err != nil {
		op.EndWithError(err)
		os.Exit(1)
	}
	op.End()

	outputs := pipeline.Outputs()
	rec := report.ParseRecommendation(outputs[crew.StageRecommendation])
	logger.Recommendation(ctx, rec.Action, rec.Confidence)

	page := report.Extract(raw)
	page = report.EnsureDocument(page, "Bitcoin Analysis Report")
	page = report.Decorate(page, cfg.Report.MailerURL)

	rep := &types.Report{
		Date:           time.Now().Format("2006-01-02"),
		Topic:          cfg.Topic,
		Outputs:        outputs,
		Recommendation: rec,
		GeneratedAt:    time.Now(),
		HTML:           page,
	}

	writer := report.NewWriter(cfg.Report.OutputDir)
	htmlPath, jsonPath, err := writer.Save(ctx, rep)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to save report", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Analysis complete",
		"report", htmlPath,
		"snapshot", jsonPath,
		"action", rec.Action,
		"confidence", rec.Confidence,
	)
}
