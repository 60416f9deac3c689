package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doclens/internal/analysis"
	"doclens/internal/analysis/inference"
	"doclens/internal/analysis/local"
	"doclens/internal/bot"
	"doclens/internal/config"
	"doclens/internal/database"
	"doclens/internal/extract"
	"doclens/internal/fetch"
	"doclens/internal/models"
	"doclens/internal/scheduler"
	"doclens/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	bindings := analysis.Resolve(ctx, []analysis.Candidate{
		{Kind: analysis.BindingLocal, Provider: initLocalProvider(ctx, cfg, log)},
		{Kind: analysis.BindingInference, Provider: initOpenAIProvider(ctx, cfg, log)},
	}, log)
	orchestrator := analysis.NewOrchestrator(bindings, log)

	extractor := extract.New(cfg.OCRLanguage, log)
	fetcher := fetch.NewFetcher(log)
	sessions := session.NewStore(session.DefaultMaxEntries)

	botInst, err := bot.New(
		cfg.Token,
		db,
		extractor,
		fetcher,
		orchestrator,
		sessions,
		cfg.AllowedUsers,
		log,
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot",
			"error", err,
			"allowedUsersCount", len(cfg.AllowedUsers))

		return
	}
	log.InfoContext(ctx, "Bot is initialized",
		"allowedUsersCount", len(cfg.AllowedUsers),
		"summarizeBackend", orchestrator.Binding(models.CapabilitySummarize).Kind.String(),
		"entitiesBackend", orchestrator.Binding(models.CapabilityEntities).Kind.String())

	sched := scheduler.New(ctx, sessions, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.HourlyCleanupSpec,
			"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.HourlyCleanupSpec,
		"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

	go func() {
		botInst.Start(ctx)
	}()
	log.InfoContext(ctx, "Bot is started",
		"updateTimeoutSeconds", bot.BotUpdateTimeout)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	log.InfoContext(ctx, "Exiting...",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())

	botInst.Stop()
	log.InfoContext(ctx, "Bot is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initLocalProvider(ctx context.Context, cfg config.Config, log *slog.Logger) analysis.Provider {
	if !cfg.LocalAnalysis {
		return nil
	}

	log.InfoContext(ctx, "Local analysis backend is enabled",
		"envVar", "LOCAL_ANALYSIS")

	return local.New()
}

func initOpenAIProvider(ctx context.Context, cfg config.Config, log *slog.Logger) analysis.Provider {
	if cfg.OpenAIAPIKey == "" {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so inference backend is unavailable",
			"envVar", "OPENAI_API_KEY")

		return nil
	}

	p, err := inference.New(cfg.OpenAIAPIKey)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create OpenAI provider so inference backend is unavailable",
			"error", err,
			"envVar", "OPENAI_API_KEY")

		return nil
	}

	log.InfoContext(ctx, "OpenAI provider is initialized",
		"provider", "openai")

	return p
}
