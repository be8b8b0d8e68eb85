package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aaronromeo/powerbuilder/internal/catalog"
	"github.com/aaronromeo/powerbuilder/internal/coach"
	"github.com/aaronromeo/powerbuilder/internal/config"
	"github.com/aaronromeo/powerbuilder/internal/httpapi"
	"github.com/aaronromeo/powerbuilder/internal/llm"
	"github.com/aaronromeo/powerbuilder/internal/llm/provider"
	"github.com/aaronromeo/powerbuilder/internal/logbook"
	"github.com/aaronromeo/powerbuilder/internal/logging"
	"github.com/aaronromeo/powerbuilder/internal/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, logFile := logging.New(logging.LoggerSetupParams{
		LogFileName: cfg.LogFile,
		Debug:       cfg.Debug,
	}, os.Stdout)
	slog.SetDefault(logger)
	if logFile != nil {
		defer logFile.Close() //nolint:errcheck
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Addr, "provider", cfg.LlmProvider, "sheet", cfg.SheetName)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("listen", "err", err)
		os.Exit(1)
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*fiber.App, error) {
	secrets, err := config.LoadSecrets(cfg.SecretsPath)
	if err != nil {
		return nil, err
	}

	apiKey, err := cfg.APIKey(secrets)
	if errors.Is(err, config.ErrMissingAPIKey) {
		logger.Error("no api key, serving halt page", "provider", cfg.LlmProvider, "secrets", cfg.SecretsPath)
		return httpapi.NewHaltedServer(config.MissingAPIKeyMessage, logger), nil
	}
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewManager("powerbuilder", "server", reg)

	p, err := provider.New(ctx, cfg.LlmProvider,
		provider.WithAPIKey(apiKey),
		provider.WithModel(cfg.LlmModel),
		provider.WithBaseURL(cfg.LlmBaseURL),
		provider.WithHTTPClient(httpClient(logger)),
	)
	if err != nil {
		return nil, err
	}
	client, err := llm.New(llm.WithProvider(p), llm.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	svc := coach.New(newStore(ctx, cfg, secrets, logger), client,
		coach.WithHistoryLimit(cfg.HistoryLimit),
		coach.WithLogger(logger),
		coach.WithMetrics(m),
	)

	return httpapi.NewServer(httpapi.Options{
		Coach:    svc,
		Catalog:  cat,
		Logger:   logger,
		Metrics:  m,
		Gatherer: reg,
	}), nil
}

// newStore never fails: credential problems are reported on each use so the
// page can show them next to the action that needed the sheet.
func newStore(ctx context.Context, cfg *config.Config, secrets *config.Secrets, logger *slog.Logger) logbook.Store {
	creds, err := secrets.ServiceAccountJSON()
	if err != nil {
		logger.Warn("spreadsheet unavailable", "err", err)
		return logbook.Unavailable{Err: err}
	}
	store, err := logbook.NewSheetsStore(ctx, cfg.SheetName, creds, logger)
	if err != nil {
		logger.Warn("spreadsheet unavailable", "err", err)
		return logbook.Unavailable{Err: err}
	}
	return store
}

func httpClient(logger *slog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = logger
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc.StandardClient()
}
