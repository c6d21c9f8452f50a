package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/tracker-tv/phi-guard/internal/config"
	"github.com/tracker-tv/phi-guard/internal/github"
	"github.com/tracker-tv/phi-guard/internal/ledger"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/internal/metrics"
	"github.com/tracker-tv/phi-guard/internal/notify"
	"github.com/tracker-tv/phi-guard/internal/orchestrator"
	"github.com/tracker-tv/phi-guard/internal/policy"
	"github.com/tracker-tv/phi-guard/internal/reviewer"
	"github.com/tracker-tv/phi-guard/internal/risk"
	"github.com/tracker-tv/phi-guard/internal/scanner"
	"github.com/tracker-tv/phi-guard/internal/service"
	"github.com/tracker-tv/phi-guard/internal/staticanalysis"
	"github.com/tracker-tv/phi-guard/internal/store"
	"github.com/tracker-tv/phi-guard/internal/webhook"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, cfg, log); err != nil {
				log.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	audits, closePipeline, err := buildPipeline(ctx, cfg, m, log)
	if err != nil {
		return err
	}
	defer closePipeline()

	dispatcher := orchestrator.NewDispatcher(audits, cfg.MaxConcurrentAudits, cfg.RunTimeout, m, log)

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           webhook.NewRouter(webhook.NewHandler(cfg.WebhookSecret, dispatcher, m, log), limiter, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", cfg.ListenAddr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("drain_timeout", cfg.DrainTimeout))

	// New deliveries get 503 while running audits drain.
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.DrainTimeout)
	defer cancel()
	if err := dispatcher.Shutdown(drainCtx); err != nil {
		log.Warn("drain incomplete", zap.Error(err))
	}

	httpCtx, cancelHTTP := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelHTTP()
	return srv.Shutdown(httpCtx)
}

// buildPipeline wires the audit service from cfg. The returned func closes
// the ledger and the store.
func buildPipeline(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *zap.Logger) (service.AuditService, func(), error) {
	ghClient := github.New(cfg.GithubToken)
	if cfg.GithubAPIURL != "" {
		var err error
		if ghClient, err = github.NewEnterprise(cfg.GithubToken, cfg.GithubAPIURL); err != nil {
			return nil, nil, fmt.Errorf("github client: %w", err)
		}
	}

	baseRules, err := policy.Default()
	if err != nil {
		return nil, nil, fmt.Errorf("loading scanner rules: %w", err)
	}
	sc, err := scanner.New(baseRules)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scanner rules: %w", err)
	}

	backend, closeLedger, err := openLedger(cfg.LedgerPath, log)
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openStore(ctx, cfg.DatabaseURL, log)
	if err != nil {
		closeLedger()
		return nil, nil, err
	}
	closeAll := func() {
		closeStore()
		closeLedger()
	}

	deps := service.AuditDeps{
		Context:    service.NewContextService(ghClient, log),
		Scanner:    sc,
		Aggregator: risk.NewAggregator(cfg.VerdictThreshold),
		Ledger:     ledger.New(backend, cfg.LedgerMaxRetries, log),
		Store:      st,
		Publisher:  service.NewPublisher(ghClient, log),
		Metrics:    m,
		Log:        log,
	}
	if cfg.RepositoryRules {
		if deps.Rules, err = service.NewRulesService(ghClient, baseRules, log); err != nil {
			closeAll()
			return nil, nil, err
		}
	}
	if cfg.ReviewerEnabled() {
		model := reviewer.NewOpenAI(cfg.ReviewerAPIKey, cfg.ReviewerURL, cfg.ReviewerModel)
		deps.Reviewer = reviewer.NewAdapter(model, cfg.ReviewerTimeout, log)
	} else {
		log.Warn("no reviewer configured, audits use deterministic findings only")
	}
	if cfg.StaticAnalysisEnabled() {
		deps.Analyzer = staticanalysis.NewSemgrep(cfg.StaticAnalysisPath, cfg.StaticAnalysisConfig, log)
	}
	if cfg.SQSQueueURL != "" {
		n, err := notify.NewSQSNotifier(ctx, cfg.SQSQueueURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		deps.Notifier = n
	}

	return service.NewAuditService(deps), closeAll, nil
}

func openLedger(path string, log *zap.Logger) (ledger.Backend, func(), error) {
	if path == "" {
		log.Warn("no ledger path configured, the audit chain lives in memory only")
		return ledger.NewMemoryBackend(), func() {}, nil
	}
	b, err := ledger.OpenBadger(path, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ledger: %w", err)
	}
	return b, func() {
		if err := b.Close(); err != nil {
			log.Error("closing ledger", zap.Error(err))
		}
	}, nil
}

func openStore(ctx context.Context, dsn string, log *zap.Logger) (store.Store, func(), error) {
	if dsn == "" {
		log.Warn("no database configured, audit records live in memory only")
		return store.NewMemoryStore(), func() {}, nil
	}
	pg, err := store.OpenPostgres(ctx, dsn, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return pg, func() {
		if err := pg.Close(); err != nil {
			log.Error("closing store", zap.Error(err))
		}
	}, nil
}
