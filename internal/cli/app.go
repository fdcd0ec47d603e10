package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/advisor"
	"github.com/roboadvisor/investai/internal/config"
	cronrunner "github.com/roboadvisor/investai/internal/cron"
	"github.com/roboadvisor/investai/internal/dashboard"
	"github.com/roboadvisor/investai/internal/dataflows"
	"github.com/roboadvisor/investai/internal/handler"
	"github.com/roboadvisor/investai/internal/ingest"
	"github.com/roboadvisor/investai/internal/llm"
	"github.com/roboadvisor/investai/internal/logger"
	"github.com/roboadvisor/investai/internal/server"
)

// buildOrchestrator wires the LLM client and the dataflow clients into
// the advisory pipeline.
func buildOrchestrator(ctx context.Context, cfg *config.Config, log *zap.Logger) (*advisor.Orchestrator, error) {
	gen, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	krx := dataflows.NewKRXClient(cfg)
	backend := dataflows.NewBackendClient(cfg)
	vector := dataflows.NewVectorClient(cfg)

	classifier := advisor.NewClassifier(gen, backend, log)
	reports := advisor.NewReportStrategy(gen, vector, cfg.VectorTopK, log)
	indicators := advisor.NewIndicatorStrategy(gen, backend, log)
	quotes := advisor.NewQuoteStrategy(gen, krx, cfg.ReferenceTicker, log)
	general := advisor.NewGeneralStrategy(gen, log)

	return advisor.NewOrchestrator(classifier, reports, indicators, quotes, general, log), nil
}

// runServe starts the HTTP server with the dashboard pre-warm schedule.
func runServe(cfg *config.Config) error {
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, err := buildOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}

	var agg *dashboard.Aggregator
	if cfg.DashboardEnabled {
		krx := dataflows.NewKRXClient(cfg)
		agg = dashboard.NewAggregator(krx, dataflows.NewYahooIndexClient(),
			time.Duration(cfg.DashboardCacheS)*time.Second, log)
	}

	runner := cronrunner.New(log, ctx)
	if agg != nil {
		_, err := runner.Add("dashboard-warm", cfg.DashboardCron, func(ctx context.Context) error {
			_, err := agg.Refresh(ctx)
			return err
		})
		if err != nil {
			log.Warn("cron register dashboard warm failed", zap.Error(err))
		}
	}
	runner.Start()
	defer runner.Stop()

	var market handler.MarketDashboard
	if agg != nil {
		market = agg
	}
	srv := server.New(cfg, log, orch, market, version)
	return srv.Run(ctx)
}

// runAsk answers one question and prints the response.
func runAsk(cfg *config.Config, question string) error {
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, err := buildOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}

	sessionID := fmt.Sprintf("cli-%d", time.Now().Unix())
	resp, err := orch.Handle(ctx, sessionID, question)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	fmt.Printf("📂 분류: %s\n\n", resp.Category)
	fmt.Println(resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Println("\n📚 출처:")
		for _, src := range resp.Sources {
			fmt.Printf("  - %s (%s, %s)\n", src.Title, src.SecuritiesFirm, src.Date)
		}
	}
	return nil
}

// runIngest chunks the reports under dir and uploads them.
func runIngest(cfg *config.Config, dir string) error {
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vector := dataflows.NewVectorClient(cfg)
	splitter := ingest.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	ing := ingest.NewIngester(splitter, vector, log)

	fmt.Printf("🔄 Ingesting reports from %s\n", dir)
	n, err := ing.Run(ctx, dir)
	if err != nil {
		return fmt.Errorf("ingest reports: %w", err)
	}

	fmt.Printf("✅ Uploaded %d chunks to collection %q\n", n, cfg.VectorCollection)
	return nil
}
