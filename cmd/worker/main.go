package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"marketwire/internal/config"
	"marketwire/internal/digest"
	"marketwire/internal/pipeline"
	"marketwire/internal/store"
	"marketwire/pkg/classify"
	"marketwire/pkg/feeds"
	"marketwire/pkg/fetch"
	"marketwire/pkg/indices"
	"marketwire/pkg/rewrite"
	"marketwire/pkg/trust"
)

const articleFetchConcurrency = 5

func main() {
	loop := flag.Bool("loop", false, "keep running, refreshing on the configured interval")
	flag.Parse()

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	lexicon, err := classify.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		log.Fatalf("error loading lexicon: %v", err)
	}
	classifier := classify.NewClassifier(lexicon)

	sourcelist, err := trust.LoadSourcelist("")
	if err != nil {
		log.Fatalf("error loading sourcelist: %v", err)
	}
	trustFilter := trust.NewFilter(sourcelist)

	feedClient := feeds.NewGoogleNewsClient(cfg.FeedTimeout)
	aggregator := feeds.NewAggregator(feedClient, classifier, int(cfg.DiscoveryWindow.Hours()))

	snapStore, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing snapshot store: %v", err)
	}

	var enricher pipeline.RegionEnricher
	if chain := buildProviderChain(ctx, cfg); chain != nil {
		fetcher := fetch.NewArticleFetcher(cfg.ArticleTimeout, articleFetchConcurrency)
		policy := rewrite.Policy{Lookback: cfg.Lookback, Budget: cfg.RewriteBudget}
		enricher = rewrite.NewEnricher(chain, policy, fetcher, cfg.RewriteTimeout)
	} else {
		slog.Warn("no rewrite provider keys configured, items pass through unrewritten")
	}

	var indicators pipeline.IndicatorSource
	if cfg.FinnhubAPIKey != "" {
		indicators = indices.NewIndicatorClient(cfg.FinnhubAPIKey)
	}

	var mailer pipeline.BriefSender
	if cfg.SMTPHost != "" {
		mailer = digest.NewMailer(digest.MailerConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.MailFrom,
			To:      cfg.MailTo,
			Enabled: true,
		})
	}

	runner := pipeline.NewRunner(cfg, aggregator, classifier, trustFilter,
		enricher, indicators, snapStore, digest.NewBuilder(cfg.DisplayLocation), mailer)

	if !*loop {
		if err := runner.Run(ctx, time.Now().UTC()); err != nil {
			runner.RecordFailure(ctx, err, time.Now().UTC())
			log.Fatalf("error running pipeline: %v", err)
		}
		return
	}

	runLoop(ctx, runner, snapStore, cfg.RefreshInterval)
}

// runLoop refreshes on the interval. The first pass runs immediately when
// the stored snapshot is absent or already older than the interval, so a
// fresh or long-stopped deploy serves current data without waiting a tick.
func runLoop(ctx context.Context, runner *pipeline.Runner, snapStore store.Store, interval time.Duration) {
	if snapshotStale(ctx, snapStore, interval) {
		runOnce(ctx, runner)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("worker loop started", "interval", interval)
	for range ticker.C {
		runOnce(ctx, runner)
	}
}

func runOnce(ctx context.Context, runner *pipeline.Runner) {
	now := time.Now().UTC()
	if err := runner.Run(ctx, now); err != nil {
		slog.Error("pipeline run failed", "error", err)
		runner.RecordFailure(ctx, err, now)
	}
}

func snapshotStale(ctx context.Context, snapStore store.Store, interval time.Duration) bool {
	exists, err := snapStore.Exists(ctx)
	if err != nil {
		slog.Warn("snapshot existence check failed, running immediately", "error", err)
		return true
	}
	if !exists {
		return true
	}

	snap, err := snapStore.Load(ctx)
	if err != nil || snap == nil {
		return true
	}
	return time.Since(snap.GeneratedAt) >= interval
}

// buildProviderChain assembles the rewrite fallback order from whichever
// API keys are present. Returns nil when none are configured.
func buildProviderChain(ctx context.Context, cfg *config.Config) rewrite.Provider {
	var providers []rewrite.Provider

	if cfg.GeminiAPIKey != "" {
		gemini, err := rewrite.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("error initializing gemini provider", "error", err)
		} else {
			providers = append(providers, gemini)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, rewrite.NewOpenAIProvider(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, rewrite.NewAnthropicProvider(cfg.AnthropicAPIKey))
	}

	if len(providers) == 0 {
		return nil
	}
	return rewrite.NewChain(providers...)
}
