// Command sachet-fetch runs a single ingestion cycle and prints the batch as
// JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-sachet-alerts/internal/capalert"
	"github.com/mr1hm/go-sachet-alerts/internal/classify"
	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/feed"
	"github.com/mr1hm/go-sachet-alerts/internal/gazetteer"
	"github.com/mr1hm/go-sachet-alerts/internal/ingestion"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/logging"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/observability"
)

type record struct {
	models.Disaster
	Analysis *classify.Analysis `json:"analysis,omitempty"`
}

func main() {
	withAnalysis := flag.Bool("analyze", false, "attach the weighted classification to each record")
	feedURL := flag.String("url", "", "feed URL (overrides FEED_URL)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	if *feedURL != "" {
		cfg.Feed.URL = *feedURL
	}

	// logs go to stderr so stdout stays valid JSON
	slog.SetDefault(logging.New(cfg.Logging.Level, os.Stderr))
	slog.Debug("fetching feed", "url", cfg.Feed.FetchURL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := livefilter.New(clockwork.NewRealClock(), cfg.Location())
	gaz := gazetteer.Default()
	parser := feed.NewParser(gaz, capalert.NewParser(gaz, filter), filter)
	orch := ingestion.NewOrchestrator(cfg.Feed, parser, filter, observability.NewMetrics())

	batch := orch.FetchAllDisasters(ctx)

	out := make([]record, 0, len(batch))
	for _, d := range batch {
		r := record{Disaster: d}
		if *withAnalysis {
			a := classify.Analyze(d)
			r.Analysis = &a
		}
		out = append(out, r)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logging.Fatalf("error encoding batch: %v", err)
	}
}
