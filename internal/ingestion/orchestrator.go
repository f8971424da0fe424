package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/feed"
	"github.com/mr1hm/go-sachet-alerts/internal/livefilter"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
	"github.com/mr1hm/go-sachet-alerts/internal/observability"
)

const acceptHeader = "application/rss+xml, application/xml, text/xml, */*"

// Fetch outcomes recorded on the feed_fetch_total counter.
const (
	outcomeSuccess        = "success"
	outcomeTransportError = "transport_error"
	outcomeHTTPError      = "http_error"
	outcomeParseError     = "parse_error"
)

// Orchestrator runs one fetch-parse-filter-dedup cycle against the feed.
type Orchestrator struct {
	cfg     config.FeedConfig
	client  *http.Client
	base    *http.Client
	parser  *feed.Parser
	filter  *livefilter.Filter
	metrics *observability.Metrics
}

func NewOrchestrator(cfg config.FeedConfig, parser *feed.Parser, filter *livefilter.Filter, metrics *observability.Metrics) *Orchestrator {
	rC := retryablehttp.NewClient()
	rC.Logger = nil
	rC.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rC.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rC.RetryWaitMax = cfg.RetryWaitMax
	}
	rC.HTTPClient.Timeout = cfg.Timeout
	// hand the final response back so status errors are reported as such
	rC.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Orchestrator{
		cfg:     cfg,
		client:  rC.StandardClient(),
		base:    rC.HTTPClient,
		parser:  parser,
		filter:  filter,
		metrics: metrics,
	}
}

// FetchAllDisasters never fails: every fetch or parse error is logged and
// yields an empty batch.
func (o *Orchestrator) FetchAllDisasters(ctx context.Context) []models.Disaster {
	batch, err := o.Fetch(ctx)
	if err != nil {
		return []models.Disaster{}
	}
	return batch
}

// Fetch runs one cycle and reports fetch and parse failures, so callers
// holding an earlier batch can tell a failed cycle from an empty feed. The
// failure is already logged and counted when it is returned.
func (o *Orchestrator) Fetch(ctx context.Context) ([]models.Disaster, error) {
	body, outcome, err := o.fetchBody(ctx)
	if err != nil {
		o.metrics.FetchTotal.WithLabelValues(outcome).Inc()
		slog.Error("feed fetch failed", "url", o.cfg.URL, "outcome", outcome, "error", err)
		return nil, err
	}

	parsed, err := o.parser.Parse(body)
	if err != nil {
		o.metrics.FetchTotal.WithLabelValues(outcomeParseError).Inc()
		slog.Error("feed parse failed", "url", o.cfg.URL, "bytes", len(body), "error", err)
		return nil, err
	}
	o.metrics.FetchTotal.WithLabelValues(outcomeSuccess).Inc()

	live := o.filter.Apply(parsed)
	unique := livefilter.Dedup(live)

	o.metrics.RecordsDropped.WithLabelValues("not_live").Add(float64(len(parsed) - len(live)))
	o.metrics.RecordsDropped.WithLabelValues("duplicate").Add(float64(len(live) - len(unique)))

	slog.Info("feed processed",
		"parsed", len(parsed),
		"live", len(live),
		"delivered", len(unique),
	)
	return unique, nil
}

func (o *Orchestrator) fetchBody(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.FetchURL(), nil)
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, outcomeHTTPError, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("error reading resp.Body: %w", err)
	}
	return body, outcomeSuccess, nil
}

// CloseIdleConnections releases pooled feed connections.
func (o *Orchestrator) CloseIdleConnections() {
	o.base.CloseIdleConnections()
}
