package threat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"threatingest/internal/common"
	"threatingest/internal/metrics"
)

// Pipeline drives one ingestion invocation: fetch, parse, normalize,
// persist, report. It holds no per-run state and is safe to reuse.
type Pipeline struct {
	fetcher   ObjectFetcher
	store     IndicatorStore
	reporter  MetricsReporter
	publisher SummaryPublisher
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the clock used for ingested_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline wires the collaborators of an ingestion run.
func NewPipeline(fetcher ObjectFetcher, store IndicatorStore, reporter MetricsReporter, publisher SummaryPublisher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		store:     store,
		reporter:  reporter,
		publisher: publisher,
		now:       time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run processes the object named by ref and returns the number of
// indicators written. Records are written one at a time in input order;
// the first failed write aborts the run and earlier writes stay committed.
func (p *Pipeline) Run(ctx context.Context, ref ObjectRef) (processed int, err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		metrics.RunDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	body, err := p.fetcher.Fetch(ctx, ref)
	if err != nil {
		slog.Error("fetch failed", "object", ref.String(), "err", err)
		return 0, fmt.Errorf("%w %s: %w", ErrFetch, ref, err)
	}
	if !utf8.Valid(body) {
		slog.Error("object is not valid utf-8", "object", ref.String())
		return 0, fmt.Errorf("%w: %s is not valid utf-8", ErrDecode, ref)
	}

	records, err := ParseObject(ref.Key, body)
	if err != nil {
		slog.Error("parse failed", "object", ref.String(), "err", err)
		return 0, err
	}

	seen := newSeenSet(len(records))
	for i, rec := range records {
		raw, ok := FirstPresent(rec, ValueKeys...)
		if !ok {
			slog.Warn("skipping record without value", "object", ref.String(), "row", i+1, "fields", rec)
			metrics.IndicatorsSkipped.Inc()
			continue
		}
		itype, ok := FirstPresent(rec, TypeKeys...)
		if !ok {
			itype = DefaultType
		}

		ind := Indicator{
			Value:      NormalizeIndicator(raw),
			Type:       strings.ToLower(strings.TrimSpace(itype)),
			SourceFile: ref.Key,
			IngestedAt: p.now().UTC(),
		}
		if seen.testAndAdd(ind.Value) {
			slog.Debug("indicator repeated within file", "object", ref.String(), "row", i+1, "value", ind.Value)
			metrics.DuplicateIndicators.Inc()
		}

		if err := p.store.Put(ctx, ind); err != nil {
			slog.Error("store failed", "object", ref.String(), "row", i+1, "err", err)
			return processed, fmt.Errorf("%w: row %d of %s: %w", ErrPersist, i+1, ref, err)
		}
		processed++
		metrics.IndicatorsByType.WithLabelValues(common.TypeLabel(ind.Type)).Inc()
	}

	p.reporter.ReportProcessed(ctx, processed)

	if err := p.publisher.PublishSummary(ctx, ref.Key, processed); err != nil {
		slog.Error("summary publication failed", "object", ref.String(), "err", err)
		return processed, err
	}

	slog.Info("processed indicators", "count", processed, "object", ref.String())
	return processed, nil
}
