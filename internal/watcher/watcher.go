// Package watcher polls logged metrics in the background and raises alerts
// when new high or medium priority suggestions appear.
package watcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/daypattern/internal/store"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// Source provides the recent metrics the watcher summarizes.
type Source interface {
	RecentMetrics(ctx context.Context, days int, now time.Time) ([]store.Record, error)
}

// WatchState captures the suggestions in effect at one poll.
type WatchState struct {
	Timestamp   time.Time
	Samples     int
	LatestDay   string // most recent logged day, empty when the window has no data
	Summary     suggest.MetricSummary
	Suggestions []suggest.Suggestion
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher polls a Source at a regular interval and emits alerts when the
// ranked suggestions change.
type Watcher struct {
	source        Source
	engine        *suggest.Engine
	windowDays    int
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
	log           *zap.Logger
	now           func() time.Time
}

// New creates a Watcher over the last windowDays of metrics from source.
func New(source Source, engine *suggest.Engine, windowDays int, interval time.Duration, alertFn func(Alert), log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		source:        source,
		engine:        engine,
		windowDays:    windowDays,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		log:           log.Named("watcher"),
		now:           time.Now,
	}
}

// Run checks once immediately, then at every interval. Blocks until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.emit(w.Check(ctx))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.emit(w.Check(ctx))
		}
	}
}

func (w *Watcher) emit(alerts []Alert) {
	for _, a := range alerts {
		w.log.Info("alert", zap.String("level", a.Level), zap.String("title", a.Title))
		if w.alertFn != nil {
			w.alertFn(a)
		}
	}
}

// Check performs a single poll: takes a new snapshot, compares it against
// the previous one and returns any alerts. Identical alerts are suppressed
// until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		w.log.Warn("snapshot failed", zap.Error(err))
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read logged metrics: %v", err),
			Time:    w.now(),
		}}
	}

	raw := Compare(w.previous, curr)

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot summarizes the current window and runs the engine over it.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	now := w.now()
	state := &WatchState{Timestamp: now}

	records, err := w.source.RecentMetrics(ctx, w.windowDays, now)
	if err != nil {
		return nil, fmt.Errorf("reading metrics: %w", err)
	}
	if len(records) == 0 {
		return state, nil
	}

	summary, err := suggest.Aggregate(store.Metrics(records))
	if err != nil {
		return nil, err
	}
	state.Samples = summary.Samples
	state.Summary = summary
	state.LatestDay = records[len(records)-1].Day()
	state.Suggestions = w.engine.SuggestSummary(summary)

	w.log.Debug("snapshot",
		zap.Int("samples", state.Samples),
		zap.Int("suggestions", len(state.Suggestions)),
	)
	return state, nil
}
