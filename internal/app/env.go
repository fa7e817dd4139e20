package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/daypattern/internal/config"
	"github.com/blackwell-systems/daypattern/internal/logging"
	"github.com/blackwell-systems/daypattern/internal/output"
	"github.com/blackwell-systems/daypattern/internal/store"
	"github.com/blackwell-systems/daypattern/internal/suggest"
)

// env is what every command needs after flags are parsed.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *suggest.Engine
}

// loadEnv loads config, builds the logger and engine, and applies the color
// preference.
func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	output.ConfigureColor(flagNoColor, cfg.Output.Color)
	output.SetWidth(cfg.Output.Width)

	log, err := logging.New(cfg.LogLevel, flagVerbose)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	log.Debug("config loaded",
		zap.String("db", cfg.DBPath),
		zap.Int("window_days", cfg.WindowDays),
		zap.Int("advisories", len(cfg.Advisories)),
	)
	return &env{cfg: cfg, log: log, engine: engine}, nil
}

func (e *env) openStore() (*store.DB, error) {
	db, err := store.Open(e.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}

// buildEngine compiles the configured advisories onto the built-in rules.
func buildEngine(cfg *config.Config) (*suggest.Engine, error) {
	defs := make([]suggest.AdvisoryDef, len(cfg.Advisories))
	for i, a := range cfg.Advisories {
		defs[i] = suggest.AdvisoryDef{Name: a.Name, When: a.When, Message: a.Message}
	}
	extra, err := suggest.CompileAdvisories(defs)
	if err != nil {
		return nil, fmt.Errorf("compiling advisories: %w", err)
	}
	return suggest.NewEngine(extra...), nil
}

// parseDay parses a YYYY-MM-DD flag value. Empty means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" || s == "today" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if s == "yesterday" {
		return parseDay("", now.AddDate(0, 0, -1))
	}
	t, err := time.Parse(suggest.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
