// Package telereport reports automated test-run results to a Telegram chat.
//
// A Reporter observes the lifecycle of exactly one test run: OnRunBegin
// captures the start time and the suite, OnRunEnd renders a report and
// delivers it through the Telegram Bot API. Delivery is best effort —
// failures are logged, never retried, and never propagate back to the run.
package telereport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/go-telereport/internal/clock"
	"github.com/mrz1836/go-telereport/report"
	"github.com/mrz1836/go-telereport/telegram"
)

// Suite exposes the flat, ordered collection of all tests in a run.
// The test runner owns the implementation; the reporter only reads it.
type Suite interface {
	AllTests() []*report.Test
}

// RunResult is the final run state the runner hands to OnRunEnd.
type RunResult struct {
	Status report.Status
}

// Sender delivers a finished report message.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

// Reporter renders and delivers a report for a single test run. It holds
// no shared mutable state beyond the two per-run fields written at
// OnRunBegin and read at OnRunEnd; instances are not reused across runs.
type Reporter struct {
	cfg    Config
	sender Sender
	clock  clock.Clock
	logger zerolog.Logger

	// per-run state
	runID     string
	startedAt time.Time
	suite     Suite
}

// New creates a Reporter from cfg. The only failing path is a missing
// credential; every other option falls back to a default.
func New(cfg Config) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sender := telegram.NewClient(cfg.Token, cfg.ChatID, cfg.Logger)
	return NewWithDeps(cfg, sender, clock.System{})
}

// NewWithDeps creates a Reporter with a custom sender and clock.
// This is used for testing.
func NewWithDeps(cfg Config, sender Sender, clk clock.Clock) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Reporter{
		cfg:    cfg,
		sender: sender,
		clock:  clk,
		logger: cfg.Logger,
	}, nil
}

// OnRunBegin records the start of a run: the wall-clock start time, the
// suite reference, and a fresh correlation id for diagnostics. It must be
// observed before OnRunEnd.
func (r *Reporter) OnRunBegin(suite Suite) {
	r.runID = uuid.NewString()
	r.startedAt = r.clock.Now()
	r.suite = suite

	r.logger.Debug().
		Str("run_id", r.runID).
		Time("started_at", r.startedAt).
		Msg("test run started")
}

// OnRunEnd renders and delivers the report for a finished run. The method
// runs to completion before returning so the runner can await delivery,
// but delivery failures are logged and swallowed — the run's outcome is
// never altered by them. A run end without a prior run begin is logged
// and performs no delivery.
func (r *Reporter) OnRunEnd(ctx context.Context, result RunResult) {
	if r.suite == nil {
		r.logger.Error().
			Str("status", string(result.Status)).
			Msg("run end observed without run begin, skipping report")
		return
	}

	logger := r.logger.With().
		Str("run_id", r.runID).
		Str("status", string(result.Status)).
		Logger()

	if !shouldSend(r.cfg.SendPolicy, result.Status) {
		logger.Debug().
			Str("policy", string(r.cfg.SendPolicy)).
			Msg("send policy suppressed report")
		return
	}

	snap := &report.Snapshot{
		Status:    result.Status,
		Tests:     r.suite.AllTests(),
		StartedAt: r.startedAt,
		Duration:  r.clock.Now().Sub(r.startedAt),
	}

	var text string
	if r.cfg.Format != nil {
		text = r.cfg.Format(snap)
	} else {
		text = report.Renderer{
			Style:      r.cfg.Style,
			Title:      r.cfg.Title,
			TitleFunc:  r.cfg.TitleFunc,
			TestFormat: r.cfg.TestFormat,
		}.Render(snap)
	}

	if err := r.sender.SendMessage(ctx, text); err != nil {
		logger.Error().
			Err(err).
			Msg("report delivery failed")
		return
	}

	logger.Info().
		Int("message_len", len([]rune(text))).
		Msg("report delivered")
}
