// Package coach ties the workout log to the model: it fetches recent history
// for a plan and appends session results.
package coach

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaronromeo/powerbuilder/internal/history"
	"github.com/aaronromeo/powerbuilder/internal/id"
	"github.com/aaronromeo/powerbuilder/internal/llm"
	"github.com/aaronromeo/powerbuilder/internal/logbook"
	"github.com/aaronromeo/powerbuilder/internal/metrics"
)

var ErrEmptyLog = errors.New("log text is empty")

// Planner produces a markdown plan from the form choices and history text.
type Planner interface {
	Plan(ctx context.Context, req llm.PlanRequest, history string) (string, error)
}

type Service struct {
	store   logbook.Store
	planner Planner
	now     func() time.Time
	limit   int
	logger  *slog.Logger
	metrics *metrics.Manager
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		s.limit = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store logbook.Store, planner Planner, opts ...Option) *Service {
	s := &Service{
		store:   store,
		planner: planner,
		now:     time.Now,
		limit:   history.DefaultLimit,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan is one generated dashboard.
type Plan struct {
	ID       string
	Markdown string
	// History is the text that was sent as context.
	History string
}

// FetchHistory returns the formatted tail of the log, or a sentence
// describing why it could not be read.
func (s *Service) FetchHistory(ctx context.Context) string {
	r := &watchedReader{Reader: s.store}
	out := history.FetchRecent(ctx, r, s.limit)

	switch {
	case r.err != nil:
		s.logger.Warn("history read failed", "err", r.err)
		s.metrics.HistoryFetched(metrics.OutcomeError)
	case out == history.NoHistory:
		s.metrics.HistoryFetched(metrics.OutcomeEmpty)
	default:
		s.metrics.HistoryFetched(metrics.OutcomeOK)
	}
	return out
}

// GeneratePlan fetches history, then asks the model for today's dashboard.
// A history failure does not stop generation.
func (s *Service) GeneratePlan(ctx context.Context, req llm.PlanRequest) (Plan, error) {
	hist := s.FetchHistory(ctx)

	start := s.now()
	md, err := s.planner.Plan(ctx, req, hist)
	took := s.now().Sub(start)
	if err != nil {
		s.metrics.PlanGenerated(metrics.OutcomeError, took)
		return Plan{History: hist}, err
	}
	s.metrics.PlanGenerated(metrics.OutcomeOK, took)

	date := start.Format(logbook.DateLayout)
	p := Plan{
		ID:       id.PlanID(date, req.Workout, []byte(date+req.Gym+req.Workout+req.Notes)),
		Markdown: md,
		History:  hist,
	}
	s.logger.Info("plan generated", "plan_id", p.ID, "gym", req.Gym, "workout", req.Workout)
	return p, nil
}

// SaveLog appends one row dated today. Empty text is rejected before the
// store is touched; any other text, whitespace included, is stored as is.
func (s *Service) SaveLog(ctx context.Context, gym, workout, text string) (logbook.LogRow, error) {
	if text == "" {
		s.metrics.LogSaved(metrics.OutcomeEmpty)
		return logbook.LogRow{}, ErrEmptyLog
	}
	row := logbook.LogRow{
		Date:    s.now().Format(logbook.DateLayout),
		Gym:     gym,
		Workout: workout,
		Result:  text,
	}
	if err := s.store.Append(ctx, row.Values()); err != nil {
		s.logger.Error("log save failed", "workout", workout, "err", err)
		s.metrics.LogSaved(metrics.OutcomeError)
		return logbook.LogRow{}, err
	}
	s.logger.Info("log saved", "date", row.Date, "gym", gym, "workout", workout, "bytes", len(text))
	s.metrics.LogSaved(metrics.OutcomeOK)
	return row, nil
}

type watchedReader struct {
	logbook.Reader
	err error
}

func (w *watchedReader) Rows(ctx context.Context) ([][]string, error) {
	rows, err := w.Reader.Rows(ctx)
	w.err = err
	return rows, err
}
