package prober

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/angeloszaimis/ping-url/internal/metrics"
)

// maxDrain caps how much of a response body is read before closing it.
const maxDrain = 64 << 10

// Config describes one probe. It is built once at startup and not modified.
type Config struct {
	URL       string
	Delay     time.Duration
	MaxTrials int
	// Timeout bounds a single attempt. Zero leaves attempts unbounded.
	Timeout time.Duration
}

// Prober checks whether a URL answers 200 OK within a trial budget.
type Prober struct {
	cfg     Config
	client  *http.Client
	sleeper Sleeper
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Prober)

func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		p.client = client
	}
}

func WithSleeper(sleeper Sleeper) Option {
	return func(p *Prober) {
		p.sleeper = sleeper
	}
}

// WithMetrics records attempts into m instead of a private instance.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Prober) {
		p.metrics = m
	}
}

// New creates a Prober for cfg. Without options it uses a plain http.Client
// and sleeps on the real clock.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Prober {
	p := &Prober{
		cfg:     cfg,
		client:  &http.Client{},
		sleeper: NewClockSleeper(clockwork.NewRealClock()),
		metrics: metrics.NewMetrics(),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Metrics returns the statistics recorded by this prober.
func (p *Prober) Metrics() *metrics.Metrics {
	return p.metrics
}

// Probe issues GET requests until the URL answers 200 OK or MaxTrials
// failed trials have been spent. Each failed trial is followed by Delay.
// The returned error is non-nil only when the probe was interrupted by ctx
// or hit an error that is not retried.
func (p *Prober) Probe(ctx context.Context) (bool, error) {
	for trial := 1; trial <= p.cfg.MaxTrials; trial++ {
		start := time.Now()
		status, err := p.attempt(ctx)
		duration := time.Since(start)

		if ctxErr := ctx.Err(); ctxErr != nil {
			p.logger.Warn("Probe interrupted",
				slog.String("url", p.cfg.URL),
				slog.Any("error", ctxErr))
			return false, ctxErr
		}

		if err == nil {
			p.metrics.RecordAttempt("reachable", duration, status)
			p.metrics.SetReachable(true)
			p.logger.Info("Website is reachable",
				slog.String("url", p.cfg.URL),
				slog.Int("trial", trial))
			return true, nil
		}

		kind := Classify(err)
		p.metrics.RecordAttempt(kind.String(), duration, status)

		if !kind.Retryable() {
			p.logger.Error("Probe aborted",
				slog.String("url", p.cfg.URL),
				slog.Any("error", err))
			return false, fmt.Errorf("probing %s: %w", p.cfg.URL, err)
		}

		p.metrics.RecordTrial()
		p.logRetry(kind, trial, err)

		if err := p.sleeper.Sleep(ctx, p.cfg.Delay); err != nil {
			p.logger.Warn("Probe interrupted",
				slog.String("url", p.cfg.URL),
				slog.Any("error", err))
			return false, err
		}
	}

	p.logger.Warn("Website is not reachable",
		slog.String("url", p.cfg.URL),
		slog.Int("max_trials", p.cfg.MaxTrials))

	return false, nil
}

func (p *Prober) attempt(ctx context.Context) (int, error) {
	if err := checkURL(p.cfg.URL); err != nil {
		return 0, err
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrain))

	if res.StatusCode != http.StatusOK {
		return res.StatusCode, &StatusError{StatusCode: res.StatusCode}
	}

	return res.StatusCode, nil
}

func (p *Prober) logRetry(kind Kind, trial int, err error) {
	attrs := []any{
		slog.String("url", p.cfg.URL),
		slog.Int("trial", trial),
		slog.Int("max_trials", p.cfg.MaxTrials),
		slog.Duration("delay", p.cfg.Delay),
		slog.Any("error", err),
	}

	switch kind {
	case KindMalformedURL:
		p.logger.Warn("Invalid URL format, retrying", attrs...)
	case KindNonSuccessResponse:
		p.logger.Warn("Unexpected status, retrying", attrs...)
	default:
		p.logger.Warn("Error pinging URL, retrying", attrs...)
	}
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	if u.Scheme == "" {
		return fmt.Errorf("%w: no scheme supplied in %q", ErrMalformedURL, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: no host supplied in %q", ErrMalformedURL, raw)
	}

	return nil
}
