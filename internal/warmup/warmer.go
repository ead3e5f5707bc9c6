package warmup

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/terra-clan/levelup-web/pkg/client"
)

// DefaultPath is a cheap public endpoint of the backend
const DefaultPath = "/cadastro/empresa/lista"

// Requester is the part of the backend client the warmer uses
type Requester interface {
	Request(ctx context.Context, endpoint string, opts client.RequestOptions) client.Result[client.Body]
}

// Status is the outcome of the last ping
type Status struct {
	At       time.Time     `json:"at"`
	OK       bool          `json:"ok"`
	HTTP     int           `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Warmer pings the backend periodically so a hosted instance that sleeps
// when idle stays awake
type Warmer struct {
	backend  Requester
	path     string
	interval time.Duration

	mu   sync.RWMutex
	last *Status
}

// NewWarmer creates a new warm-up worker
func NewWarmer(backend Requester, path string, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if path == "" {
		path = DefaultPath
	}

	return &Warmer{
		backend:  backend,
		path:     path,
		interval: interval,
	}
}

// Run pings immediately and then once per interval until ctx is done
func (w *Warmer) Run(ctx context.Context) error {
	slog.Info("warmup worker started", "interval", w.interval, "path", w.path)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.ping(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("warmup worker stopped")
			return nil
		case <-ticker.C:
			w.ping(ctx)
		}
	}
}

// Last returns the outcome of the most recent ping, nil before the first
func (w *Warmer) Last() *Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.last == nil {
		return nil
	}
	s := *w.last
	return &s
}

// ping issues a single request. Failures are logged and left to the next
// tick.
func (w *Warmer) ping(ctx context.Context) {
	start := time.Now()
	res := w.backend.Request(ctx, w.path, client.RequestOptions{Method: http.MethodGet})

	status := &Status{
		At:       start,
		OK:       res.OK(),
		HTTP:     res.Status,
		Error:    res.Err,
		Duration: time.Since(start),
	}

	w.mu.Lock()
	w.last = status
	w.mu.Unlock()

	if !res.OK() {
		slog.Warn("backend warmup failed",
			"path", w.path,
			"status", res.Status,
			"kind", res.Kind().String(),
			"error", res.Err,
			"duration_ms", status.Duration.Milliseconds(),
		)
		return
	}

	slog.Debug("backend warm", "path", w.path, "status", res.Status, "duration_ms", status.Duration.Milliseconds())
}
