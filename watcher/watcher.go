// Package watcher polls a handle's latest submissions on a fixed interval
// and reports when a new submission gets a final verdict.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/programme-lv/cfwatch/cfapi"
	"github.com/programme-lv/cfwatch/handle"
	"github.com/programme-lv/cfwatch/logger"
)

// SubmissionCount is how many submissions are requested per poll. Only
// the newest is inspected.
const SubmissionCount = 5

type Fetcher interface {
	LatestSubmissions(ctx context.Context, handle string, count int) ([]cfapi.Submission, error)
}

type Config struct {
	Handle          string
	Interval        time.Duration
	Fetcher         Fetcher
	OnVerdictChange func(message string)
	OnError         func(err error)
	Logger          *slog.Logger
}

type Watcher struct {
	handle    string
	interval  time.Duration
	fetcher   Fetcher
	onVerdict func(string)
	onError   func(error)
	log       *slog.Logger

	inFlight atomic.Bool
	polls    sync.WaitGroup

	mu          sync.Mutex
	lastSeenID  cfapi.SubmissionID
	hasLastSeen bool
	gen         uint64 // bumped by Stop; polls from an older gen are discarded
	started     bool
	stopped     bool
	cancel      context.CancelFunc
	loopDone    chan struct{}
	stats       stats
}

type stats struct {
	ticks       int
	skipped     int
	failed      int
	notified    int
	lastError   string
	lastPollAt  time.Time
	lastVerdict string
}

var ErrAlreadyStarted = errors.New("watcher already started or stopped")

// New refuses an empty handle instead of polling with it.
func New(cfg Config) (*Watcher, error) {
	h := strings.TrimSpace(cfg.Handle)
	if h == "" {
		return nil, handle.ErrHandleMissing()
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("watcher needs a fetcher")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", cfg.Interval)
	}

	w := &Watcher{
		handle:    h,
		interval:  cfg.Interval,
		fetcher:   cfg.Fetcher,
		onVerdict: cfg.OnVerdictChange,
		onError:   cfg.OnError,
		log:       cfg.Logger,
	}
	if w.log == nil {
		w.log = slog.Default()
	}
	w.log = w.log.With(slog.String("handle", h))
	if w.onVerdict == nil {
		w.onVerdict = func(string) {}
	}
	if w.onError == nil {
		w.onError = func(err error) {
			w.log.Warn("failed to fetch codeforces submissions", slog.Any("error", err))
		}
	}
	return w, nil
}

// Start launches the ticker. Each tick polls in its own goroutine so the
// schedule stays fixed; a tick that fires while the previous poll is
// still running is skipped. Failed polls are retried by the next tick.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return ErrAlreadyStarted
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.loopDone = make(chan struct{})

	go w.loop(ctx)
	w.log.Info("started watching submissions", slog.Duration("interval", w.interval))
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.loopDone)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.polls.Add(1)
			go func() {
				defer w.polls.Done()
				w.Poll(ctx)
			}()
		}
	}
}

// Stop clears the ticker and cancels an in-flight fetch. Whatever that
// fetch returns afterwards is dropped. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.gen++
	cancel, loopDone := w.cancel, w.loopDone
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-loopDone
	}
	w.polls.Wait()
	w.log.Info("stopped watching submissions")
}

// Poll runs a single tick. It returns false when the tick was skipped
// because another poll was still running.
func (w *Watcher) Poll(ctx context.Context) bool {
	if !w.inFlight.CompareAndSwap(false, true) {
		w.mu.Lock()
		w.stats.skipped++
		w.mu.Unlock()
		w.log.Debug("skipping tick, previous poll still running")
		return false
	}
	defer w.inFlight.Store(false)

	ctx = logger.WithTickID(logger.WithLogger(ctx, w.log))
	log := logger.FromContext(ctx)

	w.mu.Lock()
	gen := w.gen
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return true
	}

	subms, err := w.fetcher.LatestSubmissions(ctx, w.handle, SubmissionCount)

	w.mu.Lock()
	if gen != w.gen || (err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled)) {
		w.mu.Unlock()
		log.Debug("discarding poll result after stop")
		return true
	}
	w.stats.ticks++
	w.stats.lastPollAt = time.Now()
	if err != nil {
		w.stats.failed++
		w.stats.lastError = err.Error()
		w.mu.Unlock()
		w.onError(err)
		return true
	}
	w.stats.lastError = ""
	msg, changed := w.observe(subms)
	if changed {
		w.stats.notified++
		w.stats.lastVerdict = msg
	}
	w.mu.Unlock()

	if changed {
		log.Info("verdict changed", slog.String("message", msg))
		w.onVerdict(msg)
	}
	return true
}

// observe applies the newest submission to the state. Callers hold w.mu.
func (w *Watcher) observe(subms []cfapi.Submission) (string, bool) {
	if len(subms) == 0 {
		return "", false
	}
	latest := subms[0]

	if !w.hasLastSeen {
		w.lastSeenID = latest.ID
		w.hasLastSeen = true
		return "", false
	}

	if latest.Verdict != cfapi.VerdictTesting &&
		latest.ID != w.lastSeenID &&
		latest.Verdict != cfapi.VerdictUndefined {
		w.lastSeenID = latest.ID
		return FormatVerdict(latest), true
	}
	return "", false
}

// FormatVerdict renders "<index>-<name>: <verdict>". A submission
// without a verdict field is rendered as "undefined".
func FormatVerdict(s cfapi.Submission) string {
	verdict := s.Verdict
	if verdict == "" {
		verdict = cfapi.VerdictUndefined
	}
	return fmt.Sprintf("%s-%s: %s", s.Problem.Index, s.Problem.Name, verdict)
}
