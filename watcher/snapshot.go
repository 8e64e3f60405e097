package watcher

import (
	"time"

	"github.com/programme-lv/cfwatch/cfapi"
)

type Snapshot struct {
	Handle       string              `json:"handle"`
	Interval     string              `json:"interval"`
	LastSeenID   *cfapi.SubmissionID `json:"last_seen_id"`
	Running      bool                `json:"running"`
	Stopped      bool                `json:"stopped"`
	Ticks        int                 `json:"ticks"`
	SkippedTicks int                 `json:"skipped_ticks"`
	FailedTicks  int                 `json:"failed_ticks"`
	Notified     int                 `json:"notified"`
	LastError    string              `json:"last_error,omitempty"`
	LastVerdict  string              `json:"last_verdict,omitempty"`
	LastPollAt   *time.Time          `json:"last_poll_at,omitempty"`
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		Handle:       w.handle,
		Interval:     w.interval.String(),
		Running:      w.inFlight.Load(),
		Stopped:      w.stopped,
		Ticks:        w.stats.ticks,
		SkippedTicks: w.stats.skipped,
		FailedTicks:  w.stats.failed,
		Notified:     w.stats.notified,
		LastError:    w.stats.lastError,
		LastVerdict:  w.stats.lastVerdict,
	}
	if w.hasLastSeen {
		id := w.lastSeenID
		s.LastSeenID = &id
	}
	if !w.stats.lastPollAt.IsZero() {
		at := w.stats.lastPollAt
		s.LastPollAt = &at
	}
	return s
}
