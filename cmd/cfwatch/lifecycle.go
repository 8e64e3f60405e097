package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/programme-lv/cfwatch/conf"
	"github.com/programme-lv/cfwatch/handle"
	"github.com/programme-lv/cfwatch/logger"
	"github.com/programme-lv/cfwatch/notify"
	"github.com/programme-lv/cfwatch/prompt"
	"github.com/programme-lv/cfwatch/statushttp"
	"github.com/programme-lv/cfwatch/watcher"
)

const recentNotifications = 20

type deps struct {
	settings conf.Settings
	store    conf.Store
	prompter prompt.Prompter
	notifier notify.Notifier
	recent   *notify.Broadcaster
	fetcher  watcher.Fetcher
}

type session struct {
	watcher      *watcher.Watcher
	cancelStatus context.CancelFunc
	statusDone   sync.WaitGroup
}

// activate resolves the handle, confirms it to the user and starts the
// watcher. With no handle the watcher is not started at all.
func activate(ctx context.Context, d deps) (*session, error) {
	log := logger.FromContext(ctx)

	resolver := handle.NewResolver(d.store, d.prompter, d.notifier, d.settings.HandleOverride)
	h, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	d.notifier.Info(h)

	w, err := watcher.New(watcher.Config{
		Handle:          h,
		Interval:        d.settings.PollInterval,
		Fetcher:         d.fetcher,
		OnVerdictChange: d.notifier.Info,
		OnError: func(err error) {
			log.Warn("failed to fetch codeforces submissions", slog.Any("error", err))
		},
		Logger: log,
	})
	if err != nil {
		return nil, err
	}
	// deactivate owns the watcher's cancellation
	if err := w.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}

	s := &session{watcher: w}
	if d.settings.StatusAddr != "" {
		statusCtx, cancel := context.WithCancel(ctx)
		s.cancelStatus = cancel
		srv := statushttp.NewServer(w, d.recent, logger.ParseLevel(d.settings.LogLevel))
		s.statusDone.Add(1)
		go func() {
			defer s.statusDone.Done()
			err := srv.Serve(statusCtx, d.settings.StatusAddr)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("status server failed", slog.Any("error", err))
			}
		}()
	}
	return s, nil
}

func (s *session) deactivate() {
	s.watcher.Stop()
	if s.cancelStatus != nil {
		s.cancelStatus()
		s.statusDone.Wait()
	}
}
