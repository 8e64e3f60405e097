package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/programme-lv/cfwatch/cfapi"
	"github.com/programme-lv/cfwatch/conf"
	"github.com/programme-lv/cfwatch/handle"
	"github.com/programme-lv/cfwatch/logger"
	"github.com/programme-lv/cfwatch/notify"
	"github.com/programme-lv/cfwatch/prompt"
)

func main() {
	settings, err := conf.LoadSettings(".env")
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, settings.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	recent := notify.NewBroadcaster(recentNotifications)
	deps := deps{
		settings: settings,
		store:    conf.NewFileStore(settings.ConfigDir),
		prompter: prompt.NewTerminal(os.Stdin, os.Stdout),
		notifier: notify.Multi{notify.NewTerminal(os.Stdout), recent},
		recent:   recent,
		fetcher: cfapi.NewClient(
			cfapi.WithBaseURL(settings.ApiBaseURL),
			cfapi.WithTimeout(settings.HttpTimeout),
		),
	}

	sess, err := activate(ctx, deps)
	if err != nil {
		if !errors.Is(err, handle.ErrHandleMissing()) {
			log.Error("failed to activate", "error", err)
		}
		os.Exit(1)
	}

	<-ctx.Done()
	sess.deactivate()
}
