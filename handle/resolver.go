package handle

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/programme-lv/cfwatch/conf"
	"github.com/programme-lv/cfwatch/logger"
	"github.com/programme-lv/cfwatch/notify"
	"github.com/programme-lv/cfwatch/prompt"
	"github.com/programme-lv/cfwatch/srvcerror"
)

const (
	PromptText     = "Please enter your Codeforces handle"
	MissingMessage = "Codeforces handle is required for the extension to work"
)

const ErrCodeHandleMissing = "handle_missing"

func ErrHandleMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeHandleMissing,
		MissingMessage,
	).SetHttpStatusCode(http.StatusPreconditionFailed)
}

type Resolver struct {
	store    conf.Store
	prompter prompt.Prompter
	notifier notify.Notifier

	// override is consulted before the store and never persisted
	override string
}

func NewResolver(store conf.Store, prompter prompt.Prompter, notifier notify.Notifier, override string) *Resolver {
	return &Resolver{
		store:    store,
		prompter: prompter,
		notifier: notifier,
		override: strings.TrimSpace(override),
	}
}

// Resolve returns the configured handle, asking the user once if none is
// stored. On cancel or empty input the user sees an error notification
// and a handle_missing error is returned with an empty handle.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	if r.override != "" {
		log.Debug("using handle from environment", slog.String("handle", r.override))
		return r.override, nil
	}

	stored, ok, err := r.store.Get(conf.KeyHandle)
	if err != nil {
		return "", err
	}
	if stored = strings.TrimSpace(stored); ok && stored != "" {
		return stored, nil
	}

	answer, ok, err := r.prompter.Prompt(ctx, PromptText)
	if err != nil {
		return "", fmt.Errorf("prompt for handle: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if !ok || answer == "" {
		r.notifier.Error(MissingMessage)
		return "", ErrHandleMissing()
	}

	if err := r.store.Set(conf.KeyHandle, answer); err != nil {
		return "", err
	}
	log.Info("saved handle", slog.String("handle", answer))
	return answer, nil
}
