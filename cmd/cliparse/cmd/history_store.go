package cmd

import (
	"context"

	mdwlog "github.com/msto63/cliparse/foundation/core/log"
	"github.com/msto63/cliparse/internal/history"
)

// openHistory opens the configured history store. It returns nil when the
// history is disabled.
func openHistory(ctx context.Context) (history.Store, error) {
	if appConfig.History.Disabled {
		return nil, nil
	}
	return history.Open(ctx, history.Config{
		Path:        appConfig.History.Path,
		BusyTimeout: appConfig.History.BusyTimeout.Duration,
	})
}

// recordHistory stores entries and trims the history to its limit. Failures
// are logged, never returned: a broken history must not fail tokenizing.
func recordHistory(ctx context.Context, entries []*history.Entry) {
	store, err := openHistory(ctx)
	if err != nil {
		logger.WarnWithErr("History unavailable", err, mdwlog.Fields{
			"path": appConfig.History.Path,
		})
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	for _, e := range entries {
		if err := store.Add(ctx, e); err != nil {
			logger.LogError(err)
			return
		}
	}

	pruned, err := store.Prune(ctx, appConfig.History.Limit)
	if err != nil {
		logger.LogError(err)
		return
	}
	if pruned > 0 {
		logger.Debug("History pruned", mdwlog.Fields{"deleted": pruned})
	}
}
