package bootstrap

import (
	"context"

	"escrow-market/internal/infra/eventlog"
	"escrow-market/internal/pkg/config"

	"go.uber.org/fx"
)

var EventLogModule = fx.Module("eventlog",
	fx.Provide(
		NewEventJournal,
	),
)

func NewEventJournal(lc fx.Lifecycle, cfg config.Config) (*eventlog.Journal, error) {
	journal, err := eventlog.Open(cfg.EventLog.Path)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return journal.Close()
		},
	})

	return journal, nil
}
