package main

import (
	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/events"
	"github.com/lutfiEmre/todolist/internal/events/bus"
)

func provideEventBus(cfg *config.Config, log *logger.Logger) (bus.EventBus, func() error, error) {
	provider, cleanup, err := events.Provide(cfg.NATS, log)
	if err != nil {
		return nil, nil, err
	}
	return provider.Bus, cleanup, nil
}
