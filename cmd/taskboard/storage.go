package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/persistence"
	"github.com/lutfiEmre/todolist/internal/seed"
	"github.com/lutfiEmre/todolist/internal/store"
)

// provideStore opens the configured record store and, when seedPath is set,
// imports the seed board into it. A store that already has data is left alone.
func provideStore(ctx context.Context, cfg *config.Config, log *logger.Logger, seedPath string) (store.Store, func() error, error) {
	s, cleanup, err := persistence.Provide(ctx, cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open record store: %w", err)
	}
	if seedPath == "" {
		return s, cleanup, nil
	}

	board, err := seed.LoadFile(seedPath)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	switch err := seed.Import(ctx, s, board, log); {
	case errors.Is(err, seed.ErrNotEmpty):
		log.Warn("Store already has data, seed skipped", zap.String("seed", seedPath))
	case err != nil:
		_ = cleanup()
		return nil, nil, fmt.Errorf("failed to seed store: %w", err)
	}
	return s, cleanup, nil
}
