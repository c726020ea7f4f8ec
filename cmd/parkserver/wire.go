//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/config"
	"github.com/cory-johannsen/parksim/internal/server"
)

func initLifecycle(ctx context.Context, cfg config.Config, logger *zap.Logger) (*server.Lifecycle, func(), error) {
	wire.Build(serverSet)
	return nil, nil, nil
}
