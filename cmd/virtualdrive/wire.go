//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/audit"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/logging"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/virtualdrive"
)

func initializeApp(ctx context.Context, cfg *config.Config, log *logging.Logger) (*App, func(), error) {
	wire.Build(
		NewApp,
		provideLoop,
		provideClient,
		provideDatabase,
		virtualdrive.NewSQLiteStore,
		wire.Bind(new(virtualdrive.Store), new(*virtualdrive.SQLiteStore)),
		provideRecorder,
		provideAuditor,
		wire.Bind(new(virtualdrive.Auditor), new(*audit.SQLiteRepository)),
		provideDriver,
	)
	return nil, nil, nil // wire will generate the result
}
