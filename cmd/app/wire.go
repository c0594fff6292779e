//go:build wireinject
// +build wireinject

package main

import (
	"voxrelay/config"
	"voxrelay/internal/command"
	"voxrelay/internal/cron"
	"voxrelay/internal/database"
	"voxrelay/internal/handler"
	"voxrelay/internal/middleware"
	"voxrelay/internal/router"
	"voxrelay/internal/service"
	"voxrelay/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			newHttpClient,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			command.ProviderSet,
		),
	)
}
