//go:build wireinject
// +build wireinject

package di

import (
	"esv/internal"
	"esv/internal/controllers"
	"esv/internal/providers"
	"esv/internal/scheduler"
	"esv/internal/services"
	"esv/internal/structures"
	"esv/internal/viewmodel"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewZstdCompressor,
		providers.NewFormatterProvider,

		viewmodel.NewBuilder,
		services.NewDashboardService,
		controllers.NewDashboardController,
		controllers.NewHealthController,
		scheduler.NewScheduler,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
