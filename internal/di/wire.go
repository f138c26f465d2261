//go:build wireinject
// +build wireinject

package di

import (
	"StockSage/pkg/config"
	"StockSage/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Logging and metrics
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories (with business logic)
		ProvideBarStorage,
		ProvideBarPublisher,
		ProvideBarStore,
		ProvideMarketStream,
		ProvideHistory,

		// Use cases
		ProvideBarProcessor,
		ProvideBarCollector,
		ProvideKafkaBarsHandler,
		ProvideAdvisorUseCase,
		ProvideBarsUseCase,
		ProvideScanUseCase,
		ProvideBackfillUseCase,
		ProvideScanQueue,

		// HTTP surface
		ProvideEvaluationCache,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
