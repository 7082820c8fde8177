//go:build wireinject
// +build wireinject

package di

import (
	"StockCast/internal/usecase"
	"StockCast/pkg/config"
	"StockCast/pkg/server"

	"github.com/google/wire"
)

var predictorSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvidePriceFetcher,
	ProvideSessions,
	ProvideRegistry,
	ProvideForecastEngine,
	ProvideDecisionPolicy,
	ProvidePredictor,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		predictorSet,

		// Presentation
		ProvideCompanyDirectory,
		ProvideCounterStore,
		ProvideLimiter,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializePredictor wires the prediction pipeline for one-shot CLI runs.
func InitializePredictor(cfg *config.Config) (*usecase.Predictor, func(), error) {
	wire.Build(predictorSet)
	return nil, nil, nil
}
