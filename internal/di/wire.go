//go:build wireinject
// +build wireinject

package di

import (
	"FraudGuard/pkg/config"
	"FraudGuard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires the inference API.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Repositories
		ProvideArtifacts,

		// Use cases
		ProvidePredictor,

		// Transport
		ProvideFraudHandler,
		ProvideAPIServer,
		ProvideKafkaProducer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeFormApp wires the transaction form front end.
func InitializeFormApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideFraudClient,
		ProvideFormHandler,
		ProvideFormServer,
		ProvideKafkaProducer,
		ProvideApp,
	)
	return &server.App{}, nil
}
