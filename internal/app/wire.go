//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/vocdrill/internal/adapter/httpapi"
	adapterrepo "github.com/eslsoft/vocdrill/internal/adapter/repository"
	"github.com/eslsoft/vocdrill/internal/infrastructure/config"
	"github.com/eslsoft/vocdrill/internal/infrastructure/database"
	"github.com/eslsoft/vocdrill/internal/infrastructure/server"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewVocabSetRepository,
	adapterrepo.NewMemoryRecordRepository,
	adapterrepo.NewPracticeSessionRepository,
)

var usecaseSet = wire.NewSet(
	providePracticeUsecase,
)

var serviceSet = wire.NewSet(
	httpapi.NewPracticeService,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
