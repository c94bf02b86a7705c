package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/flowsuite/flow-endpoint/internal/adapter"
	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/crypto"
	"github.com/flowsuite/flow-endpoint/internal/handler"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/server"
	"github.com/flowsuite/flow-endpoint/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is not an error outside local development
	_ = godotenv.Load()

	log := logger.NewLogger("flow-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// secrets stay out of the logs; addresses are enough to debug wiring
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("address_base_url", cfg.Address.BaseURL).
		Msg("received configs")

	privateKey, err := crypto.LoadPrivateKey(cfg.Security.PrivateKeyPath, cfg.Security.PrivateKeyPassphrase)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading RSA private key")
	}

	codec, err := crypto.NewEnvelopeCodec(privateKey, cfg.Security.AppSecret, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating envelope codec")
	}

	addressProvider, err := adapter.NewViaCEPAdapter(cfg.Address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating address lookup adapter")
	}

	services := service.NewServices(addressProvider, cfg, log)

	handlers, err := handler.NewHandlers(services, codec, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
