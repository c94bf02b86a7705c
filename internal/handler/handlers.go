package handler

import (
	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/crypto"
	"github.com/flowsuite/flow-endpoint/internal/handler/http"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, codec crypto.EnvelopeCodec, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, codec, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
