package http

import (
	"github.com/flowsuite/flow-endpoint/internal/crypto"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/service"
)

type Handler struct {
	services *service.Services
	codec    crypto.EnvelopeCodec

	logger *logger.Logger
}

func NewHandler(services *service.Services, codec crypto.EnvelopeCodec, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		codec:    codec,
		logger:   logger,
	}
}
