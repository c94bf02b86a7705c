package service

import (
	"github.com/flowsuite/flow-endpoint/internal/adapter"
	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/logger"
)

type Services struct {
	FlowRouter     FlowRouter
	AppInfoService AppInfoService
}

func NewServices(addressProvider adapter.AddressProvider, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		FlowRouter:     NewFlowRouter(addressProvider, cfg.App, logger),
		AppInfoService: NewAppInfoService(cfg.App, logger),
	}
}
