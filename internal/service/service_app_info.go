package service

import (
	"context"

	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/logger"
)

type appInfoService struct {
	version string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		version: cfg.Version,
		logger:  logger,
	}
}

// GetAppVersion implements [AppInfoService]. It returns the configured
// application version, or "N/A" when no version was set at build time.
func (a *appInfoService) GetAppVersion(_ context.Context) string {
	if a.version == "" {
		return "N/A"
	}

	return a.version
}
