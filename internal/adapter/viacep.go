package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/utils"
	"github.com/flowsuite/flow-endpoint/models"
)

type viaCEPAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewViaCEPAdapter constructs the ViaCEP implementation of
// [AddressProvider]. It normalises and validates the base URL from
// addressCfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL, request timeout, and retry policy (5xx and transport
// errors only — a 4xx or an unknown CEP is final).
//
// Returns an error if addressCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewViaCEPAdapter(addressCfg config.Address, logger *logger.Logger) (AddressProvider, error) {
	baseURL, err := normalizeBaseURL(addressCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid address api base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(addressCfg.RequestTimeout).
		SetRetryCount(addressCfg.RetryCount).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &viaCEPAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Lookup implements [AddressProvider]. It GETs /ws/{cep}/json/ and maps the
// upstream "erro" marker (ViaCEP answers 200 for unknown CEPs) to
// [ErrCEPNotFound].
func (v *viaCEPAdapter) Lookup(ctx context.Context, cep string) (models.Address, error) {
	var address models.Address

	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&address).
		Get(fmt.Sprintf("/ws/%s/json/", cep))
	if err != nil {
		return models.Address{}, fmt.Errorf("%w: %v", ErrAddressLookup, err)
	}

	if resp.IsError() {
		v.logger.Error().
			Int("status", resp.StatusCode()).
			Str("cep", cep).
			Msg("address api returned an error status")
		return models.Address{}, fmt.Errorf("%w: status %d", ErrAddressLookup, resp.StatusCode())
	}

	if address.NotFound {
		return models.Address{}, fmt.Errorf("%w: %s", ErrCEPNotFound, cep)
	}

	return address, nil
}
