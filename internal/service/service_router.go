package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowsuite/flow-endpoint/internal/adapter"
	"github.com/flowsuite/flow-endpoint/internal/config"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/utils"
	"github.com/flowsuite/flow-endpoint/internal/validators"
	"github.com/flowsuite/flow-endpoint/models"
)

// Screens of the reference flow: a welcome page, an address form backed by
// the CEP lookup, a confirmation summary, and the terminal success screen.
const (
	ScreenWelcome = "WELCOME"
	ScreenAddress = "ADDRESS"
	ScreenSummary = "SUMMARY"
	ScreenSuccess = "SUCCESS"
)

// flowRouter is the concrete implementation of [FlowRouter]. It owns screen
// transitions only; all cryptography stays in the envelope codec and all
// outbound HTTP in the address adapter.
type flowRouter struct {
	addressProvider adapter.AddressProvider
	validator       validators.Validator

	// tokenSignKey enables flow token validation when non-empty. The
	// token travels as an opaque string otherwise.
	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

// NewFlowRouter constructs a [FlowRouter] wired to the given address
// provider and populated with flow token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewFlowRouter(addressProvider adapter.AddressProvider, cfg config.App, logger *logger.Logger) FlowRouter {
	return &flowRouter{
		addressProvider: addressProvider,
		validator:       validators.NewFlowRequestValidator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		logger:          logger,
	}
}

// Route implements [FlowRouter].
//
// The health check answers without touching the flow token, because the
// platform pings with a fixed payload that carries none.
func (f *flowRouter) Route(ctx context.Context, req models.FlowRequest) (models.FlowResponse, error) {
	log := logger.FromContext(ctx)

	if err := f.validator.Validate(ctx, req, validators.FieldAction); err != nil {
		return models.FlowResponse{}, err
	}

	if req.Action == models.ActionPing {
		return models.FlowResponse{Data: map[string]any{"status": "active"}}, nil
	}

	if f.tokenSignKey != "" {
		if _, err := utils.ValidateFlowToken(req.FlowToken, f.tokenIssuer, f.tokenSignKey); err != nil {
			log.Warn().Str("action", req.Action).Str("screen", req.Screen).
				Msg("rejecting request with invalid flow token")
			return models.ErrorResponse(req.Screen, "Your session has expired. Please reopen the flow."), nil
		}
	}

	switch req.Action {
	case models.ActionInit, models.ActionBack:
		return models.FlowResponse{Screen: ScreenWelcome, Data: map[string]any{}}, nil

	case models.ActionDataExchange:
		return f.nextScreen(ctx, req)

	default:
		// unreachable while allowedActions and this switch agree
		return models.FlowResponse{}, fmt.Errorf("%w: %q", validators.ErrUnknownAction, req.Action)
	}
}

func (f *flowRouter) nextScreen(ctx context.Context, req models.FlowRequest) (models.FlowResponse, error) {
	switch req.Screen {
	case ScreenWelcome:
		return models.FlowResponse{Screen: ScreenAddress, Data: map[string]any{}}, nil

	case ScreenAddress:
		return f.resolveAddress(ctx, req)

	case ScreenSummary:
		// terminal screen: the success payload tells the client to close
		// the flow and post the token back into the conversation
		return models.FlowResponse{
			Screen: ScreenSuccess,
			Data: map[string]any{
				"extension_message_response": map[string]any{
					"params": map[string]any{
						"flow_token": req.FlowToken,
					},
				},
			},
		}, nil

	default:
		return models.FlowResponse{}, fmt.Errorf("%w: %q", ErrUnknownScreen, req.Screen)
	}
}

func (f *flowRouter) resolveAddress(ctx context.Context, req models.FlowRequest) (models.FlowResponse, error) {
	log := logger.FromContext(ctx)

	if err := f.validator.Validate(ctx, req, validators.FieldCEP); err != nil {
		log.Debug().Msg("address screen submitted with an invalid cep")
		return models.ErrorResponse(ScreenAddress, "Please enter a valid CEP (8 digits)."), nil
	}

	cep := validators.NormalizeCEP(req.Data[validators.FieldCEP].(string))

	address, err := f.addressProvider.Lookup(ctx, cep)
	if err != nil {
		if errors.Is(err, adapter.ErrCEPNotFound) {
			return models.ErrorResponse(ScreenAddress, "CEP not found. Please check the number and try again."), nil
		}
		// transport failure: let the HTTP layer decide how to answer
		return models.FlowResponse{}, fmt.Errorf("resolve address: %w", err)
	}

	return models.FlowResponse{
		Screen: ScreenSummary,
		Data: map[string]any{
			"cep":      address.CEP,
			"street":   address.Street,
			"district": address.District,
			"city":     address.City,
			"state":    address.State,
		},
	}, nil
}
