package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/flowsuite/flow-endpoint/models"
)

// Field names accepted by [FlowRequestValidator.Validate].
const (
	FieldAction = "action"
	FieldCEP    = "cep"
)

var allowedActions = []string{
	models.ActionInit,
	models.ActionBack,
	models.ActionPing,
	models.ActionDataExchange,
}

// cepPattern matches a normalized CEP: exactly eight digits, no separator.
var cepPattern = regexp.MustCompile(`^[0-9]{8}$`)

type FlowRequestValidator struct {
}

func NewFlowRequestValidator() Validator {
	return &FlowRequestValidator{}
}

func (v *FlowRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FlowRequest:
		return v.validateFlowRequest(ctx, value, fields...)
	case *models.FlowRequest:
		return v.validateFlowRequest(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *FlowRequestValidator) validateFlowRequest(_ context.Context, req models.FlowRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAction}
	}

	for _, field := range fields {
		switch field {
		case FieldAction:
			if err := v.validateAction(req.Action); err != nil {
				return err
			}
		case FieldCEP:
			if err := v.validateCEP(req.Data); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *FlowRequestValidator) validateAction(action string) error {
	if action == "" {
		return ErrNoAction
	}

	for _, allowed := range allowedActions {
		if action == allowed {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func (v *FlowRequestValidator) validateCEP(data map[string]any) error {
	raw, ok := data[FieldCEP]
	if !ok {
		return fmt.Errorf("%w: missing", ErrInvalidCEP)
	}

	cep, ok := raw.(string)
	if !ok || !cepPattern.MatchString(NormalizeCEP(cep)) {
		return fmt.Errorf("%w: %v", ErrInvalidCEP, raw)
	}

	return nil
}

// NormalizeCEP strips the conventional "01001-000" separator so that both
// punctuated and plain user input validate and query the same way.
func NormalizeCEP(cep string) string {
	out := make([]byte, 0, len(cep))
	for i := 0; i < len(cep); i++ {
		if cep[i] >= '0' && cep[i] <= '9' {
			out = append(out, cep[i])
		}
	}
	return string(out)
}
