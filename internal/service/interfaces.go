package service

import (
	"context"

	"github.com/flowsuite/flow-endpoint/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// FlowRouter is the collaborator the envelope codec hands decrypted
// payloads to: plaintext request in, plaintext response out, synchronously.
// The router never sees key material and has no say in how the response is
// encrypted.
//
// A returned error propagates to the HTTP layer, which decides whether to
// answer with the protocol-mandated empty 200; routing errors must never be
// silently masked inside the pipeline.
type FlowRouter interface {
	Route(ctx context.Context, req models.FlowRequest) (models.FlowResponse, error)
}

// AppInfoService exposes application metadata such as the running version.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
