package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/models"
)

// exchangeFlowData is the encrypted webhook endpoint. It opens the envelope,
// routes the plaintext request to the screen router, and answers with the
// encrypted response as a raw base64 string.
//
// Every failure along the pipeline is answered with an empty 200: a non-2xx
// status would make the platform retry a request that can never succeed, and
// an error body would disclose why decryption failed. The cause is logged
// internally only.
func (h *Handler) exchangeFlowData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exchangeFlowData").Msg("failed to read request body")
		acceptWithoutBody(w)
		return
	}

	var envelope models.EncryptedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.exchangeFlowData").Msg("request body is not an envelope")
		acceptWithoutBody(w)
		return
	}

	decrypted, err := h.codec.Decrypt(envelope)
	if err != nil {
		log.Warn().Err(err).Str("func", "*Handler.exchangeFlowData").Msg("failed to open envelope")
		acceptWithoutBody(w)
		return
	}

	var flowRequest models.FlowRequest
	if err := json.Unmarshal(decrypted.Plaintext, &flowRequest); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.exchangeFlowData").Msg("plaintext is not a flow request")
		acceptWithoutBody(w)
		return
	}

	flowResponse, err := h.services.FlowRouter.Route(r.Context(), flowRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exchangeFlowData").
			Str("action", flowRequest.Action).
			Str("screen", flowRequest.Screen).
			Msg("screen routing failed")
		acceptWithoutBody(w)
		return
	}

	ciphertext, err := h.codec.Encrypt(flowResponse, decrypted.AESKey, decrypted.IV)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exchangeFlowData").Msg("failed to encrypt response")
		acceptWithoutBody(w)
		return
	}

	// the response body is the bare base64 string, not JSON
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(ciphertext))
}

// acceptWithoutBody writes the protocol-mandated empty 200 answer used for
// every request the endpoint cannot process.
func acceptWithoutBody(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}
