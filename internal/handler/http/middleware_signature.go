package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/flowsuite/flow-endpoint/internal/logger"
)

const signatureHeader = "X-Hub-Signature-256"

// withSignatureCheck authenticates the webhook before any decryption work.
// The HMAC covers the exact raw body bytes, so the body is read once here
// and restored for the downstream handler.
//
// A failed check is answered with an empty 200, same as every other webhook
// failure: rejecting with 4xx would put the platform into a retry loop.
func (h *Handler) withSignatureCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withSignatureCheck").Msg("failed to read request body")
			acceptWithoutBody(w)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err := h.codec.VerifySignature(body, r.Header.Get(signatureHeader)); err != nil {
			log.Warn().Err(err).Str("func", "*Handler.withSignatureCheck").Msg("rejecting unsigned request")
			acceptWithoutBody(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
