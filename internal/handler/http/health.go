package http

import "net/http"

// healthCheck answers liveness probes. The endpoint is unauthenticated and
// carries no state, so reaching it at all means the process is serving.
func (h *Handler) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
