package models

// Actions sent by the WhatsApp client inside the decrypted payload.
const (
	// ActionInit is sent when the flow is opened for the first time.
	ActionInit = "INIT"

	// ActionBack is sent when the user navigates back to a previous screen.
	ActionBack = "BACK"

	// ActionPing is the platform health check. The endpoint must answer
	// with {"data": {"status": "active"}}.
	ActionPing = "ping"

	// ActionDataExchange is sent when the user submits form data on a
	// screen and expects the next screen in return.
	ActionDataExchange = "data_exchange"
)

// FlowRequest is the decrypted shape of an inbound flow payload. The
// envelope codec treats the payload as opaque JSON; this struct is the
// contract between the HTTP layer and the screen router only.
type FlowRequest struct {
	Version   string         `json:"version,omitempty"`
	Action    string         `json:"action"`
	Screen    string         `json:"screen,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	FlowToken string         `json:"flow_token,omitempty"`
}

// FlowResponse is the plaintext answer the screen router produces. It is
// serialized to compact JSON and encrypted before leaving the service.
type FlowResponse struct {
	Screen string         `json:"screen,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// ErrorResponse builds the response the router returns when a screen cannot
// be served: the same screen is shown again with an error message attached.
func ErrorResponse(screen, message string) FlowResponse {
	return FlowResponse{
		Screen: screen,
		Data: map[string]any{
			"error_message": message,
		},
	}
}
