package models

// EncryptedEnvelope is the wire format of an inbound WhatsApp Flows data
// exchange request. All three fields are standard-base64 strings.
//
// The envelope is received once per request and is never persisted: the
// wrapped AES session key and the initial vector live only for the single
// request/response cycle they arrived with.
type EncryptedEnvelope struct {
	// EncryptedAESKey is the AES-128 session key, wrapped with the
	// service's RSA public key using OAEP (SHA-256).
	EncryptedAESKey string `json:"encrypted_aes_key"`

	// EncryptedFlowData is the AES-128-GCM ciphertext of the request
	// payload with the 16-byte authentication tag appended.
	EncryptedFlowData string `json:"encrypted_flow_data"`

	// InitialVector is the GCM nonce used to encrypt EncryptedFlowData.
	// The response must be encrypted with the bitwise complement of this
	// value, never with the value itself and never with a fresh nonce.
	InitialVector string `json:"initial_vector"`
}
