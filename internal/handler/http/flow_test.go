package http

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flowsuite/flow-endpoint/internal/crypto"
	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/internal/mock"
	"github.com/flowsuite/flow-endpoint/internal/service"
	"github.com/flowsuite/flow-endpoint/models"
)

const testAppSecret = "test-app-secret"

var testKey *rsa.PrivateKey

func init() {
	var err error
	testKey, err = rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
}

// sealRequest plays the client side of the protocol: it wraps a fresh AES
// session key with the server's public key and encrypts the flow request
// payload under a random 12-byte IV.
func sealRequest(t *testing.T, payload any) (body []byte, aesKey, iv []byte) {
	t.Helper()

	plaintext, err := json.Marshal(payload)
	require.NoError(t, err)

	aesKey = make([]byte, 16)
	_, err = rand.Read(aesKey)
	require.NoError(t, err)

	iv = make([]byte, 12)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	block, err := aes.NewCipher(aesKey)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	require.NoError(t, err)
	sealed := gcm.Seal(nil, iv, plaintext, nil)

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &testKey.PublicKey, aesKey, nil)
	require.NoError(t, err)

	body, err = json.Marshal(models.EncryptedEnvelope{
		EncryptedAESKey:   base64.StdEncoding.EncodeToString(wrappedKey),
		EncryptedFlowData: base64.StdEncoding.EncodeToString(sealed),
		InitialVector:     base64.StdEncoding.EncodeToString(iv),
	})
	require.NoError(t, err)

	return body, aesKey, iv
}

// openResponse decrypts the base64 response body the way the platform does:
// with the session key and the bitwise complement of the request IV.
func openResponse(t *testing.T, body string, aesKey, requestIV []byte) models.FlowResponse {
	t.Helper()

	sealed, err := base64.StdEncoding.DecodeString(body)
	require.NoError(t, err)

	responseIV := make([]byte, len(requestIV))
	for i, b := range requestIV {
		responseIV[i] = ^b
	}

	block, err := aes.NewCipher(aesKey)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, len(responseIV))
	require.NoError(t, err)

	plaintext, err := gcm.Open(nil, responseIV, sealed, nil)
	require.NoError(t, err)

	var resp models.FlowResponse
	require.NoError(t, json.Unmarshal(plaintext, &resp))

	return resp
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testAppSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(t *testing.T, flowRouter service.FlowRouter) http.Handler {
	t.Helper()

	codec, err := crypto.NewEnvelopeCodec(testKey, testAppSecret, logger.Nop())
	require.NoError(t, err)

	h := NewHandler(&service.Services{FlowRouter: flowRouter}, codec, logger.Nop())

	return h.Init()
}

func postWebhook(t *testing.T, router http.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook/flow", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestExchangeFlowData_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().
		Route(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.FlowRequest) (models.FlowResponse, error) {
			assert.Equal(t, models.ActionInit, req.Action)
			return models.FlowResponse{Screen: "WELCOME", Data: map[string]any{}}, nil
		})

	router := newWebhookRouter(t, mockRouter)

	body, aesKey, iv := sealRequest(t, models.FlowRequest{Version: "3.0", Action: models.ActionInit})
	rec := postWebhook(t, router, body, signBody(body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))

	resp := openResponse(t, rec.Body.String(), aesKey, iv)
	assert.Equal(t, "WELCOME", resp.Screen)
}

func TestExchangeFlowData_PingHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().
		Route(gomock.Any(), gomock.Any()).
		Return(models.FlowResponse{Data: map[string]any{"status": "active"}}, nil)

	router := newWebhookRouter(t, mockRouter)

	body, aesKey, iv := sealRequest(t, models.FlowRequest{Version: "3.0", Action: models.ActionPing})
	rec := postWebhook(t, router, body, signBody(body))

	require.Equal(t, http.StatusOK, rec.Code)

	resp := openResponse(t, rec.Body.String(), aesKey, iv)
	assert.Equal(t, map[string]any{"status": "active"}, resp.Data)
}

func TestExchangeFlowData_MissingSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().Route(gomock.Any(), gomock.Any()).Times(0)

	router := newWebhookRouter(t, mockRouter)

	body, _, _ := sealRequest(t, models.FlowRequest{Action: models.ActionInit})
	rec := postWebhook(t, router, body, "")

	// failures are accepted with an empty body so the platform does not retry
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExchangeFlowData_TamperedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().Route(gomock.Any(), gomock.Any()).Times(0)

	router := newWebhookRouter(t, mockRouter)

	body, _, _ := sealRequest(t, models.FlowRequest{Action: models.ActionInit})
	signature := signBody(body)
	tampered := bytes.Replace(body, []byte("encrypted_aes_key"), []byte("encrypted_aes_kez"), 1)

	rec := postWebhook(t, router, tampered, signature)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExchangeFlowData_GarbageBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().Route(gomock.Any(), gomock.Any()).Times(0)

	router := newWebhookRouter(t, mockRouter)

	body := []byte("this is not an envelope")
	rec := postWebhook(t, router, body, signBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExchangeFlowData_UndecryptableEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().Route(gomock.Any(), gomock.Any()).Times(0)

	router := newWebhookRouter(t, mockRouter)

	// valid JSON envelope, but the key was wrapped for a different server
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &otherKey.PublicKey, make([]byte, 16), nil)
	require.NoError(t, err)

	body, err := json.Marshal(models.EncryptedEnvelope{
		EncryptedAESKey:   base64.StdEncoding.EncodeToString(wrappedKey),
		EncryptedFlowData: base64.StdEncoding.EncodeToString(make([]byte, 32)),
		InitialVector:     base64.StdEncoding.EncodeToString(make([]byte, 12)),
	})
	require.NoError(t, err)

	rec := postWebhook(t, router, body, signBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExchangeFlowData_RoutingErrorAnsweredEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().
		Route(gomock.Any(), gomock.Any()).
		Return(models.FlowResponse{}, service.ErrUnknownScreen)

	router := newWebhookRouter(t, mockRouter)

	body, _, _ := sealRequest(t, models.FlowRequest{Action: models.ActionDataExchange, Screen: "NOPE"})
	rec := postWebhook(t, router, body, signBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestExchangeFlowData_SixteenByteIV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRouter := mock.NewMockFlowRouter(ctrl)
	mockRouter.EXPECT().
		Route(gomock.Any(), gomock.Any()).
		Return(models.FlowResponse{Screen: "WELCOME", Data: map[string]any{}}, nil)

	router := newWebhookRouter(t, mockRouter)

	// some clients send a 16-byte IV; the codec follows the wire value
	plaintext, err := json.Marshal(models.FlowRequest{Action: models.ActionInit})
	require.NoError(t, err)

	aesKey := make([]byte, 16)
	_, err = rand.Read(aesKey)
	require.NoError(t, err)
	iv := make([]byte, 16)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	block, err := aes.NewCipher(aesKey)
	require.NoError(t, err)
	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	require.NoError(t, err)
	sealed := gcm.Seal(nil, iv, plaintext, nil)

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &testKey.PublicKey, aesKey, nil)
	require.NoError(t, err)

	body, err := json.Marshal(models.EncryptedEnvelope{
		EncryptedAESKey:   base64.StdEncoding.EncodeToString(wrappedKey),
		EncryptedFlowData: base64.StdEncoding.EncodeToString(sealed),
		InitialVector:     base64.StdEncoding.EncodeToString(iv),
	})
	require.NoError(t, err)

	rec := postWebhook(t, router, body, signBody(body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := openResponse(t, rec.Body.String(), aesKey, iv)
	assert.Equal(t, "WELCOME", resp.Screen)
}
