//go:build unit || e2e

// Package httptest drives a gin engine in-process and checks JSON envelopes.
package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequestWithHeaders(t, router, method, path, body, authToken, nil)
}

// PerformRequestWithHeaders sends body as JSON when non-nil. Extra headers are set last.
func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, authToken string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON fails the test when the body is not a T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "decode response: %s", rec.Body.String())
	return out
}

// AssertSuccessResponse checks the status and, for 2xx with a target, decodes into it.
func AssertSuccessResponse(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, wantStatus, rec.Code, "body: %s", rec.Body.String()) {
		return
	}
	if target == nil || wantStatus < 200 || wantStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), target), "decode response: %s", rec.Body.String())
}

// AssertErrorResponse checks the status and that the error message contains wantMsg.
// An empty wantMsg only checks the envelope shape.
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantMsg string) {
	t.Helper()

	assert.Equal(t, wantStatus, rec.Code, "body: %s", rec.Body.String())

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "decode error envelope: %s", rec.Body.String()) {
		return
	}
	assert.NotEmpty(t, resp.Error.Message, "error envelope without message")
	if wantMsg != "" {
		assert.Contains(t, resp.Error.Message, wantMsg)
	}
}
