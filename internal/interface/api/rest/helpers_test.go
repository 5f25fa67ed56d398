package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtSvc "document-manager-api/internal/infrastructure/jwt"
)

const (
	testSecret  = "test-secret"
	testUserID  = "11111111-1111-1111-1111-111111111111"
	testAdminID = "22222222-2222-2222-2222-222222222222"
)

func newTestEngine(t *testing.T) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return gin.New(), jwtSvc.New(testSecret)
}

func SignJWT(secret, userID, username, role string, exp time.Duration) (string, error) {
	return jwtSvc.New(secret).GenerateJWT(userID, username, role, exp)
}

func bearer(t *testing.T, userID, username, role string) map[string]string {
	t.Helper()
	tok, err := SignJWT(testSecret, userID, username, role, time.Hour)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + tok}
}

func userAuth(t *testing.T) map[string]string {
	return bearer(t, testUserID, "alice", "user")
}

func adminAuth(t *testing.T) map[string]string {
	return bearer(t, testAdminID, "admin", "admin")
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func assertErrBody(t *testing.T, rr *httptest.ResponseRecorder, wantErr string) {
	t.Helper()
	if wantErr == "" {
		return
	}

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, wantErr, resp["error"])
}

func ptr[T any](v T) *T { return &v }
