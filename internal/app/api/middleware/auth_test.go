package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juegotea/backend/pkg/response"
	"github.com/juegotea/backend/pkg/types"
)

type stubVerifier struct {
	identity *types.Identity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, idToken string) (*types.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

const wellFormedToken = "aaa.bbb.ccc"

func authTestRouter(v TokenVerifier, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := RequireAuth(v)
	if optional {
		mw = OptionalAuth(v)
	}
	r.GET("/probe", mw, func(c *gin.Context) {
		if id := IdentityFrom(c); id != nil {
			c.JSON(http.StatusOK, gin.H{"uid": id.UID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": nil})
	})
	return r
}

func doProbe(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return e["code"].(string)
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token attaches identity", func(t *testing.T) {
		v := &stubVerifier{identity: &types.Identity{UID: "uid-1", Email: "parent@example.com"}}
		w, body := doProbe(t, authTestRouter(v, false), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "uid-1", body["uid"])
	})

	t.Run("missing header", func(t *testing.T) {
		w, body := doProbe(t, authTestRouter(&stubVerifier{}, false), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenMissing, errorCode(t, body))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w, body := doProbe(t, authTestRouter(&stubVerifier{}, false), "Basic dXNlcjpwYXNz")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenMissing, errorCode(t, body))
	})

	t.Run("not a jwt", func(t *testing.T) {
		w, body := doProbe(t, authTestRouter(&stubVerifier{}, false), "Bearer garbage")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenFormatInvalid, errorCode(t, body))
	})

	t.Run("expired token", func(t *testing.T) {
		v := &stubVerifier{err: ErrTokenExpired}
		w, body := doProbe(t, authTestRouter(v, false), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenExpired, errorCode(t, body))
	})

	t.Run("malformed per verifier", func(t *testing.T) {
		v := &stubVerifier{err: ErrTokenMalformed}
		w, body := doProbe(t, authTestRouter(v, false), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenFormatInvalid, errorCode(t, body))
	})

	t.Run("verification failure", func(t *testing.T) {
		v := &stubVerifier{err: errors.New("signature mismatch")}
		w, body := doProbe(t, authTestRouter(v, false), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.CodeAuthTokenInvalid, errorCode(t, body))
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("valid token attaches identity", func(t *testing.T) {
		v := &stubVerifier{identity: &types.Identity{UID: "uid-1"}}
		w, body := doProbe(t, authTestRouter(v, true), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "uid-1", body["uid"])
	})

	t.Run("no header continues anonymously", func(t *testing.T) {
		w, body := doProbe(t, authTestRouter(&stubVerifier{}, true), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, body["uid"])
	})

	t.Run("bad token continues anonymously", func(t *testing.T) {
		v := &stubVerifier{err: ErrTokenExpired}
		w, body := doProbe(t, authTestRouter(v, true), "Bearer "+wellFormedToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, body["uid"])
	})
}
