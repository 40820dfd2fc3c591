package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	subsvc "github.com/juegotea/backend/internal/app/service/subscription"
	cfgpkg "github.com/juegotea/backend/pkg/config"
)

func postWebhook(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := subsvc.NewService(&cfgpkg.Config{}, nil, nil, nil, zap.NewNop().Sugar())
	r.POST("/subscription/webhook", ApiPaymentWebhook(svc))

	req := httptest.NewRequest(http.MethodPost, "/subscription/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiPaymentWebhookAcknowledgesIgnoredTypes(t *testing.T) {
	w := postWebhook(t, `{"type":"merchant_order","data":{"id":"123"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestApiPaymentWebhookRejectsMalformedBody(t *testing.T) {
	w := postWebhook(t, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
