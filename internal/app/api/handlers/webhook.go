package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	subsvc "github.com/juegotea/backend/internal/app/service/subscription"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/response"
)

// @Summary      Payment webhook
// @Description  Handles MercadoPago payment notifications. The endpoint always acknowledges parseable payloads with 200 so the provider does not retry; failures are logged and recorded internally.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body subscription.WebhookEvent true "Notification payload"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  response.ErrorResponse
// @Router       /subscription/webhook [post]
func ApiPaymentWebhook(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "unreadable body"))
			return
		}
		var evt subsvc.WebhookEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			// A body that will never parse is the one case where a retry can't
			// help, so it is rejected instead of acknowledged.
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "malformed webhook payload"))
			return
		}

		if err := svc.HandleWebhook(c.Request.Context(), &evt, raw); err != nil {
			logctx.FromGin(c, svc.Logger()).Errorw("webhook_handle_error", "error", err.Error())
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
