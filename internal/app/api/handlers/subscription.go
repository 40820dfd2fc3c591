package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/juegotea/backend/internal/app/api/middleware"
	subsvc "github.com/juegotea/backend/internal/app/service/subscription"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/response"
	"github.com/juegotea/backend/pkg/types"
)

type createSubscriptionReq struct {
	Plan string `json:"plan" binding:"required"`
}

type createSubscriptionResp struct {
	Success          bool   `json:"success"`
	PreferenceID     string `json:"preference_id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type subscriptionStatusResp struct {
	Success      bool                    `json:"success"`
	Subscription *types.SubscriptionInfo `json:"subscription"`
}

// @Summary      Create subscription checkout
// @Description  Opens a MercadoPago checkout for the plan and records a pending payment.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createSubscriptionReq true "Plan id"
// @Success      200  {object}  createSubscriptionResp
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /subscription/create [post]
func ApiCreateSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		var req createSubscriptionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "plan is required"))
			return
		}

		checkout, err := svc.CreateCheckout(c.Request.Context(), id, req.Plan)
		if err != nil {
			switch {
			case errors.Is(err, firebase.ErrUserNotFound):
				c.JSON(http.StatusNotFound, response.Err(response.CodeUserNotFound, "user not found"))
			case errors.Is(err, subsvc.ErrUnknownPlan):
				c.JSON(http.StatusBadRequest, response.Err(response.CodeInvalidPlan, "unknown plan: "+req.Plan))
			default:
				c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to create checkout"))
			}
			return
		}
		c.JSON(http.StatusOK, createSubscriptionResp{
			Success:          true,
			PreferenceID:     checkout.PreferenceID,
			InitPoint:        checkout.InitPoint,
			SandboxInitPoint: checkout.SandboxInitPoint,
		})
	}
}

// @Summary      Subscription status
// @Description  Reports the subscription summary; a stale active window is reconciled to expired.
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  subscriptionStatusResp
// @Failure      404  {object}  response.ErrorResponse
// @Router       /subscription/status [get]
func ApiSubscriptionStatus(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		info, err := svc.Status(c.Request.Context(), id.UID)
		if err != nil {
			if errors.Is(err, firebase.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeUserNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to load subscription"))
			return
		}
		c.JSON(http.StatusOK, subscriptionStatusResp{Success: true, Subscription: info})
	}
}

// @Summary      Cancel subscription
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.OK
// @Failure      404  {object}  response.ErrorResponse
// @Router       /subscription/cancel [post]
func ApiCancelSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		if err := svc.Cancel(c.Request.Context(), id.UID); err != nil {
			if errors.Is(err, firebase.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeUserNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to cancel subscription"))
			return
		}
		c.JSON(http.StatusOK, response.Ok())
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, verifier mw.TokenVerifier, svc *subsvc.Service) {
	r.POST("/webhook", ApiPaymentWebhook(svc))

	authed := r.Group("", mw.RequireAuth(verifier))
	authed.POST("/create", ApiCreateSubscription(svc))
	authed.GET("/status", ApiSubscriptionStatus(svc))
	authed.POST("/cancel", ApiCancelSubscription(svc))
}
