package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/juegotea/backend/internal/app/api/middleware"
	"github.com/juegotea/backend/internal/app/service/statistics"
	"github.com/juegotea/backend/pkg/response"
)

type paymentStatsResp struct {
	Success bool                      `json:"success"`
	Totals  *statistics.PaymentTotals `json:"totals"`
}

// @Summary      Payment statistics
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  paymentStatsResp
// @Router       /admin/stats/payments [get]
func ApiPaymentStats(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := stats.PaymentTotals(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to load payment stats"))
			return
		}
		c.JSON(http.StatusOK, paymentStatsResp{Success: true, Totals: totals})
	}
}

func RegisterAdminRoutes(r gin.IRouter, verifier mw.TokenVerifier, stats *statistics.Service) {
	authed := r.Group("", mw.RequireAuth(verifier))
	authed.GET("/stats/payments", ApiPaymentStats(stats))
}
