package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/juegotea/backend/internal/app/api/middleware"
	"github.com/juegotea/backend/internal/app/service/games"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/response"
	"github.com/juegotea/backend/pkg/types"
)

type accessResp struct {
	Success   bool               `json:"success"`
	HasAccess bool               `json:"hasAccess"`
	GameType  types.GameTier     `json:"gameType"`
	Reason    types.AccessReason `json:"reason,omitempty"`
}

type gamesListResp struct {
	Success bool                    `json:"success"`
	Games   []*games.ListedGame     `json:"games"`
	User    *types.SubscriptionInfo `json:"user"`
}

type progressResp struct {
	Success  bool           `json:"success"`
	Progress map[string]any `json:"progress"`
}

// @Summary      Check game access
// @Description  Free games are always open; premium games require an active subscription.
// @Tags         Games
// @Produce      json
// @Param        gameId path string true "Game id"
// @Success      200  {object}  accessResp
// @Failure      404  {object}  response.ErrorResponse
// @Router       /games/{gameId}/access [get]
func ApiCheckAccess(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := svc.CheckAccess(c.Request.Context(), c.Param("gameId"), mw.IdentityFrom(c))
		if err != nil {
			if errors.Is(err, games.ErrUnknownGame) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeGameNotFound, "game not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "access check failed"))
			return
		}
		c.JSON(http.StatusOK, accessResp{
			Success:   true,
			HasAccess: decision.HasAccess,
			GameType:  decision.GameType,
			Reason:    decision.Reason,
		})
	}
}

// @Summary      List games
// @Description  Catalog enriched with the caller's access flags and subscription summary.
// @Tags         Games
// @Produce      json
// @Success      200  {object}  gamesListResp
// @Router       /games/list [get]
func ApiListGames(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		listed, info, err := svc.List(c.Request.Context(), mw.IdentityFrom(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to list games"))
			return
		}
		c.JSON(http.StatusOK, gamesListResp{Success: true, Games: listed, User: info})
	}
}

// @Summary      Save game progress
// @Tags         Games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path string true "Game id"
// @Param        request body object true "Progress fields"
// @Success      200  {object}  response.OK
// @Failure      400  {object}  response.ErrorResponse
// @Router       /games/{gameId}/progress [post]
func ApiSaveProgress(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		var progress map[string]any
		if err := c.ShouldBindJSON(&progress); err != nil || len(progress) == 0 {
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "progress must be a non-empty object"))
			return
		}
		if err := svc.SaveProgress(c.Request.Context(), id.UID, c.Param("gameId"), progress); err != nil {
			if errors.Is(err, games.ErrUnknownGame) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeGameNotFound, "game not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to save progress"))
			return
		}
		c.JSON(http.StatusOK, response.Ok())
	}
}

// @Summary      Get game progress
// @Tags         Games
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path string true "Game id"
// @Success      200  {object}  progressResp
// @Failure      404  {object}  response.ErrorResponse
// @Router       /games/{gameId}/progress [get]
func ApiGetProgress(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		progress, err := svc.GetProgress(c.Request.Context(), id.UID, c.Param("gameId"))
		if err != nil {
			if errors.Is(err, games.ErrUnknownGame) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeGameNotFound, "game not found"))
				return
			}
			if errors.Is(err, firebase.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeUserNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to load progress"))
			return
		}
		c.JSON(http.StatusOK, progressResp{Success: true, Progress: progress})
	}
}

func RegisterGameRoutes(r gin.IRouter, verifier mw.TokenVerifier, svc *games.Service) {
	r.GET("/list", mw.OptionalAuth(verifier), ApiListGames(svc))
	r.GET("/:gameId/access", mw.OptionalAuth(verifier), ApiCheckAccess(svc))

	authed := r.Group("", mw.RequireAuth(verifier))
	authed.POST("/:gameId/progress", ApiSaveProgress(svc))
	authed.GET("/:gameId/progress", ApiGetProgress(svc))
}
