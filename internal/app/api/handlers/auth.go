package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/juegotea/backend/internal/app/api/middleware"
	usersvc "github.com/juegotea/backend/internal/app/service/user"
	"github.com/juegotea/backend/internal/models"
	"github.com/juegotea/backend/internal/platform/firebase"
	"github.com/juegotea/backend/pkg/logctx"
	"github.com/juegotea/backend/pkg/response"
)

type verifyTokenReq struct {
	Token string `json:"token" binding:"required"`
}

type userResp struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// @Summary      Verify ID token
// @Description  Verifies a Firebase ID token and bootstraps the user record on first sight.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body verifyTokenReq true "ID token"
// @Success      200  {object}  userResp
// @Failure      401  {object}  response.ErrorResponse
// @Router       /auth/verify [post]
func ApiVerifyToken(verifier mw.TokenVerifier, users *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyTokenReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "token is required"))
			return
		}

		id, err := verifier.Verify(c.Request.Context(), req.Token)
		if err != nil {
			switch {
			case errors.Is(err, mw.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, response.Err(response.CodeAuthTokenExpired, "token has expired"))
			case errors.Is(err, mw.ErrTokenMalformed):
				c.JSON(http.StatusUnauthorized, response.Err(response.CodeAuthTokenFormatInvalid, "token is not a valid JWT"))
			default:
				c.JSON(http.StatusUnauthorized, response.Err(response.CodeAuthTokenInvalid, "token verification failed"))
			}
			return
		}

		user, err := users.Ensure(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to load user"))
			return
		}
		c.JSON(http.StatusOK, userResp{Success: true, User: user})
	}
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResp
// @Failure      404  {object}  response.ErrorResponse
// @Router       /auth/user [get]
func ApiGetUser(users *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		user, err := users.Get(c.Request.Context(), id.UID)
		if err != nil {
			if errors.Is(err, firebase.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, response.Err(response.CodeUserNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to load user"))
			return
		}
		c.JSON(http.StatusOK, userResp{Success: true, User: user})
	}
}

// @Summary      Update profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body user.ProfileUpdate true "Fields to update"
// @Success      200  {object}  response.OK
// @Failure      400  {object}  response.ErrorResponse
// @Router       /auth/profile [put]
func ApiUpdateProfile(users *usersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		var update usersvc.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil || update.Empty() {
			c.JSON(http.StatusBadRequest, response.Err(response.CodeValidationError, "name or preferences required"))
			return
		}
		if err := users.UpdateProfile(c.Request.Context(), id.UID, &update); err != nil {
			c.JSON(http.StatusInternalServerError, response.Err(response.CodeUpstreamError, "failed to update profile"))
			return
		}
		c.JSON(http.StatusOK, response.Ok())
	}
}

// @Summary      Logout
// @Description  Sessions are token-based; logout is an acknowledgment so clients can discard the token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.OK
// @Router       /auth/logout [post]
func ApiLogout(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := mw.IdentityFrom(c)
		logctx.FromGin(c, log).Infow("user_logout", "user_id", id.UID)
		c.JSON(http.StatusOK, response.Ok())
	}
}

func RegisterAuthRoutes(r gin.IRouter, verifier mw.TokenVerifier, users *usersvc.Service, log *zap.SugaredLogger) {
	r.POST("/verify", ApiVerifyToken(verifier, users))

	authed := r.Group("", mw.RequireAuth(verifier))
	authed.GET("/user", ApiGetUser(users))
	authed.PUT("/profile", ApiUpdateProfile(users))
	authed.POST("/logout", ApiLogout(log))
}
