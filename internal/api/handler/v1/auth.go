package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/request"
	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/config"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/pkg/jwthelper"
	"github.com/leoclub/points-tracker-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.AppUser, error)
	TriggerPasswordReset(ctx context.Context, email string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
	uSvc UserService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, uSvc UserService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandlePasswordReset godoc
// @Summary      Trigger a password reset email
// @Tags         auth
// @Produce      json
// @Param        request   body      request.PasswordResetRequest true "request body"
// @Success      202      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/reset-password [post]
func (h *AuthHandler) HandlePasswordReset(ctx *gin.Context) {
	req := request.PasswordResetRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.TriggerPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		err = fmt.Errorf("v1.HandlePasswordReset -> h.svc.TriggerPasswordReset -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// HandleGetCurrentUser godoc
// @Summary      Get the authenticated user's profile and capabilities
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.CurrentUserResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) HandleGetCurrentUser(ctx *gin.Context) {
	user, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.CurrentUserResponse{
		User:         user,
		Capabilities: acting.Capabilities(),
	})
}
