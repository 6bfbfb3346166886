package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/request"
	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/service"
)

type UserAdminService interface {
	CreateUser(ctx context.Context, acting domain.ActingUser, email, password string, profile domain.AppUser) (domain.AppUser, error)
	GetUser(ctx context.Context, id string) (domain.AppUser, error)
	ListUsers(ctx context.Context, acting domain.ActingUser) ([]domain.AppUser, error)
	UpdateUser(ctx context.Context, acting domain.ActingUser, id string, update domain.AppUserUpdate) (domain.AppUser, error)
	DeleteUser(ctx context.Context, acting domain.ActingUser, id string) error
}

type UserHandler struct {
	svc  UserAdminService
	uSvc UserService
}

func NewUserHandler(svc UserAdminService, uSvc UserService) *UserHandler {
	return &UserHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListUsers godoc
// @Summary      List application users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.AppUser
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context(), acting)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}

		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleCreateUser godoc
// @Summary      Create an application user
// @Description  Provisions a new identity account and linked profile without touching the acting admin's session.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  request.CreateUserRequest  true  "user details"
// @Success      201  {object}  domain.AppUser
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users [post]
// @Security BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateUser(ctx.Request.Context(), acting, req.Email, req.Password, domain.AppUser{
		Username:          req.Username,
		Designation:       req.Designation,
		Role:              domain.ParseRole(req.Role),
		LinkedMemberRegNo: req.LinkedMemberRegNo,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrAccountEmailExists) || errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateUser -> h.svc.CreateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateUser godoc
// @Summary      Update an application user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "user id"
// @Param        request  body  request.UpdateUserRequest  true  "fields to update"
// @Success      200  {object}  domain.AppUser
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{id} [patch]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id := ctx.Param("id")

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update := domain.AppUserUpdate{
		Username:          req.Username,
		Designation:       req.Designation,
		LinkedMemberRegNo: req.LinkedMemberRegNo,
	}
	if req.Role != nil {
		role := domain.ParseRole(*req.Role)
		update.Role = &role
	}

	updated, err := h.svc.UpdateUser(ctx.Request.Context(), acting, id, update)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
			return
		}
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUsernameExists))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteUser godoc
// @Summary      Delete an application user's profile
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      204  "no content"
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id := ctx.Param("id")

	if err := h.svc.DeleteUser(ctx.Request.Context(), acting, id); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
			return
		}
		if errors.Is(err, service.ErrLastSuperAdmin) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrLastSuperAdmin))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
