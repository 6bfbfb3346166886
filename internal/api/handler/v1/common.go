package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/api/middleware"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/service"
)

// UserService is the slice of user administration the handlers need to
// resolve the acting identity.
type UserService interface {
	GetUser(ctx context.Context, id string) (domain.AppUser, error)
}

// getActingUser resolves the authenticated user ID stamped by the JWT
// middleware into the acting identity passed to the services.
func getActingUser(ctx *gin.Context, svc UserService) (domain.AppUser, domain.ActingUser, *response.Err) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		return domain.AppUser{}, domain.ActingUser{}, response.ErrUnauthorized(errors.New("missing authenticated user"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.AppUser{}, domain.ActingUser{}, response.ErrUnauthorized(errors.New("unknown user"))
		}

		return domain.AppUser{}, domain.ActingUser{}, response.ErrInternalServerError(fmt.Errorf("getActingUser -> svc.GetUser -> %w", err))
	}

	return user, domain.ActingUser{ID: user.ID, Role: user.Role}, nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
