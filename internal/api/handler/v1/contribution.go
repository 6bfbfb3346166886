package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/request"
	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/service"
)

type ContributionService interface {
	CreateContribution(ctx context.Context, acting domain.ActingUser, contribution domain.Contribution) (domain.Contribution, error)
	DeleteContribution(ctx context.Context, acting domain.ActingUser, id string) error
	ListContributions(ctx context.Context) ([]domain.Contribution, error)
	ListContributionsForMember(ctx context.Context, regNo string) ([]domain.Contribution, error)
	ListContributionsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Contribution, error)
	TotalPointsAcrossAllMembers(ctx context.Context) (int, error)
}

type ContributionHandler struct {
	svc  ContributionService
	uSvc UserService
}

func NewContributionHandler(svc ContributionService, uSvc UserService) *ContributionHandler {
	return &ContributionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListContributions godoc
// @Summary      List contributions, newest first
// @Tags         contributions
// @Produce      json
// @Param        from  query  string  false  "start date (RFC 3339)"
// @Param        to    query  string  false  "end date (RFC 3339)"
// @Success      200  {array}   domain.Contribution
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contributions [get]
// @Security BearerAuth
func (h *ContributionHandler) HandleListContributions(ctx *gin.Context) {
	fromParam := ctx.Query("from")
	toParam := ctx.Query("to")

	var (
		contributions []domain.Contribution
		err           error
	)

	if fromParam != "" && toParam != "" {
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, fromParam); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if to, err = time.Parse(time.RFC3339, toParam); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		contributions, err = h.svc.ListContributionsByDateRange(ctx.Request.Context(), from, to)
	} else {
		contributions, err = h.svc.ListContributions(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListContributions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, contributions)
}

// HandleListMemberContributions godoc
// @Summary      List a member's contributions, newest first
// @Tags         contributions
// @Produce      json
// @Param        regNo  path  string  true  "registration number"
// @Success      200  {array}   domain.Contribution
// @Failure      500  {object}  response.Err
// @Router       /members/{regNo}/contributions [get]
// @Security BearerAuth
func (h *ContributionHandler) HandleListMemberContributions(ctx *gin.Context) {
	contributions, err := h.svc.ListContributionsForMember(ctx.Request.Context(), ctx.Param("regNo"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListMemberContributions -> h.svc.ListContributionsForMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, contributions)
}

// HandleCreateContribution godoc
// @Summary      Record a new contribution
// @Description  Writes the contribution and updates the member's total points in one transaction.
// @Tags         contributions
// @Accept       json
// @Produce      json
// @Param        request  body  request.CreateContributionRequest  true  "contribution details"
// @Success      201  {object}  domain.Contribution
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contributions [post]
// @Security BearerAuth
func (h *ContributionHandler) HandleCreateContribution(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateContribution(ctx.Request.Context(), acting, domain.Contribution{
		MemberRegNo: req.MemberRegNo,
		ProjectName: req.ProjectName,
		TimePeriod:  req.TimePeriod,
		Position:    req.Position,
		Points:      req.Points,
		Avenue:      req.Avenue,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "reg_no", req.MemberRegNo))
			return
		}

		err = fmt.Errorf("v1.HandleCreateContribution -> h.svc.CreateContribution -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteContribution godoc
// @Summary      Delete a contribution
// @Tags         contributions
// @Produce      json
// @Param        id  path  string  true  "contribution id"
// @Success      204  "no content"
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contributions/{id} [delete]
// @Security BearerAuth
func (h *ContributionHandler) HandleDeleteContribution(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id := ctx.Param("id")

	if err := h.svc.DeleteContribution(ctx.Request.Context(), acting, id); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrContributionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contribution", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteContribution -> h.svc.DeleteContribution -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleTotalPoints godoc
// @Summary      Sum of points across all contributions
// @Tags         contributions
// @Produce      json
// @Success      200  {object}  response.TotalPointsResponse
// @Failure      500  {object}  response.Err
// @Router       /contributions/total-points [get]
// @Security BearerAuth
func (h *ContributionHandler) HandleTotalPoints(ctx *gin.Context) {
	total, err := h.svc.TotalPointsAcrossAllMembers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleTotalPoints -> h.svc.TotalPointsAcrossAllMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TotalPointsResponse{TotalPoints: total})
}
