package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/request"
	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/service"
)

type MemberService interface {
	GetMember(ctx context.Context, regNo string) (domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	GetTopMembers(ctx context.Context, limit int) ([]domain.Member, error)
	ListMembersByFaculty(ctx context.Context, faculty string) ([]domain.Member, error)
	CreateMember(ctx context.Context, acting domain.ActingUser, member domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, acting domain.ActingUser, regNo string, update domain.MemberUpdate) (domain.Member, error)
	SearchMembers(ctx context.Context, term string) ([]domain.Member, error)
	ReconcileTotals(ctx context.Context, acting domain.ActingUser) error
	UploadMemberPhoto(ctx context.Context, acting domain.ActingUser, filename, contentType string, body io.Reader) (string, error)
}

type MemberHandler struct {
	svc  MemberService
	uSvc UserService
}

func NewMemberHandler(svc MemberService, uSvc UserService) *MemberHandler {
	return &MemberHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListMembers godoc
// @Summary      List members ordered by total points
// @Tags         members
// @Produce      json
// @Param        faculty  query     string  false  "filter by faculty"
// @Success      200  {array}   domain.Member
// @Failure      500  {object}  response.Err
// @Router       /members [get]
// @Security BearerAuth
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	var (
		members []domain.Member
		err     error
	)

	if faculty := ctx.Query("faculty"); faculty != "" {
		members, err = h.svc.ListMembersByFaculty(ctx.Request.Context(), faculty)
	} else {
		members, err = h.svc.ListMembers(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleSearchMembers godoc
// @Summary      Search members by registration number or name
// @Tags         members
// @Produce      json
// @Param        q  query  string  true  "search term"
// @Success      200  {array}   domain.Member
// @Failure      500  {object}  response.Err
// @Router       /members/search [get]
// @Security BearerAuth
func (h *MemberHandler) HandleSearchMembers(ctx *gin.Context) {
	members, err := h.svc.SearchMembers(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchMembers -> h.svc.SearchMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetTopMembers godoc
// @Summary      Get top members by total points
// @Tags         members
// @Produce      json
// @Param        limit  query  int  false  "number of members"  default(3)
// @Success      200  {array}   domain.Member
// @Failure      500  {object}  response.Err
// @Router       /members/top [get]
// @Security BearerAuth
func (h *MemberHandler) HandleGetTopMembers(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "3"))

	members, err := h.svc.GetTopMembers(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTopMembers -> h.svc.GetTopMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetMember godoc
// @Summary      Get a member by registration number
// @Tags         members
// @Produce      json
// @Param        regNo  path  string  true  "registration number"
// @Success      200  {object}  domain.Member
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/{regNo} [get]
// @Security BearerAuth
func (h *MemberHandler) HandleGetMember(ctx *gin.Context) {
	regNo := ctx.Param("regNo")

	member, err := h.svc.GetMember(ctx.Request.Context(), regNo)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "reg_no", regNo))
			return
		}

		err = fmt.Errorf("v1.HandleGetMember -> h.svc.GetMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleCreateMember godoc
// @Summary      Register a new member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body  request.CreateMemberRequest  true  "member details"
// @Success      201  {object}  domain.Member
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members [post]
// @Security BearerAuth
func (h *MemberHandler) HandleCreateMember(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member := domain.Member{
		RegNo:            req.RegNo,
		PhotoURL:         req.PhotoURL,
		FullName:         req.FullName,
		NameWithInitials: req.NameWithInitials,
		MyLCINum:         req.MyLCINum,
		Batch:            req.Batch,
		Faculty:          req.Faculty,
		WhatsApp:         req.WhatsApp,
	}
	if req.TotalPoints != nil {
		member.TotalPoints = *req.TotalPoints
	}

	created, err := h.svc.CreateMember(ctx.Request.Context(), acting, member)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrMemberRegNoExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrMemberRegNoExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMember -> h.svc.CreateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateMember godoc
// @Summary      Update a member's profile
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        regNo    path  string                       true  "registration number"
// @Param        request  body  request.UpdateMemberRequest  true  "fields to update"
// @Success      200  {object}  domain.Member
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/{regNo} [patch]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateMember(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	regNo := ctx.Param("regNo")

	var req request.UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateMember(ctx.Request.Context(), acting, regNo, domain.MemberUpdate{
		PhotoURL:         req.PhotoURL,
		FullName:         req.FullName,
		NameWithInitials: req.NameWithInitials,
		MyLCINum:         req.MyLCINum,
		Batch:            req.Batch,
		Faculty:          req.Faculty,
		WhatsApp:         req.WhatsApp,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "reg_no", regNo))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMember -> h.svc.UpdateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleUploadMemberPhoto godoc
// @Summary      Upload a member photo
// @Tags         members
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "photo file"
// @Success      201  {object}  response.PhotoUploadResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/photos [post]
// @Security BearerAuth
func (h *MemberHandler) HandleUploadMemberPhoto(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	url, err := h.svc.UploadMemberPhoto(
		ctx.Request.Context(),
		acting,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}

		err = fmt.Errorf("v1.HandleUploadMemberPhoto -> h.svc.UploadMemberPhoto -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.PhotoUploadResponse{PhotoURL: url})
}

// HandleReconcileTotals godoc
// @Summary      Recompute member total points from contributions
// @Tags         members
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/reconcile-points [post]
// @Security BearerAuth
func (h *MemberHandler) HandleReconcileTotals(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.ReconcileTotals(ctx.Request.Context(), acting); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}

		err = fmt.Errorf("v1.HandleReconcileTotals -> h.svc.ReconcileTotals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "reconciled"})
}
