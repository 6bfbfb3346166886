package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/domain"
)

type LeaderboardService interface {
	AllTime(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Monthly(ctx context.Context, year, month int) ([]domain.LeaderboardEntry, error)
	MonthlyProjectCount(ctx context.Context, year, month int) (int, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// yearMonthParams reads year and month query parameters, defaulting to the
// current UTC calendar month.
func yearMonthParams(ctx *gin.Context) (int, int, error) {
	now := time.Now().UTC()

	year, err := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year: %w", err)
	}

	month, err := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month: %w", err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range: %d", month)
	}

	return year, month, nil
}

// HandleAllTimeLeaderboard godoc
// @Summary      All-time leaderboard
// @Tags         leaderboard
// @Produce      json
// @Success      200  {object}  response.LeaderboardResponse
// @Failure      500  {object}  response.Err
// @Router       /leaderboard [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleAllTimeLeaderboard(ctx *gin.Context) {
	entries, err := h.svc.AllTime(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAllTimeLeaderboard -> h.svc.AllTime -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{Entries: entries})
}

// HandleMonthlyLeaderboard godoc
// @Summary      Leaderboard for a calendar month
// @Tags         leaderboard
// @Produce      json
// @Param        year   query  int  false  "year (defaults to current)"
// @Param        month  query  int  false  "month 1-12 (defaults to current)"
// @Success      200  {object}  response.LeaderboardResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leaderboard/monthly [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleMonthlyLeaderboard(ctx *gin.Context) {
	year, month, err := yearMonthParams(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entries, err := h.svc.Monthly(ctx.Request.Context(), year, month)
	if err != nil {
		err = fmt.Errorf("v1.HandleMonthlyLeaderboard -> h.svc.Monthly -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{Entries: entries})
}

// HandleMonthlyProjectCount godoc
// @Summary      Distinct projects recorded in a calendar month
// @Tags         leaderboard
// @Produce      json
// @Param        year   query  int  false  "year (defaults to current)"
// @Param        month  query  int  false  "month 1-12 (defaults to current)"
// @Success      200  {object}  response.MonthlyProjectCountResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leaderboard/monthly/projects [get]
// @Security BearerAuth
func (h *LeaderboardHandler) HandleMonthlyProjectCount(ctx *gin.Context) {
	year, month, err := yearMonthParams(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	count, err := h.svc.MonthlyProjectCount(ctx.Request.Context(), year, month)
	if err != nil {
		err = fmt.Errorf("v1.HandleMonthlyProjectCount -> h.svc.MonthlyProjectCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MonthlyProjectCountResponse{
		Year:         year,
		Month:        month,
		ProjectCount: count,
	})
}
