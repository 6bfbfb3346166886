package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leoclub/points-tracker-api/internal/api/handler/v1/response"
	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/service"
	"github.com/leoclub/points-tracker-api/internal/spreadsheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportService interface {
	ImportMembers(ctx context.Context, acting domain.ActingUser, rows []domain.ImportRow) (domain.ImportResult, error)
}

type ImportHandler struct {
	svc  ImportService
	uSvc UserService
}

func NewImportHandler(svc ImportService, uSvc UserService) *ImportHandler {
	return &ImportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleImportMembers godoc
// @Summary      Bulk import members from a workbook
// @Description  Rows are processed in order; failed rows are reported with their spreadsheet row number and never abort the batch.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "xlsx workbook"
// @Success      200  {object}  domain.ImportResult
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/import [post]
// @Security BearerAuth
func (h *ImportHandler) HandleImportMembers(ctx *gin.Context) {
	_, acting, respErr := getActingUser(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("file")
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

	rows, err := spreadsheet.ParseMemberRows(file)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unreadable workbook: %w", err)))
		return
	}

	result, err := h.svc.ImportMembers(ctx.Request.Context(), acting, rows)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
			return
		}

		err = fmt.Errorf("v1.HandleImportMembers -> h.svc.ImportMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleDownloadImportTemplate godoc
// @Summary      Download the member import template
// @Tags         import
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  response.Err
// @Router       /members/import/template [get]
// @Security BearerAuth
func (h *ImportHandler) HandleDownloadImportTemplate(ctx *gin.Context) {
	file, err := spreadsheet.BuildTemplate()
	if err != nil {
		err = fmt.Errorf("v1.HandleDownloadImportTemplate -> spreadsheet.BuildTemplate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer file.Close()

	ctx.Header("Content-Disposition", `attachment; filename="member_import_template.xlsx"`)
	ctx.Header("Content-Type", xlsxContentType)

	if err = file.Write(ctx.Writer); err != nil {
		err = fmt.Errorf("v1.HandleDownloadImportTemplate -> file.Write -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
}
