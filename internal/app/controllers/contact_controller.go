package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/app/services"
	"github.com/villageedu/api/internal/middleware"
	"github.com/villageedu/api/internal/pkg/helpers"
	"github.com/villageedu/api/internal/pkg/report"
)

// ContactController handles the public contact form and its admin tooling
type ContactController struct {
	contactService services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// SubmitContact records a contact form submission
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.SubmitContactRequest true "Contact form"
// @Success 201 {object} dto.APIResponse{data=models.Contact} "Contact form submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid contact data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact [post]
func (c *ContactController) SubmitContact(ctx *gin.Context) {
	var req dto.SubmitContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	contact, err := c.contactService.Submit(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(contact, "Contact form submitted successfully"))
}

// ListContacts returns a page of contacts
// @Summary List contacts
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param category query string false "Contact category"
// @Param preferredLanguage query string false "hindi or english"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Contact}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/contacts [get]
func (c *ContactController) ListContacts(ctx *gin.Context) {
	page := helpers.ParsePaginationParams(ctx)

	contacts, pagination, err := c.contactService.List(ctx.Request.Context(), ctx.Query("category"), ctx.Query("preferredLanguage"), page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(contacts, pagination))
}

// SearchContacts runs a free-text search over contacts
// @Summary Search contacts
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Contact}
// @Failure 400 {object} dto.ErrorResponse "Search query is required"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/contacts/search [get]
func (c *ContactController) SearchContacts(ctx *gin.Context) {
	page := helpers.ParsePaginationParams(ctx)

	contacts, pagination, err := c.contactService.Search(ctx.Request.Context(), ctx.Query("query"), page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(contacts, pagination))
}

// GetContact returns one contact
// @Summary Get contact by ID
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.APIResponse{data=models.Contact}
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Router /contact/contacts/{id} [get]
func (c *ContactController) GetContact(ctx *gin.Context) {
	contact, err := c.contactService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(contact, ""))
}

// DeleteContact removes a contact
// @Summary Delete contact
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.APIResponse "Contact deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Contact not found"
// @Router /contact/contacts/{id} [delete]
func (c *ContactController) DeleteContact(ctx *gin.Context) {
	if err := c.contactService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Contact deleted successfully"))
}

// CategoryAnalysis breaks contacts down by category, language and month
// @Summary Contact analysis
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param timeframe query string false "all, today, week, month or year" default(all)
// @Success 200 {object} dto.APIResponse{data=dto.ContactAnalysis}
// @Failure 400 {object} dto.ErrorResponse "Invalid timeframe"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/analysis/category [get]
func (c *ContactController) CategoryAnalysis(ctx *gin.Context) {
	analysis, err := c.contactService.Analysis(ctx.Request.Context(), ctx.DefaultQuery("timeframe", services.TimeframeAll))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analysis, ""))
}

// CategoryReport returns one category's contacts with language statistics
// @Summary Contact category report
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param category path string true "Contact category"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CategoryReport}
// @Failure 400 {object} dto.ErrorResponse "Invalid contact category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/analysis/category/{category} [get]
func (c *ContactController) CategoryReport(ctx *gin.Context) {
	rep, err := c.contactService.CategoryReport(ctx.Request.Context(), ctx.Param("category"), helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rep, ""))
}

// ExportCategoryReport downloads one category's contacts as an XLSX workbook
// @Summary Export contact category report
// @Tags contact
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param category path string true "Contact category"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid contact category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/analysis/category/{category}/export [get]
func (c *ContactController) ExportCategoryReport(ctx *gin.Context) {
	data, filename, err := c.contactService.ExportCategoryReport(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, report.XLSXContentType, data)
}

// Dashboard returns contact totals, distributions and the newest submissions
// @Summary Contact dashboard
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ContactDashboard}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contact/analysis/dashboard [get]
func (c *ContactController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.contactService.Dashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard, ""))
}
