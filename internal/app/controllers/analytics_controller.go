package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/app/services"
	"github.com/villageedu/api/internal/middleware"
)

// AnalyticsController serves the admin analytics endpoints
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// Overview returns the full analytics payload
// @Summary Analytics overview
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminAnalytics}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	analytics, err := c.analyticsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics, ""))
}

// DashboardSummary returns headline counts and the latest enrollments
// @Summary Dashboard summary
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummary}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard/summary [get]
func (c *AnalyticsController) DashboardSummary(ctx *gin.Context) {
	summary, err := c.analyticsService.DashboardSummary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, ""))
}

// CourseAnalytics returns the enrollment analytics of one course
// @Summary Course analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseAnalytics}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics/course/{courseId} [get]
func (c *AnalyticsController) CourseAnalytics(ctx *gin.Context) {
	analytics, err := c.analyticsService.CourseAnalytics(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics, ""))
}

// CategoryAnalytics returns the course analytics of one category
// @Summary Category analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param category path string true "hindi, english, math, science or computer"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryAnalytics}
// @Failure 400 {object} dto.ErrorResponse "Invalid course category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics/category/{category} [get]
func (c *AnalyticsController) CategoryAnalytics(ctx *gin.Context) {
	analytics, err := c.analyticsService.CategoryAnalytics(ctx.Request.Context(), ctx.Param("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics, ""))
}
