// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/app/services"
	"github.com/villageedu/api/internal/middleware"
)

// AuthController handles student and admin account endpoints
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterStudent handles student registration
// @Summary Register a student
// @Description Creates a student account and returns it with an access token
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.StudentRegisterRequest true "Registration form"
// @Success 201 {object} dto.APIResponse{data=dto.StudentAuthResponse} "Student registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RegisterStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentId", resp.Student.ID).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Student registered successfully"))
}

// LoginStudent handles student login
// @Summary Student login
// @Description Authenticates a student by email and password
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.StudentAuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.LoginStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// StudentProfile returns the authenticated student
// @Summary Current student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/me [get]
func (c *AuthController) StudentProfile(ctx *gin.Context) {
	student, ok := middleware.CurrentStudent(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "No token provided")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// RegisterAdmin handles admin registration
// @Summary Register an admin
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AdminRegisterRequest true "Admin account"
// @Success 201 {object} dto.APIResponse{data=dto.AdminAuthResponse} "Admin registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Admin already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/register [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.AdminRegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RegisterAdmin(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("adminId", resp.Admin.ID).Str("role", string(resp.Admin.Role)).Msg("Admin registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Admin registered successfully"))
}

// LoginAdmin handles admin login
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminAuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func (c *AuthController) LoginAdmin(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.LoginAdmin(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}
