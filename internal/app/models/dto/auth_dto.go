package dto

import "github.com/villageedu/api/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// StudentRegisterRequest represents the student registration form
type StudentRegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required,max=100" example:"Asha"`
	LastName        string `json:"lastName" binding:"required,max=100" example:"Kumari"`
	FathersName     string `json:"fathersName" binding:"required,max=150"`
	MothersName     string `json:"mothersName" binding:"required,max=150"`
	Email           string `json:"email" binding:"required,email,max=255" example:"asha@example.com"`
	Mobile          string `json:"mobile" binding:"required,max=20" example:"9876543210"`
	Password        string `json:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	DateOfBirth     string `json:"dateOfBirth" binding:"required,max=20" example:"2012-04-01"`
	Gender          string `json:"gender" binding:"required,max=20" example:"female"`
	State           string `json:"state" binding:"required,max=100" example:"बिहार / Bihar"`
	City            string `json:"city" binding:"required,max=100" example:"Patna"`
	Pincode         string `json:"pincode" binding:"required,max=10" example:"800001"`
	CurrentClass    string `json:"currentClass" binding:"required,max=20" example:"5th"`
	School          string `json:"school" binding:"required,max=255"`
	Medium          string `json:"medium" binding:"required,max=50" example:"हिंदी / Hindi"`
	TermsAccepted   bool   `json:"termsAccepted"`
}

// AdminRegisterRequest represents admin account creation
type AdminRegisterRequest struct {
	FullName string           `json:"fullName" binding:"required,max=150" example:"Site Admin"`
	Email    string           `json:"email" binding:"required,email,max=255" example:"admin@villageedu.in"`
	Password string           `json:"password" binding:"required,min=6,max=72"`
	Role     models.AdminRole `json:"role" binding:"omitempty,admin_role" example:"admin"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"604800"`
}

// AdminResponse is the public view of an admin account
type AdminResponse struct {
	ID       string           `json:"id"`
	FullName string           `json:"fullName"`
	Email    string           `json:"email"`
	Role     models.AdminRole `json:"role"`
}

// StudentAuthResponse is returned by student register and login
type StudentAuthResponse struct {
	Student *models.Student `json:"student"`
	Token   TokenResponse   `json:"token"`
}

// AdminAuthResponse is returned by admin register and login
type AdminAuthResponse struct {
	Admin AdminResponse `json:"admin"`
	Token TokenResponse `json:"token"`
}

// FromAdmin converts an admin model to its public view
func FromAdmin(admin *models.Admin) AdminResponse {
	if admin == nil {
		return AdminResponse{}
	}
	return AdminResponse{
		ID:       admin.ID,
		FullName: admin.FullName,
		Email:    admin.Email,
		Role:     admin.Role,
	}
}

// NewTokenResponse builds a bearer token response
func NewTokenResponse(token string, expiresIn int) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}
}
