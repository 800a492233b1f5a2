package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/pkg/apperrors"
	"github.com/villageedu/api/internal/pkg/auth"
)

const minPasswordLength = 6

// AuthService handles student and admin accounts and credential issuance
type AuthService interface {
	RegisterStudent(ctx context.Context, req dto.StudentRegisterRequest) (*dto.StudentAuthResponse, error)
	LoginStudent(ctx context.Context, req dto.LoginRequest) (*dto.StudentAuthResponse, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	RegisterAdmin(ctx context.Context, req dto.AdminRegisterRequest) (*dto.AdminAuthResponse, error)
	LoginAdmin(ctx context.Context, req dto.LoginRequest) (*dto.AdminAuthResponse, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
}

type authServiceImpl struct {
	students   StudentStore
	admins     AdminStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(students StudentStore, admins AdminStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		students:   students,
		admins:     admins,
		jwtService: jwtService,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if password != confirm {
		return apperrors.NewValidationError("Passwords do not match")
	}
	return nil
}

var invalidCredentials = apperrors.NewUnauthenticatedError(apperrors.ErrInvalidCredentials, "Invalid credentials")

// RegisterStudent creates a student account and returns it with a token
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req dto.StudentRegisterRequest) (*dto.StudentAuthResponse, error) {
	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		FathersName:   strings.TrimSpace(req.FathersName),
		MothersName:   strings.TrimSpace(req.MothersName),
		Email:         normalizeEmail(req.Email),
		Mobile:        strings.TrimSpace(req.Mobile),
		PasswordHash:  hash,
		DateOfBirth:   strings.TrimSpace(req.DateOfBirth),
		Gender:        strings.TrimSpace(req.Gender),
		State:         strings.TrimSpace(req.State),
		City:          strings.TrimSpace(req.City),
		Pincode:       strings.TrimSpace(req.Pincode),
		CurrentClass:  strings.TrimSpace(req.CurrentClass),
		School:        strings.TrimSpace(req.School),
		Medium:        strings.TrimSpace(req.Medium),
		TermsAccepted: req.TermsAccepted,
	}

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Student already exists")
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().Str("studentID", student.ID).Msg("Student registered")
	return s.studentSession(student)
}

// LoginStudent checks credentials and issues a student token
func (s *authServiceImpl) LoginStudent(ctx context.Context, req dto.LoginRequest) (*dto.StudentAuthResponse, error) {
	student, err := s.students.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, invalidCredentials
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if !auth.CheckPassword(student.PasswordHash, req.Password) {
		s.logger.Warn().Str("studentID", student.ID).Msg("Student login with wrong password")
		return nil, invalidCredentials
	}
	return s.studentSession(student)
}

// GetStudent returns a student profile
func (s *authServiceImpl) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student not found")
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	return student, nil
}

// RegisterAdmin creates an admin account. The role defaults to admin.
func (s *authServiceImpl) RegisterAdmin(ctx context.Context, req dto.AdminRegisterRequest) (*dto.AdminAuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("Role must be admin or superadmin")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Admin already exists")
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info().Str("adminID", admin.ID).Str("role", string(admin.Role)).Msg("Admin registered")
	return s.adminSession(admin)
}

// LoginAdmin checks credentials and issues an admin token
func (s *authServiceImpl) LoginAdmin(ctx context.Context, req dto.LoginRequest) (*dto.AdminAuthResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, invalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.logger.Warn().Str("adminID", admin.ID).Msg("Admin login with wrong password")
		return nil, invalidCredentials
	}
	return s.adminSession(admin)
}

// GetAdmin returns an admin account
func (s *authServiceImpl) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrAdminNotFound, "Admin not found")
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	return admin, nil
}

func (s *authServiceImpl) studentSession(student *models.Student) (*dto.StudentAuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(models.PrincipalStudent, student.ID, string(models.PrincipalStudent))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.StudentAuthResponse{Student: student, Token: dto.NewTokenResponse(token, expiresIn)}, nil
}

func (s *authServiceImpl) adminSession(admin *models.Admin) (*dto.AdminAuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(models.PrincipalAdmin, admin.ID, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.AdminAuthResponse{Admin: dto.FromAdmin(admin), Token: dto.NewTokenResponse(token, expiresIn)}, nil
}
