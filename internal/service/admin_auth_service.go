package service

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sun6bks/ticket-api/internal/models"
	"github.com/sun6bks/ticket-api/internal/repository"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not leak which one it was.
var ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")

// AdminAuthService authenticates dashboard operators.
type AdminAuthService struct {
	admins *repository.AdminUserRepository
}

// NewAdminAuthService creates an AdminAuthService.
func NewAdminAuthService(admins *repository.AdminUserRepository) *AdminAuthService {
	return &AdminAuthService{admins: admins}
}

// Login verifies the credentials and returns a signed JWT plus the admin
// profile.
func (s *AdminAuthService) Login(email, password string) (string, *models.AdminUser, error) {
	admin, err := s.admins.GetByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !admin.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
