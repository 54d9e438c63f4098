package service

import (
	"context"
	"errors"

	"clinic-app-server/internal/repository"
)

// AdminService authenticates back-office admins.
type AdminService struct {
	admins repository.AdminRepository
	tokens *TokenService
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins repository.AdminRepository, tokens *TokenService) *AdminService {
	return &AdminService{admins: admins, tokens: tokens}
}

// Login validates an admin's credentials and issues a token bound to the
// admin's username.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", ErrInternal
	}
	if !admin.CheckPassword(password) {
		return "", ErrUnauthorized
	}
	return s.tokens.Generate(admin.Username)
}
