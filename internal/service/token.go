package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic-app-server/internal/repository"
)

// Role names accepted by the token validation endpoints. Tokens never carry
// a role claim; the role is re-derived from store membership on every call.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// TokenService issues and verifies bearer tokens. A token binds a single
// subject (an email, or a username for admins) with an expiry and nothing
// else.
type TokenService struct {
	secret   []byte
	expiry   time.Duration
	admins   repository.AdminRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiryDays int, admins repository.AdminRepository, doctors repository.DoctorRepository, patients repository.PatientRepository) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		expiry:   time.Duration(expiryDays) * 24 * time.Hour,
		admins:   admins,
		doctors:  doctors,
		patients: patients,
	}
}

// Generate signs a token for the given subject.
func (s *TokenService) Generate(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Subject extracts the subject from a token. Malformed, badly signed and
// expired tokens all collapse to the empty string.
func (s *TokenService) Subject(tokenString string) string {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.Subject
}

// ValidateRole reports whether the token's subject currently holds the
// claimed role, by existence lookup in the matching identity store. A bad
// token and a wrong role are deliberately indistinguishable to callers.
func (s *TokenService) ValidateRole(ctx context.Context, tokenString, role string) bool {
	subject := s.Subject(tokenString)
	if subject == "" {
		return false
	}

	switch strings.ToLower(role) {
	case RoleAdmin:
		ok, err := s.admins.ExistsByUsername(ctx, subject)
		return err == nil && ok
	case RoleDoctor:
		ok, err := s.doctors.ExistsByEmail(ctx, subject)
		return err == nil && ok
	case RolePatient:
		ok, err := s.patients.ExistsByEmail(ctx, subject)
		return err == nil && ok
	default:
		return false
	}
}
