package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/service"
)

// memberPatients implements only the membership lookup the token service
// needs; everything else panics via the embedded nil interface.
type memberPatients struct {
	repository.PatientRepository
	emails map[string]bool
}

func (m memberPatients) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.emails[email], nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	patients := memberPatients{emails: map[string]bool{"alice@example.com": true}}
	tokens := service.NewTokenService("test-secret", 7, nil, nil, patients)

	router := gin.New()
	router.GET("/protected", middleware.RequireRole(tokens, service.RolePatient), func(c *gin.Context) {
		subject, _ := middleware.GetSubjectFromContext(c)
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	return router, tokens
}

func TestRequireRole(t *testing.T) {
	router, tokens := newTestRouter(t)

	memberToken, err := tokens.Generate("alice@example.com")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	strangerToken, err := tokens.Generate("mallory@example.com")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + memberToken, http.StatusUnauthorized},
		{"malformed header", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"valid token, not a member", "Bearer " + strangerToken, http.StatusUnauthorized},
		{"member", "Bearer " + memberToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRequireRoleSetsSubject(t *testing.T) {
	router, tokens := newTestRouter(t)

	token, err := tokens.Generate("alice@example.com")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if want := `"subject":"alice@example.com"`; !strings.Contains(rec.Body.String(), want) {
		t.Errorf("body %s does not contain %s", rec.Body.String(), want)
	}
}
