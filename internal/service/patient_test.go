package service_test

import (
	"context"
	"errors"
	"testing"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/service"
)

func newPatient(t *testing.T, name, email, phone string) *models.Patient {
	t.Helper()
	patient := &models.Patient{Name: name, Email: email, Phone: phone}
	if err := patient.SetPassword("hunter22"); err != nil {
		t.Fatalf("SetPassword() error: %v", err)
	}
	return patient
}

func TestRegister(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	patient := newPatient(t, "Alice Smith", "Alice@Example.com", "5550001111")
	if err := e.patientService.Register(ctx, patient); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if patient.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", patient.Email)
	}

	tests := []struct {
		name    string
		patient *models.Patient
	}{
		{"same email", newPatient(t, "Imposter", "alice@example.com", "5559998888")},
		{"same phone", newPatient(t, "Imposter", "other@example.com", "5550001111")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.patientService.Register(ctx, tt.patient); !errors.Is(err, service.ErrConflict) {
				t.Errorf("Register() error = %v, want ErrConflict", err)
			}
		})
	}
}

func TestPatientLoginAndDetails(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	patient := newPatient(t, "Alice Smith", "alice@example.com", "5550001111")
	if err := e.patientService.Register(ctx, patient); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	token, got, err := e.patientService.Login(ctx, "ALICE@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if got.Name != "Alice Smith" {
		t.Errorf("logged-in patient = %q, want Alice Smith", got.Name)
	}

	details, err := e.patientService.Details(ctx, token)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if details.Email != "alice@example.com" {
		t.Errorf("details email = %q, want alice@example.com", details.Email)
	}

	if _, _, err := e.patientService.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", err)
	}
	if _, err := e.patientService.Details(ctx, "garbage"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("bad token error = %v, want ErrUnauthorized", err)
	}
}

func TestAdminLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.admins.add("root", "s3cret!")

	token, err := e.adminService.Login(ctx, "root", "s3cret!")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if !e.tokens.ValidateRole(ctx, token, service.RoleAdmin) {
		t.Error("issued token does not validate as admin")
	}

	if _, err := e.adminService.Login(ctx, "root", "wrong"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", err)
	}
	if _, err := e.adminService.Login(ctx, "ghost", "s3cret!"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("unknown username error = %v, want ErrUnauthorized", err)
	}
}
