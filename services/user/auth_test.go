package user

import (
	"context"
	"strings"
	"testing"

	"karigar/config"
	"karigar/database/repository/memstore"
	"karigar/models"
	"karigar/utils"
)

func init() {
	config.AppConfig.JWTSecret = "user-test-secret"
}

func strPtr(s string) *string { return &s }

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if got := utils.KindOf(err); err == nil || got != kind {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

func register(t *testing.T, svc *DefaultUserService, name, email string) *models.User {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterRequest{Name: name, Email: email, Password: "secret123"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return resp.User
}

func TestRegister_PasswordBounds(t *testing.T) {
	svc := &DefaultUserService{Repo: memstore.New().Users()}
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "A", Email: "a@example.com", Password: "12345"})
	expectKind(t, err, utils.KindValidation)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "A", Email: "a@example.com", Password: strings.Repeat("x", 73)})
	expectKind(t, err, utils.KindValidation)

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "A", Email: "A@Example.com", Password: strings.Repeat("x", 72)})
	if err != nil {
		t.Fatalf("72-byte password should be accepted: %v", err)
	}
	if resp.User.Role != models.RoleCustomer || resp.User.Email != "a@example.com" || resp.Token == "" {
		t.Errorf("registered user = %+v", resp.User)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: strings.Repeat("x", 72)}); err != nil {
		t.Errorf("login: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := &DefaultUserService{Repo: memstore.New().Users()}
	ctx := context.Background()
	asha := register(t, svc, "Asha", "asha@example.com")
	register(t, svc, "Ravi", "ravi@example.com")

	u, err := svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Name: strPtr("  Asha K "), Phone: strPtr("9876543210")})
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Asha K" || u.Phone != "9876543210" || u.Email != "asha@example.com" {
		t.Errorf("updated user = %+v", u)
	}

	u, err = svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Email: strPtr(" Asha.K@Example.com ")})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "asha.k@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Email: "asha.k@example.com", Password: "secret123"}); err != nil {
		t.Errorf("login with new email: %v", err)
	}

	// re-sending the current email is not a conflict
	if _, err := svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Email: strPtr("asha.k@example.com")}); err != nil {
		t.Errorf("unchanged email: %v", err)
	}

	_, err = svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Email: strPtr("ravi@example.com")})
	expectKind(t, err, utils.KindConflict)

	_, err = svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Phone: strPtr("12345")})
	expectKind(t, err, utils.KindValidation)
	_, err = svc.UpdateProfile(ctx, asha.ID, models.UpdateProfileRequest{Name: strPtr("   ")})
	expectKind(t, err, utils.KindValidation)
	_, err = svc.UpdateProfile(ctx, "nobody", models.UpdateProfileRequest{Name: strPtr("X")})
	expectKind(t, err, utils.KindNotFound)
}
