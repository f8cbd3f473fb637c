package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"karigar/database/repository"
	userRepo "karigar/database/repository/user"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService registers and authenticates accounts.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
}

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
	maxNameLength    = 50
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	TokenTTL time.Duration
}

var _ UserService = (*DefaultUserService)(nil)

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, utils.NewValidationError("name, email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.NewValidationError("password must be at least %d characters", minPasswordLength)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, utils.NewValidationError("password must be at most %d bytes", maxPasswordBytes)
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	// Admins are provisioned out of band.
	if req.Role != models.RoleCustomer && req.Role != models.RoleServiceProvider {
		return nil, utils.NewValidationError("role must be customer or service_provider")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("Failed to register user", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        strings.TrimSpace(req.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.NewConflictError("A user with this email already exists")
		}
		return nil, utils.NewInternalError("Failed to register user", err)
	}
	utils.GetLogger().Info("User registered", zap.String("userID", u.ID), zap.String("role", string(u.Role)))
	return s.issue(u)
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewUnauthenticatedError("Invalid email or password")
		}
		return nil, utils.NewInternalError("Failed to log in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewUnauthenticatedError("Invalid email or password")
	}
	return s.issue(u)
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("User")
		}
		return nil, utils.NewInternalError("Failed to load user", err)
	}
	return u, nil
}

// UpdateProfile changes the caller's name, email or phone.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len([]rune(name)) > maxNameLength {
			return nil, utils.NewValidationError("name must be 1 to %d characters", maxNameLength)
		}
		req.Name = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, utils.NewValidationError("email is not valid")
		}
		req.Email = &email
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && !phonePattern.MatchString(phone) {
			return nil, utils.NewValidationError("phone must be a 10-digit number")
		}
		req.Phone = &phone
	}

	u, err := s.Repo.UpdateProfile(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NewNotFoundError("User")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, utils.NewConflictError("A user with this email already exists")
		}
		return nil, utils.NewInternalError("Failed to update profile", err)
	}
	utils.GetLogger().Info("User profile updated", zap.String("userID", userID))
	return u, nil
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	token, err := utils.GenerateToken(u.ID, string(u.Role), u.Email, ttl)
	if err != nil {
		return nil, utils.NewInternalError("Failed to issue token", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
