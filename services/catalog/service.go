package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"karigar/database/repository"
	serviceRepo "karigar/database/repository/service"
	userRepo "karigar/database/repository/user"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// CatalogService manages the priced services a provider offers.
type CatalogService interface {
	CreateService(ctx context.Context, providerID string, req models.CreateServiceRequest) (*models.Service, error)
	MyServices(ctx context.Context, providerID string) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.ServiceDetail, error)
	UpdateService(ctx context.Context, providerID, id string, req models.UpdateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, providerID, id string) error
}

// DefaultCatalogService is the production implementation. Users is optional;
// without it GetService omits the owner's contact card.
type DefaultCatalogService struct {
	Repo  serviceRepo.ServiceRepository
	Users userRepo.UserRepository
	Now   func() time.Time
}

var _ CatalogService = (*DefaultCatalogService)(nil)

func NewDefaultCatalogService(repo serviceRepo.ServiceRepository, users userRepo.UserRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Users: users, Now: time.Now}
}

func (s *DefaultCatalogService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, providerID string, req models.CreateServiceRequest) (*models.Service, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}
	now := s.now()
	svc := &models.Service{
		ID:           uuid.New().String(),
		ProviderID:   providerID,
		ServiceType:  req.ServiceType,
		Title:        req.Title,
		Description:  req.Description,
		Price:        roundPrice(req.Price),
		PriceType:    req.PriceType,
		Availability: req.Availability,
		IsActive:     true,
		Location:     req.Location,
		Experience:   req.Experience,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, utils.NewInternalError("Failed to create service", err)
	}
	utils.GetLogger().Info("Catalog service created", zap.String("serviceID", svc.ID), zap.String("providerID", providerID))
	return svc, nil
}

func (s *DefaultCatalogService) MyServices(ctx context.Context, providerID string) ([]models.Service, error) {
	services, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch services", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

// GetService is open to any authenticated user and carries the owner's contact card.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.ServiceDetail, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.ServiceDetail{Service: *svc}
	if s.Users == nil {
		return detail, nil
	}
	owner, err := s.Users.GetByID(ctx, svc.ProviderID)
	switch {
	case err == nil:
		detail.Owner = &models.ServiceOwner{ID: owner.ID, Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	case errors.Is(err, repository.ErrNotFound):
	default:
		utils.GetLogger().Warn("Failed to load service owner", zap.String("serviceID", id), zap.Error(err))
	}
	return detail, nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, providerID, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	if err := validateUpdate(&req); err != nil {
		return nil, err
	}
	if _, err := s.loadOwned(ctx, providerID, id, "update"); err != nil {
		return nil, err
	}
	updated, err := s.Repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Service")
		}
		return nil, utils.NewInternalError("Failed to update service", err)
	}
	return updated, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, providerID, id string) error {
	if _, err := s.loadOwned(ctx, providerID, id, "delete"); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError("Service")
		}
		return utils.NewInternalError("Failed to delete service", err)
	}
	utils.GetLogger().Info("Catalog service deleted", zap.String("serviceID", id), zap.String("providerID", providerID))
	return nil
}

func (s *DefaultCatalogService) load(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Service")
		}
		return nil, utils.NewInternalError("Failed to fetch service", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) loadOwned(ctx context.Context, providerID, id, action string) (*models.Service, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != providerID {
		return nil, utils.NewAuthorizationError("Not authorized to " + action + " this service")
	}
	return svc, nil
}

func roundPrice(p float64) float64 {
	f, _ := decimal.NewFromFloat(p).Round(2).Float64()
	return f
}

func validateCreate(req *models.CreateServiceRequest) error {
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.PriceType == "" {
		req.PriceType = models.PriceFixed
	}
	if !models.IsKnownServiceType(req.ServiceType) {
		return utils.NewValidationError("serviceType must be one of %s", strings.Join(models.ServiceTypes, ", "))
	}
	if err := checkTitle(req.Title); err != nil {
		return err
	}
	if err := checkDescription(req.Description); err != nil {
		return err
	}
	if req.Price < 0 {
		return utils.NewValidationError("price cannot be negative")
	}
	if !req.PriceType.Valid() {
		return utils.NewValidationError("priceType must be hourly, fixed or per_service")
	}
	if req.Experience < 0 {
		return utils.NewValidationError("experience cannot be negative")
	}
	return nil
}

func validateUpdate(req *models.UpdateServiceRequest) error {
	if req.ServiceType != nil {
		t := strings.TrimSpace(*req.ServiceType)
		if !models.IsKnownServiceType(t) {
			return utils.NewValidationError("serviceType must be one of %s", strings.Join(models.ServiceTypes, ", "))
		}
		req.ServiceType = &t
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := checkTitle(title); err != nil {
			return err
		}
		req.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if err := checkDescription(description); err != nil {
			return err
		}
		req.Description = &description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return utils.NewValidationError("price cannot be negative")
		}
		p := roundPrice(*req.Price)
		req.Price = &p
	}
	if req.PriceType != nil && !req.PriceType.Valid() {
		return utils.NewValidationError("priceType must be hourly, fixed or per_service")
	}
	if req.Experience != nil && *req.Experience < 0 {
		return utils.NewValidationError("experience cannot be negative")
	}
	return nil
}

func checkTitle(title string) error {
	if title == "" || len([]rune(title)) > MaxTitleLength {
		return utils.NewValidationError("title must be 1 to %d characters", MaxTitleLength)
	}
	return nil
}

func checkDescription(description string) error {
	if description == "" || len([]rune(description)) > MaxDescriptionLength {
		return utils.NewValidationError("description must be 1 to %d characters", MaxDescriptionLength)
	}
	return nil
}
