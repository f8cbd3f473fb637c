package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"karigar/database/repository"
	providerRepo "karigar/database/repository/provider"
	"karigar/models"
	"karigar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultDirectoryLimit = 20
	MaxDirectoryLimit     = 100
	MaxProviderImages     = 10
	MaxDescriptionLength  = 1000
)

// ProviderService serves the public directory and lets providers manage their own profile.
type ProviderService interface {
	SearchDirectory(ctx context.Context, q models.DirectoryQuery) (models.PageResult[models.ServiceProvider], error)
	GetProvider(ctx context.Context, id string) (*models.ServiceProvider, error)
	GetAvailability(ctx context.Context, id string) (*Availability, error)
	GetMyProfile(ctx context.Context, userID string) (*models.ServiceProvider, error)
	CreateProfile(ctx context.Context, userID string, req models.CreateProviderRequest) (*models.ServiceProvider, error)
	UpdateMyProfile(ctx context.Context, userID string, req models.UpdateProviderRequest) (*models.ServiceProvider, error)
}

// Availability is the public availability view of a provider.
type Availability struct {
	ProviderID      string                    `json:"providerId"`
	IsAvailable     bool                      `json:"isAvailable"`
	MinBookingHours float64                   `json:"minBookingHours"`
	Weekly          models.WeeklyAvailability `json:"availability"`
}

// PageCache caches directory pages by directory version.
type PageCache interface {
	Version(ctx context.Context) (int64, bool)
	Get(ctx context.Context, version int64, q models.DirectoryQuery) (*models.PageResult[models.ServiceProvider], bool)
	Set(ctx context.Context, version int64, q models.DirectoryQuery, page models.PageResult[models.ServiceProvider])
	Invalidate(ctx context.Context)
}

// DefaultProviderService is the production implementation. A nil Cache disables caching.
type DefaultProviderService struct {
	Repo  providerRepo.ProviderRepository
	Cache PageCache
}

var _ ProviderService = (*DefaultProviderService)(nil)

func NewDefaultProviderService(repo providerRepo.ProviderRepository, cache *DirectoryCache) *DefaultProviderService {
	return &DefaultProviderService{Repo: repo, Cache: cache}
}

func (s *DefaultProviderService) pages() PageCache {
	if s.Cache == nil {
		return (*DirectoryCache)(nil)
	}
	return s.Cache
}

// NormalizeQuery validates q and fills page, limit and sort defaults.
func NormalizeQuery(q models.DirectoryQuery) (models.DirectoryQuery, error) {
	q.ServiceType = strings.TrimSpace(q.ServiceType)
	q.City = strings.TrimSpace(q.City)
	switch q.SortBy {
	case "":
		q.SortBy = models.SortByRecency
	case models.SortByRating, models.SortByPrice, models.SortByExperience, models.SortByRecency:
	default:
		return q, utils.NewValidationError("sortBy must be one of rating, price, experience, recency")
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return q, utils.NewValidationError("minRating must be between 0 and 5")
	}
	page := utils.NormalizePage(q.Page, q.Limit, DefaultDirectoryLimit, MaxDirectoryLimit)
	q.Page, q.Limit = page.Page, page.Limit
	return q, nil
}

func (s *DefaultProviderService) SearchDirectory(ctx context.Context, q models.DirectoryQuery) (models.PageResult[models.ServiceProvider], error) {
	q, err := NormalizeQuery(q)
	if err != nil {
		return models.PageResult[models.ServiceProvider]{}, err
	}
	version, cacheable := s.pages().Version(ctx)
	if cacheable {
		if cached, ok := s.pages().Get(ctx, version, q); ok {
			return *cached, nil
		}
	}

	items, total, err := s.Repo.Search(ctx, q)
	if err != nil {
		return models.PageResult[models.ServiceProvider]{}, utils.NewInternalError("Failed to search service providers", err)
	}
	result := models.NewPageResult(items, total, models.Page{Page: q.Page, Limit: q.Limit})
	if cacheable {
		s.pages().Set(ctx, version, q, result)
	}
	return result, nil
}

func (s *DefaultProviderService) GetProvider(ctx context.Context, id string) (*models.ServiceProvider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	p.Documents = nil
	return p, nil
}

func (s *DefaultProviderService) GetAvailability(ctx context.Context, id string) (*Availability, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return &Availability{
		ProviderID:      p.ID,
		IsAvailable:     p.IsAvailable,
		MinBookingHours: p.MinBookingHours,
		Weekly:          p.Availability,
	}, nil
}

func (s *DefaultProviderService) GetMyProfile(ctx context.Context, userID string) (*models.ServiceProvider, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return p, nil
}

func (s *DefaultProviderService) CreateProfile(ctx context.Context, userID string, req models.CreateProviderRequest) (*models.ServiceProvider, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &models.ServiceProvider{
		ID:              uuid.New().String(),
		UserID:          userID,
		ServiceType:     req.ServiceType,
		Description:     req.Description,
		Skills:          req.Skills,
		Experience:      req.Experience,
		HourlyRate:      req.HourlyRate,
		DailyRate:       req.DailyRate,
		MinBookingHours: req.MinBookingHours,
		Availability:    req.Availability,
		Location:        req.Location,
		Images:          req.Images,
		Documents:       req.Documents,
		IsAvailable:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.MinBookingHours == 0 {
		p.MinBookingHours = 1
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateProfile) {
			return nil, utils.NewConflictError("Service provider profile already exists")
		}
		return nil, utils.NewInternalError("Failed to create service provider profile", err)
	}
	s.pages().Invalidate(ctx)
	utils.GetLogger().Info("Service provider profile created", zap.String("providerID", p.ID), zap.String("userID", userID))
	return p, nil
}

func (s *DefaultProviderService) UpdateMyProfile(ctx context.Context, userID string, req models.UpdateProviderRequest) (*models.ServiceProvider, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}
	current, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	updated, err := s.Repo.Update(ctx, current.ID, req)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	s.pages().Invalidate(ctx)
	return updated, nil
}

func mapLookupErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError("Service provider")
	}
	return utils.NewInternalError("Failed to load service provider", err)
}

func validateCreate(req *models.CreateProviderRequest) error {
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Description = strings.TrimSpace(req.Description)
	if !models.IsKnownServiceType(req.ServiceType) {
		return utils.NewValidationError("serviceType must be one of %s", strings.Join(models.ServiceTypes, ", "))
	}
	if req.Description == "" {
		return utils.NewValidationError("description is required")
	}
	if len([]rune(req.Description)) > MaxDescriptionLength {
		return utils.NewValidationError("description must be at most %d characters", MaxDescriptionLength)
	}
	if req.HourlyRate <= 0 {
		return utils.NewValidationError("hourlyRate must be positive")
	}
	if req.DailyRate < 0 || req.Experience < 0 || req.MinBookingHours < 0 {
		return utils.NewValidationError("dailyRate, experience and minBookingHours cannot be negative")
	}
	if strings.TrimSpace(req.Location.City) == "" {
		return utils.NewValidationError("location.city is required")
	}
	if len(req.Images) > MaxProviderImages {
		return utils.NewValidationError("at most %d images are allowed", MaxProviderImages)
	}
	return nil
}

func validateUpdate(req models.UpdateProviderRequest) error {
	if req.Description != nil && len([]rune(*req.Description)) > MaxDescriptionLength {
		return utils.NewValidationError("description must be at most %d characters", MaxDescriptionLength)
	}
	if req.HourlyRate != nil && *req.HourlyRate <= 0 {
		return utils.NewValidationError("hourlyRate must be positive")
	}
	if (req.DailyRate != nil && *req.DailyRate < 0) ||
		(req.Experience != nil && *req.Experience < 0) ||
		(req.MinBookingHours != nil && *req.MinBookingHours < 0) {
		return utils.NewValidationError("dailyRate, experience and minBookingHours cannot be negative")
	}
	if req.Location != nil && strings.TrimSpace(req.Location.City) == "" {
		return utils.NewValidationError("location.city is required")
	}
	return nil
}
