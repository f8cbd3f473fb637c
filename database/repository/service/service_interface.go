package serviceRepo

import (
	"context"

	"karigar/models"
)

// ServiceRepository defines methods for catalog service data access.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	// GetByID returns repository.ErrNotFound when no service has the id.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// ListByProvider returns every service owned by a provider user, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	// Update applies the non-nil fields of req.
	Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}
