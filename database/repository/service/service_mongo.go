package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a ServiceRepository on the "services" collection of db.
func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	repo := &MongoServiceRepo{coll: db.Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create service indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"provider": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) Update(ctx context.Context, id string, req models.UpdateServiceRequest) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.ServiceType != nil {
		set["serviceType"] = *req.ServiceType
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.PriceType != nil {
		set["priceType"] = *req.PriceType
	}
	if req.Availability != nil {
		set["availability"] = *req.Availability
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Experience != nil {
		set["experience"] = *req.Experience
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var service models.Service
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update service with id %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
