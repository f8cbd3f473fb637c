package providerRepo

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

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a ProviderRepository on the "serviceproviders" collection of db.
func NewMongoProviderRepo(db *mongo.Database) ProviderRepository {
	repo := &MongoProviderRepo{coll: db.Collection("serviceproviders")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create provider indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.ServiceProvider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateProfile
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.ServiceProvider, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.ServiceProvider, error) {
	return r.findOne(ctx, bson.M{"user": userID})
}

func (r *MongoProviderRepo) findOne(ctx context.Context, filter bson.M) (*models.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.ServiceProvider
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) Update(ctx context.Context, id string, req models.UpdateProviderRequest) (*models.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Skills != nil {
		set["skills"] = *req.Skills
	}
	if req.Experience != nil {
		set["experience"] = *req.Experience
	}
	if req.HourlyRate != nil {
		set["hourlyRate"] = *req.HourlyRate
	}
	if req.DailyRate != nil {
		set["dailyRate"] = *req.DailyRate
	}
	if req.MinBookingHours != nil {
		set["minBookingHours"] = *req.MinBookingHours
	}
	if req.Availability != nil {
		set["availability"] = *req.Availability
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.IsAvailable != nil {
		set["isAvailable"] = *req.IsAvailable
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var provider models.ServiceProvider
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) SetRating(ctx context.Context, id string, rating models.RatingSummary) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": rating, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) IncrementJobs(ctx context.Context, id string, completed, cancelled int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{
		"totalJobs.completed": completed,
		"totalJobs.cancelled": cancelled,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update job totals for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
