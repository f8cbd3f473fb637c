package providerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for the directory filters and sort keys.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// one profile per user
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isAvailable", Value: 1}, {Key: "serviceType", Value: 1}, {Key: "rating.average", Value: -1}}},
		{Keys: bson.D{{Key: "isAvailable", Value: 1}, {Key: "hourlyRate", Value: 1}}},
		{Keys: bson.D{{Key: "isAvailable", Value: 1}, {Key: "experience", Value: -1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
