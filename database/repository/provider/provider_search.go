package providerRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"karigar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DirectorySort returns the sort document for a directory sort key. Every order ends
// on id so that equal keys still page deterministically.
func DirectorySort(sortBy string) bson.D {
	var sort bson.D
	switch sortBy {
	case models.SortByRating:
		sort = bson.D{{Key: "rating.average", Value: -1}}
	case models.SortByPrice:
		sort = bson.D{{Key: "hourlyRate", Value: 1}}
	case models.SortByExperience:
		sort = bson.D{{Key: "experience", Value: -1}}
	default:
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	return append(sort, bson.E{Key: "id", Value: 1})
}

// DirectoryFilter builds the match document for q.
func DirectoryFilter(q models.DirectoryQuery) bson.M {
	filter := bson.M{"isAvailable": true}
	if q.ServiceType != "" {
		filter["serviceType"] = q.ServiceType
	}
	if q.City != "" {
		filter["location.city"] = bson.M{"$regex": regexp.QuoteMeta(q.City), "$options": "i"}
	}
	if q.MinRating > 0 {
		filter["rating.average"] = bson.M{"$gte": q.MinRating}
	}
	return filter
}

func (r *MongoProviderRepo) Search(ctx context.Context, q models.DirectoryQuery) ([]models.ServiceProvider, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := DirectoryFilter(q)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %w", err)
	}

	page := models.Page{Page: q.Page, Limit: q.Limit}
	opts := options.Find().
		SetSort(DirectorySort(q.SortBy)).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"documents": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.ServiceProvider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, total, nil
}
