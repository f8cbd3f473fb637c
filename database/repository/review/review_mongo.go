package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/database"
	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository on the "reviews" collection of db.
func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{
		coll:        db.Collection("reviews"),
		bookingColl: db.Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create review indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) CreateAndLink(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, review); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repository.ErrDuplicateReview
			}
			return fmt.Errorf("insert review failed: %w", err)
		}

		filter := bson.M{
			"id":       review.BookingID,
			"status":   models.StatusCompleted,
			"reviewId": bson.M{"$in": bson.A{nil, ""}},
		}
		update := bson.M{"$set": bson.M{
			"reviewId":  review.ID,
			"review":    review.Summary(),
			"updatedAt": review.CreatedAt,
		}}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("link review to booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrDuplicateReview
		}
		return nil
	})
	if errors.Is(err, repository.ErrDuplicateReview) {
		return err
	}
	if err != nil {
		return fmt.Errorf("review transaction failed: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) ListByProvider(ctx context.Context, providerID string, page models.Page) ([]models.Review, int64, error) {
	return r.list(ctx, bson.M{"serviceProvider": providerID}, page)
}

func (r *MongoReviewRepo) ListByCustomer(ctx context.Context, customerID string, page models.Page) ([]models.Review, int64, error) {
	return r.list(ctx, bson.M{"customer": customerID}, page)
}

func (r *MongoReviewRepo) list(ctx context.Context, filter bson.M, page models.Page) ([]models.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepo) OverallRatings(ctx context.Context, providerID string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"rating.overall": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"serviceProvider": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var ratings []int
	for cursor.Next(ctx) {
		var doc struct {
			Rating struct {
				Overall int `bson:"overall"`
			} `bson:"rating"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, doc.Rating.Overall)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings for provider %s: %w", providerID, err)
	}
	return ratings, nil
}

func (r *MongoReviewRepo) ReviewedProviderIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "serviceProvider", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed providers: %w", err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MongoReviewRepo) AddHelpfulVote(ctx context.Context, id, voterID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// the voter filter makes the vote and the counter move together
	filter := bson.M{"id": id, "helpfulVoters": bson.M{"$ne": voterID}}
	update := bson.M{
		"$addToSet": bson.M{"helpfulVoters": voterID},
		"$inc":      bson.M{"helpfulVotes": 1},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review models.Review
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&review)
	if err == nil {
		return &review, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to record helpful vote: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, repository.ErrAlreadyVoted
}
