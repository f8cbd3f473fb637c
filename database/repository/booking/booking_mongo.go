package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository on the "bookings" collection of db.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer"] = filter.CustomerID
	}
	if filter.ProviderUserID != "" {
		query["providerUser"] = filter.ProviderUserID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *MongoBookingRepo) ApplyStatusChange(ctx context.Context, id string, change models.StatusChange) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    change.To,
		"updatedAt": change.At,
	}
	if change.CancellationReason != "" {
		set["cancellationReason"] = change.CancellationReason
	}
	if change.RejectionReason != "" {
		set["rejectionReason"] = change.RejectionReason
	}
	if change.RescheduledDate != "" {
		set["rescheduledDate"] = change.RescheduledDate
	}
	if change.RescheduledTimeSlot != nil {
		set["rescheduledTimeSlot"] = change.RescheduledTimeSlot
	}
	if change.CompletedAt != nil {
		set["completedAt"] = *change.CompletedAt
	}

	filter := bson.M{"id": id, "status": change.From}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"statusHistory": change.HistoryEntry()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil, r.missReason(ctx, id, repository.ErrStaleBooking)
}

func (r *MongoBookingRepo) AppendMessage(ctx context.Context, id string, msg models.BookingMessage, maxMessages int) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The thread is full when the element at index maxMessages-1 exists.
	filter := bson.M{
		"id": id,
		fmt.Sprintf("messages.%d", maxMessages-1): bson.M{"$exists": false},
	}
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updatedAt": msg.Timestamp},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to append booking message: %w", err)
	}
	return nil, r.missReason(ctx, id, repository.ErrThreadFull)
}

// missReason tells a missing booking apart from a conditional filter that did not match.
func (r *MongoBookingRepo) missReason(ctx context.Context, id string, conditional error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check booking %s: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return conditional
}
