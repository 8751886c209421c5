package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"poojaseva/database"
	"poojaseva/database/repository"
	"poojaseva/models"
	"poojaseva/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("bookingRepo: index creation failed", zap.Error(err))
	}
	return repo
}

func notDeleted(filter bson.M) bson.M {
	filter["is_deleted"] = bson.M{"$ne": true}
	return filter
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
	if err := r.coll.FindOne(ctx, notDeleted(bson.M{"id": id})).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, notDeleted(bson.M{"user_id": userID}), opts)
}

func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time_slot", Value: 1},
	})
	return r.find(ctx, notDeleted(bson.M{"provider_id": providerID}), opts)
}

func (r *MongoBookingRepo) ListUnassigned(ctx context.Context, onOrBefore string, limit int64) ([]models.Booking, error) {
	filter := notDeleted(bson.M{
		"provider_id": nil,
		"status":      models.StatusPending,
		"date":        bson.M{"$lte": onOrBefore},
	})
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booking query failed: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.Booking, error) {
	filter := notDeleted(bson.M{"id": id, "status": bson.M{"$in": from}})
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *MongoBookingRepo) AssignProvider(ctx context.Context, id, providerID, providerName string) (*models.Booking, error) {
	filter := notDeleted(bson.M{
		"id":          id,
		"status":      models.StatusPending,
		"provider_id": nil,
	})
	update := bson.M{"$set": bson.M{
		"provider_id":   providerID,
		"provider_name": providerName,
		"updated_at":    time.Now(),
	}}
	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *MongoBookingRepo) ReleaseProvider(ctx context.Context, id, providerID string) (*models.Booking, error) {
	filter := notDeleted(bson.M{
		"id":          id,
		"status":      models.StatusPending,
		"provider_id": providerID,
	})
	update := bson.M{
		"$set": bson.M{
			"provider_id":   nil,
			"provider_name": "",
			"updated_at":    time.Now(),
		},
		"$addToSet": bson.M{"declined_by": providerID},
	}
	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *MongoBookingRepo) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, notDeleted(bson.M{"id": id}), bson.M{
		"$set": bson.M{"is_deleted": true, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

// conditionalUpdate applies update when filter matches and returns the updated
// document. A miss is reported as ErrNotFound or ErrConflict depending on whether
// the booking exists at all.
func (r *MongoBookingRepo) conditionalUpdate(ctx context.Context, id string, filter, update bson.M) (*models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(opCtx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("booking %s: %w", id, repository.ErrConflict)
}
