package providerRepo

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

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	repo := &MongoProviderRepo{coll: database.Collection("providers")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("providerRepo: index creation failed", zap.Error(err))
	}
	return repo
}

// directoryFilter selects providers eligible to appear in the directory at all.
func directoryFilter() bson.M {
	return bson.M{
		"is_verified":  true,
		"is_available": true,
		"is_deleted":   bson.M{"$ne": true},
	}
}

func (r *MongoProviderRepo) GetDirectory(ctx context.Context) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, directoryFilter(), opts)
	if err != nil {
		return nil, fmt.Errorf("directory query failed: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	filter := bson.M{"id": id, "is_deleted": bson.M{"$ne": true}}
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("provider %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) SetAvatar(ctx context.Context, id, url string) error {
	return r.updateWithDocument(ctx, id, bson.M{
		"$set": bson.M{"avatar_url": url, "updated_at": time.Now()},
	})
}

func (r *MongoProviderRepo) AddCertificate(ctx context.Context, id, url string) error {
	return r.updateWithDocument(ctx, id, bson.M{
		"$push": bson.M{"certificate_urls": url},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

// updateWithDocument patches a provider using a custom update document.
func (r *MongoProviderRepo) updateWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
