package catalogueRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"poojaseva/database"
	"poojaseva/database/repository"
	"poojaseva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogueRepo implements CatalogueRepository using MongoDB.
type MongoCatalogueRepo struct {
	poojas  *mongo.Collection
	temples *mongo.Collection
}

func NewMongoCatalogueRepo() CatalogueRepository {
	return &MongoCatalogueRepo{
		poojas:  database.Collection("poojas"),
		temples: database.Collection("temples"),
	}
}

func (r *MongoCatalogueRepo) GetPoojaByID(ctx context.Context, id string) (*models.Pooja, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pooja models.Pooja
	if err := r.poojas.FindOne(ctx, bson.M{"id": id}).Decode(&pooja); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pooja %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch pooja with id %s: %w", id, err)
	}
	return &pooja, nil
}

func (r *MongoCatalogueRepo) ListPoojas(ctx context.Context, category string) ([]models.Pooja, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}
	if category != "" {
		filter["category"] = bson.M{"$regex": "^" + regexp.QuoteMeta(category) + "$", "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.poojas.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list poojas: %w", err)
	}
	defer cursor.Close(ctx)

	poojas := []models.Pooja{}
	if err := cursor.All(ctx, &poojas); err != nil {
		return nil, fmt.Errorf("failed to decode poojas: %w", err)
	}
	return poojas, nil
}

func (r *MongoCatalogueRepo) GetTempleByID(ctx context.Context, id string) (*models.Temple, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var temple models.Temple
	if err := r.temples.FindOne(ctx, bson.M{"id": id}).Decode(&temple); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("temple %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch temple with id %s: %w", id, err)
	}
	return &temple, nil
}

// ListTemples returns the active temples, restricted to ids when ids is non-empty.
func (r *MongoCatalogueRepo) ListTemples(ctx context.Context, ids []string) ([]models.Temple, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}
	if len(ids) > 0 {
		filter["id"] = bson.M{"$in": ids}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.temples.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list temples: %w", err)
	}
	defer cursor.Close(ctx)

	temples := []models.Temple{}
	if err := cursor.All(ctx, &temples); err != nil {
		return nil, fmt.Errorf("failed to decode temples: %w", err)
	}
	return temples, nil
}
