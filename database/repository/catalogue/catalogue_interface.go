package catalogueRepo

import (
	"context"

	"poojaseva/models"
)

// CatalogueRepository reads the pooja and temple reference data.
type CatalogueRepository interface {
	GetPoojaByID(ctx context.Context, id string) (*models.Pooja, error)
	ListPoojas(ctx context.Context, category string) ([]models.Pooja, error)
	GetTempleByID(ctx context.Context, id string) (*models.Temple, error)
	ListTemples(ctx context.Context, ids []string) ([]models.Temple, error)
}
