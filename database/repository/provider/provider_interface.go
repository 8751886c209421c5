package providerRepo

import (
	"context"

	"poojaseva/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetDirectory returns every provider that is verified, available and not deleted,
	// in directory (creation) order.
	GetDirectory(ctx context.Context) ([]models.Provider, error)
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// SetAvatar stores the uploaded avatar URL on the provider.
	SetAvatar(ctx context.Context, id, url string) error
	// AddCertificate appends an uploaded certificate URL to the provider.
	AddCertificate(ctx context.Context, id, url string) error
}
