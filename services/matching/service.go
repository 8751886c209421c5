package matching

import (
	"context"
	"fmt"
	"slices"

	"poojaseva/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DirectorySource fetches the verified, available, non-deleted providers.
type DirectorySource interface {
	GetDirectory(ctx context.Context) ([]models.Provider, error)
}

// PoojaSource resolves a pooja by id.
type PoojaSource interface {
	GetPoojaByID(ctx context.Context, id string) (*models.Pooja, error)
}

// MatchingService produces ranked eligible providers for a ritual request.
type MatchingService interface {
	// EligibleProviders loads the pooja and the directory and returns the ranked
	// eligible providers. An empty result is not an error.
	EligibleProviders(ctx context.Context, poojaID, templeID string) ([]models.EligibleProvider, error)
	// RankFor ranks the directory for an already loaded pooja, skipping excluded ids.
	RankFor(ctx context.Context, pooja models.Pooja, templeID string, exclude []string) ([]models.EligibleProvider, error)
	// InvalidateDirectory forces the next query to refetch the directory.
	InvalidateDirectory(ctx context.Context) error
}

// DefaultMatchingService implements MatchingService.
type DefaultMatchingService struct {
	Providers DirectorySource
	Poojas    PoojaSource
	Cache     DirectoryCache // optional
	Policy    EligibilityPolicy
	Logger    *zap.Logger
}

func (s *DefaultMatchingService) EligibleProviders(ctx context.Context, poojaID, templeID string) ([]models.EligibleProvider, error) {
	var (
		pooja     *models.Pooja
		directory []models.Provider
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Poojas.GetPoojaByID(gctx, poojaID)
		if err != nil {
			return fmt.Errorf("load pooja: %w", err)
		}
		pooja = p
		return nil
	})
	g.Go(func() error {
		d, err := s.directory(gctx)
		if err != nil {
			return err
		}
		directory = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.rank(*pooja, templeID, directory, nil), nil
}

func (s *DefaultMatchingService) RankFor(ctx context.Context, pooja models.Pooja, templeID string, exclude []string) ([]models.EligibleProvider, error) {
	directory, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	return s.rank(pooja, templeID, directory, exclude), nil
}

func (s *DefaultMatchingService) rank(pooja models.Pooja, templeID string, directory []models.Provider, exclude []string) []models.EligibleProvider {
	candidates := directory
	if len(exclude) > 0 {
		candidates = make([]models.Provider, 0, len(directory))
		for _, p := range directory {
			if !slices.Contains(exclude, p.ID) {
				candidates = append(candidates, p)
			}
		}
	}
	matches := s.Policy.Filter(RitualOf(pooja), templeID, candidates)
	s.logger().Debug("eligibility computed",
		zap.String("pooja", pooja.ID),
		zap.String("temple", templeID),
		zap.Int("directory", len(directory)),
		zap.Int("eligible", len(matches)),
	)
	return ToEligible(Rank(matches))
}

// directory serves the provider directory from cache, falling back to the store.
// Cache failures are logged and bypassed.
func (s *DefaultMatchingService) directory(ctx context.Context) ([]models.Provider, error) {
	if s.Cache != nil {
		providers, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.logger().Warn("directory cache unavailable", zap.Error(err))
		} else if ok {
			return providers, nil
		}
	}

	providers, err := s.Providers.GetDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch provider directory: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, providers); err != nil {
			s.logger().Warn("failed to cache provider directory", zap.Error(err))
		}
	}
	return providers, nil
}

func (s *DefaultMatchingService) InvalidateDirectory(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx)
}

func (s *DefaultMatchingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
