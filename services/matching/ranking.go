package matching

import (
	"cmp"
	"slices"
	"strings"

	"poojaseva/models"
)

const unknownTierPriority = 99

// TierPriority maps a verification tier to its sort priority; lower sorts first.
func TierPriority(t models.VerificationTier) int {
	switch models.VerificationTier(strings.ToUpper(strings.TrimSpace(string(t)))) {
	case models.TierElite:
		return 1
	case models.TierGold:
		return 2
	case models.TierStandard:
		return 3
	}
	return unknownTierPriority
}

// Rank orders matches by tier priority, then rating (highest first). Ties keep the
// input order. The input slice is not modified.
func Rank(matches []Match) []Match {
	ranked := slices.Clone(matches)
	slices.SortStableFunc(ranked, func(a, b Match) int {
		if c := cmp.Compare(TierPriority(a.Provider.VerificationTier), TierPriority(b.Provider.VerificationTier)); c != 0 {
			return c
		}
		return cmp.Compare(b.Provider.RatingAverage, a.Provider.RatingAverage)
	})
	return ranked
}

// ToEligible converts ranked matches into their API representation.
func ToEligible(ranked []Match) []models.EligibleProvider {
	out := make([]models.EligibleProvider, 0, len(ranked))
	for i, m := range ranked {
		out = append(out, models.EligibleProvider{
			Provider:  m.Provider,
			MatchedBy: string(m.Rule),
			Rank:      i + 1,
			Preferred: i == 0,
		})
	}
	return out
}
