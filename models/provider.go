package models

import "time"

// VerificationTier is the provider trust classification used as the primary ranking key.
type VerificationTier string

const (
	TierElite    VerificationTier = "ELITE"
	TierGold     VerificationTier = "GOLD"
	TierStandard VerificationTier = "STANDARD"
)

// Provider kinds.
const (
	ProviderKindPriest     = "priest"
	ProviderKindAstrologer = "astrologer"
)

// Provider is a priest or astrologer. The service never writes provider profiles; it
// only reads them from the directory.
type Provider struct {
	ID                string           `bson:"id" json:"id"`
	DisplayName       string           `bson:"display_name" json:"display_name"`
	Kind              string           `bson:"kind" json:"kind,omitempty"`                   // priest | astrologer
	Skills            []string         `bson:"skills" json:"skills"`                         // Also carries astrologer specializations.
	AttachedTemples   []string         `bson:"attached_temples" json:"attached_temples"`     // Temple IDs.
	VerificationTier  VerificationTier `bson:"verification_tier" json:"verification_tier"`   // ELITE | GOLD | STANDARD
	RatingAverage     float64          `bson:"rating_average" json:"rating_average"`         // 0-5
	YearsOfExperience int              `bson:"years_of_experience" json:"years_of_experience"`
	IsVerified        bool             `bson:"is_verified" json:"is_verified"`
	IsAvailable       bool             `bson:"is_available" json:"is_available"`
	IsDeleted         bool             `bson:"is_deleted" json:"-"`
	ConsultationRate  float64          `bson:"consultation_rate" json:"consultation_rate"`
	AvatarURL         string           `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CertificateURLs   []string         `bson:"certificate_urls,omitempty" json:"certificate_urls,omitempty"`
	FCMToken          string           `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt         time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `bson:"updated_at" json:"updated_at"`
}

// EligibleProvider is a ranked directory entry returned to clients.
type EligibleProvider struct {
	Provider
	MatchedBy string `json:"matched_by"` // Eligibility rule that admitted the provider.
	Rank      int    `json:"rank"`       // 1-based position after ranking.
	Preferred bool   `json:"preferred"`  // Head of the list; the auto-assign pick.
}
