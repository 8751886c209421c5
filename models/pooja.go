package models

// Pooja is a ritual offered on the marketplace. Base prices are optional; a missing
// price is nil and falls back to the documented defaults at booking time.
type Pooja struct {
	ID                string   `bson:"id" json:"id"`
	Name              string   `bson:"name" json:"name"`
	Category          string   `bson:"category" json:"category"`
	Description       string   `bson:"description,omitempty" json:"description,omitempty"`
	BasePriceVirtual  *float64 `bson:"base_price_virtual,omitempty" json:"base_price_virtual,omitempty"`
	BasePriceInPerson *float64 `bson:"base_price_in_person,omitempty" json:"base_price_in_person,omitempty"`
	BasePriceTemple   *float64 `bson:"base_price_temple,omitempty" json:"base_price_temple,omitempty"`
	DurationMinutes   int      `bson:"duration_minutes" json:"duration_minutes"`
	IsActive          bool     `bson:"is_active" json:"is_active"`
}

// Temple is reference data for temple-mode bookings and itineraries.
type Temple struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Deity    string `bson:"deity,omitempty" json:"deity,omitempty"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	IsActive bool   `bson:"is_active" json:"is_active"`
}

// Slot is one entry of the remote availability computation.
type Slot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}
