package models

// ItineraryRequest describes a pilgrimage the devotee wants planned.
type ItineraryRequest struct {
	StartCity string   `json:"start_city" binding:"required"`
	Days      int      `json:"days" binding:"required,min=1,max=14"`
	TempleIDs []string `json:"temple_ids"`
	Interests []string `json:"interests,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// Itinerary is the structured itinerary returned by the generator.
type Itinerary struct {
	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	Days    []ItineraryDay `json:"days"`
}

// ItineraryDay is one day of an itinerary.
type ItineraryDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	TempleIDs  []string `json:"temple_ids,omitempty"`
	Activities []string `json:"activities"`
}
