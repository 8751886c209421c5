package booking

import (
	"strings"
	"time"

	"poojaseva/models"
)

const dateLayout = "2006-01-02"

// normalizeSankalp trims the free-text fields and drops blank family names.
func normalizeSankalp(s models.SankalpDetails) models.SankalpDetails {
	names := make([]string, 0, len(s.FamilyNames))
	for _, n := range s.FamilyNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return models.SankalpDetails{
		DevoteeName: strings.TrimSpace(s.DevoteeName),
		FamilyNames: names,
		Gotra:       strings.TrimSpace(s.Gotra),
		Nakshatra:   strings.TrimSpace(s.Nakshatra),
		Notes:       strings.TrimSpace(s.Notes),
	}
}

func validateSankalp(s models.SankalpDetails) error {
	if len(s.FamilyNames) == 0 {
		return newValidationError("sankalp_details.family_names", "please add at least one name")
	}
	return nil
}

// validateDate accepts a YYYY-MM-DD day that is not before today.
func validateDate(raw string, now time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), now.Location())
	if err != nil {
		return time.Time{}, newValidationError("date", "date must be formatted as YYYY-MM-DD")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return time.Time{}, newValidationError("date", "date cannot be in the past")
	}
	return day, nil
}

// deadlineFor is the scheduled time of a stored booking, or the zero time when its
// date cannot be parsed.
func deadlineFor(b models.Booking, loc *time.Location) time.Time {
	day, err := time.ParseInLocation(dateLayout, b.Date, loc)
	if err != nil {
		return time.Time{}
	}
	return scheduledAt(day, b.TimeSlot)
}
