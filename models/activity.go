package models

import "time"

const (
	ActivityDateLayout = "2006-01-02"
	ActivityTimeLayout = "15:04"
)

// Activity is a bookable event at one or more locations.
type Activity struct {
	ID                  string   `bson:"id" json:"id" firestore:"-"`
	Title               string   `bson:"title" json:"title" firestore:"title"`
	Description         string   `bson:"description" json:"description" firestore:"description"`
	Difficulty          string   `bson:"difficulty" json:"difficulty" firestore:"difficulty"`
	StartDate           string   `bson:"startDate" json:"startDate" firestore:"startDate"` // "YYYY-MM-DD"
	EndDate             string   `bson:"endDate" json:"endDate" firestore:"endDate"`
	StartTime           string   `bson:"startTime" json:"startTime" firestore:"startTime"` // "HH:MM"
	EndTime             string   `bson:"endTime" json:"endTime" firestore:"endTime"`
	EstimatedCost       float64  `bson:"estimatedCost" json:"estimatedCost" firestore:"estimatedCost"`
	EstimatedDuration   int      `bson:"estimatedDuration" json:"estimatedDuration" firestore:"estimatedDuration"` // minutes
	CurrentParticipants int      `bson:"currentParticipants" json:"currentParticipants" firestore:"currentParticipants"`
	MaxParticipants     int      `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty" firestore:"maxParticipants,omitempty"` // 0 means the configured ceiling applies
	LocationIDs         []string `bson:"locationIds" json:"locationIds" firestore:"locationIds"`
	IsActive            bool     `bson:"isActive" json:"isActive" firestore:"isActive"`
	IsExpired           bool     `bson:"isExpired" json:"isExpired" firestore:"isExpired"`
}

// Available reports whether the activity can still take bookings.
func (a Activity) Available() bool {
	return a.IsActive && !a.IsExpired
}

// Capacity returns the participant ceiling, preferring the per-activity override.
func (a Activity) Capacity(defaultCeiling int) int {
	if a.MaxParticipants > 0 {
		return a.MaxParticipants
	}
	return defaultCeiling
}

// StartsAt combines StartDate and StartTime in the given zone.
// ok is false when either field is missing or malformed.
func (a Activity) StartsAt(loc *time.Location) (time.Time, bool) {
	if a.StartDate == "" {
		return time.Time{}, false
	}
	clock := a.StartTime
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(ActivityDateLayout+" "+ActivityTimeLayout, a.StartDate+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
