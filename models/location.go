package models

// GeoPoint is a plain latitude/longitude pair as stored on location documents.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude" firestore:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude" firestore:"longitude"`
}

// Location is a place where activities happen.
type Location struct {
	ID          string   `bson:"id" json:"id" firestore:"-"`
	Name        string   `bson:"name" json:"name" firestore:"name"`
	Description string   `bson:"description" json:"description" firestore:"description"`
	Address     string   `bson:"address" json:"address" firestore:"address"`
	Coordinates GeoPoint `bson:"coordinates" json:"coordinates" firestore:"coordinates"`
	CategoryID  string   `bson:"categoryId" json:"categoryId" firestore:"categoryId"`
	IsActive    bool     `bson:"isActive" json:"isActive" firestore:"isActive"`

	// Filled at snapshot time from reverse geocoding, falls back to Address.
	PlaceDescription string `bson:"-" json:"placeDescription,omitempty" firestore:"-"`
}

// HasCoordinates reports whether the location carries a usable position.
func (l Location) HasCoordinates() bool {
	return l.Coordinates.Latitude != 0 || l.Coordinates.Longitude != 0
}
