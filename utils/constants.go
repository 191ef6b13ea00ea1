package utils

import "time"

// Redis key prefixes.
const (
	TranscriptPrefix   = "chat:transcript:"
	SessionOwnerPrefix = "chat:owner:"
	GeocodePrefix      = "geo:"
	FavoritesPrefix    = "favorites:"
	AuthCachePrefix    = "auth:"
)

// GeocodeCacheTTL is how long a resolved place description is reused.
const GeocodeCacheTTL = 24 * time.Hour

// AuthCacheTTL bounds how long a verified token skips the auth provider.
const AuthCacheTTL = 5 * time.Minute
