package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trailmate/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrNoPlace = errors.New("reverse geocode returned no place names")

// reverseGeocodeResponse covers the fields we read from the client-side reverse geocode API.
type reverseGeocodeResponse struct {
	Locality             string `json:"locality"`
	City                 string `json:"city"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// Client calls a BigDataCloud-compatible reverse geocode endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *redis.Client
	logger     *zap.Logger
}

// NewClient builds a Client. cache may be nil.
func NewClient(baseURL string, rps float64, cache *redis.Client, logger *zap.Logger) *Client {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		cache:      cache,
		logger:     logger,
	}
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%s%.5f,%.5f", utils.GeocodePrefix, lat, lng)
}

// Describe returns "locality, city, country" with empty and repeated parts dropped.
func (c *Client) Describe(ctx context.Context, lat, lng float64) (string, error) {
	key := cacheKey(lat, lng)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		} else if err != nil && err != redis.Nil {
			c.logger.Debug("geocode cache read failed", zap.Error(err))
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("geocode rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode returned status %d", resp.StatusCode)
	}

	var body reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode decode: %w", err)
	}

	desc := joinParts(body.Locality, body.City, body.CountryName)
	if desc == "" {
		return "", ErrNoPlace
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, desc, utils.GeocodeCacheTTL).Err(); err != nil {
			c.logger.Debug("geocode cache write failed", zap.Error(err))
		}
	}
	return desc, nil
}

func joinParts(parts ...string) string {
	seen := make(map[string]bool, len(parts))
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		kept = append(kept, p)
	}
	return strings.Join(kept, ", ")
}
