package geocode

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"googlemaps.github.io/maps"
)

// Option configures the Google geocoder.
type Option func(*googleOptions)

type googleOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the default Google Maps API base URL.
func WithBaseURL(url string) Option {
	return func(o *googleOptions) {
		o.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *googleOptions) {
		o.httpClient = hc
	}
}

type googleClient struct {
	maps *maps.Client
}

// NewGoogle creates a Client backed by the Google Geocoding API.
func NewGoogle(apiKey string, opts ...Option) (Client, error) {
	var o googleOptions
	for _, opt := range opts {
		opt(&o)
	}

	mapsOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if o.baseURL != "" {
		mapsOpts = append(mapsOpts, maps.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		mapsOpts = append(mapsOpts, maps.WithHTTPClient(o.httpClient))
	}

	mc, err := maps.NewClient(mapsOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google new client")
	}
	return &googleClient{maps: mc}, nil
}

// Geocode looks up query and returns the location of the first result.
func (g *googleClient) Geocode(ctx context.Context, query string) (*Result, error) {
	results, err := g.maps.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: google request %q", query)
	}
	if len(results) == 0 {
		return nil, &NoResultsError{Query: query}
	}

	first := results[0]
	return &Result{
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
