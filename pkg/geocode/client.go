// Package geocode resolves place names to coordinates via the Google Geocoding API.
package geocode

import (
	"context"
	"fmt"
)

// Client geocodes free-form place names.
type Client interface {
	// Geocode returns the first match for query. A query with no matches
	// yields a *NoResultsError.
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Result holds the first geocoding match for a query.
type Result struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

// NoResultsError reports that the service returned zero matches for Query.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("geocode: no results for %q", e.Query)
}
