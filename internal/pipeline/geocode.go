package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/unidist/internal/geo"
	"github.com/sells-group/unidist/internal/model"
	"github.com/sells-group/unidist/pkg/geocode"
)

// locate geocodes name and measures its distance from the reference point.
// Only the first geocoding match is used.
func (p *Pipeline) locate(ctx context.Context, gc geocode.Client, name string) (*model.University, error) {
	result, err := gc.Geocode(ctx, name)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode %q", name)
	}

	loc := model.Coordinate{Latitude: result.Latitude, Longitude: result.Longitude}
	km, err := geo.DistanceKM(loc, p.opts.Reference)
	if err != nil {
		return nil, eris.Wrapf(err, "distance %q", name)
	}

	zap.L().Debug("pipeline: located university",
		zap.String("name", name),
		zap.String("address", result.FormattedAddress),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lng", loc.Longitude),
		zap.Float64("distance_km", km),
	)

	return &model.University{Name: name, Location: loc, DistanceKM: km}, nil
}
