// Package geo computes geodesic distances on the WGS-84 ellipsoid.
package geo

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/unidist/internal/model"
)

// WGS-84 ellipsoid parameters.
const (
	semiMajorAxis = 6378137.0         // meters
	flattening    = 1 / 298.257223563 // f
	semiMinorAxis = (1 - flattening) * semiMajorAxis
)

const (
	maxIterations = 200
	tolerance     = 1e-12
)

// ErrNoConvergence is returned when the Vincenty iteration does not settle,
// which happens for nearly antipodal points.
var ErrNoConvergence = eris.New("geo: vincenty formula failed to converge")

// DistanceKM returns the ellipsoidal distance between a and b in kilometers,
// using the Vincenty inverse formula.
func DistanceKM(a, b model.Coordinate) (float64, error) {
	m, err := vincentyMeters(a, b)
	if err != nil {
		return 0, err
	}
	return m / 1000, nil
}

func vincentyMeters(p1, p2 model.Coordinate) (float64, error) {
	if p1 == p2 {
		return 0, nil
	}

	l := toRadians(p2.Longitude - p1.Longitude)
	u1 := math.Atan((1 - flattening) * math.Tan(toRadians(p1.Latitude)))
	u2 := math.Atan((1 - flattening) * math.Tan(toRadians(p2.Latitude)))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	var (
		sinSigma, cosSigma, sigma float64
		cosSqAlpha, cos2SigmaM    float64
	)

	lambda := l
	converged := false
	for iter := 0; iter < maxIterations; iter++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			return 0, nil // coincident points
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			cos2SigmaM = 0 // equatorial line
		}

		c := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		prev := lambda
		lambda = l + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < tolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, ErrNoConvergence
	}

	uSq := cosSqAlpha * (semiMajorAxis*semiMajorAxis - semiMinorAxis*semiMinorAxis) / (semiMinorAxis * semiMinorAxis)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return semiMinorAxis * bigA * (sigma - deltaSigma), nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
