package model

// University is one name scraped from the source page together with its
// geocoded location and distance from the reference point.
type University struct {
	Name       string     `json:"name"`
	Location   Coordinate `json:"location"`
	DistanceKM float64    `json:"distance_km"`
}
