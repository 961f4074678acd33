package model

import "fmt"

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" mapstructure:"latitude"`
	Longitude float64 `json:"longitude" mapstructure:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v, %v)", c.Latitude, c.Longitude)
}
