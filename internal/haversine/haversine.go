// Package haversine computes great-circle distances between geographic
// coordinates on a spherical earth model.
package haversine

import "math"

const earthRadiusKM = float64(6371)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between two coordinates in
// kilometers -- the 'as-the-crow-flies' distance over the earth's surface.
func Distance(from, to Coordinate) float64 {
	deltaLat := (to.Lat - from.Lat) * (math.Pi / 180)
	deltaLon := (to.Lon - from.Lon) * (math.Pi / 180)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(from.Lat*(math.Pi/180))*math.Cos(to.Lat*(math.Pi/180))*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
