package world

import (
	"math"
	"math/rand"
)

const radiusOfEarthMeters = 6378100

// LatLng is a position on the globe, in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a rectangle on the globe, south-west and north-east corners.
type Bounds struct {
	SW LatLng `json:"sw"`
	NE LatLng `json:"ne"`
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b LatLng) float64 {
	// Haversine formula.
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	x := math.Pow(math.Sin(toRadians(dLat/2)), 2) +
		math.Cos(toRadians(a.Lat))*
			math.Cos(toRadians(b.Lat))*
			math.Pow(math.Sin(toRadians(dLon/2)), 2)
	greatCircle := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
	return radiusOfEarthMeters * greatCircle
}

// TowardTarget returns the point distanceMeters from origin along the
// straight line to target.
func TowardTarget(origin, target LatLng, distanceMeters float64) LatLng {
	dLat := target.Lat - origin.Lat
	dLon := target.Lon - origin.Lon
	dist := Distance(origin, target)
	return LatLng{
		Lat: origin.Lat + dLat*distanceMeters/dist,
		Lon: origin.Lon + dLon*distanceMeters/dist,
	}
}

// RandomNear returns a point distanceMeters from origin in a random
// direction.
func RandomNear(origin LatLng, distanceMeters float64) LatLng {
	target := LatLng{
		Lat: origin.Lat + rand.Float64() - 0.5,
		Lon: origin.Lon + rand.Float64() - 0.5,
	}
	return TowardTarget(origin, target, distanceMeters)
}
