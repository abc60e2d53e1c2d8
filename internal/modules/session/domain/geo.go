package domain

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters is the great-circle (haversine) distance between two
// coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lng2 - lng1) * degToRad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func WithinRadius(lat1, lng1, lat2, lng2, radiusMeters float64) bool {
	return DistanceMeters(lat1, lng1, lat2, lng2) <= radiusMeters
}
