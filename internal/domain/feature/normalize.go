package feature

// clamp bounds x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MinMax scales value linearly into [0,1] against [lo, hi], clamped.
// Returns 0 for a degenerate range (hi <= lo).
func MinMax(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0.0
	}
	return clamp((value-lo)/(hi-lo), 0.0, 1.0)
}

// DistanceCloseness converts a distance into a closeness score:
// 1.0 at 0 km, decreasing linearly to 0.0 at maxDistanceKm, clamped.
func DistanceCloseness(distanceKm, maxDistanceKm float64) float64 {
	if maxDistanceKm <= 0 {
		return 0.0
	}
	d := clamp(distanceKm, 0.0, maxDistanceKm)
	return 1.0 - d/maxDistanceKm
}
