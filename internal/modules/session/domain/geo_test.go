package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DistanceMeters_Computes_Known_Distance(t *testing.T) {
	// One ten-thousandth of a degree of longitude at the equator is about 11m.
	distance := DistanceMeters(0, 0, 0, 0.0001)

	require.InDelta(t, 11.1, distance, 0.5)
}

func Test_DistanceMeters_Is_Zero_For_Same_Point(t *testing.T) {
	require.Zero(t, DistanceMeters(45.815, 15.9819, 45.815, 15.9819))
}

func Test_WithinRadius_Accepts_Nearby_Point(t *testing.T) {
	require.True(t, WithinRadius(45.815, 15.9819, 45.8155, 15.982, 500))
}

func Test_WithinRadius_Rejects_Distant_Point(t *testing.T) {
	// Zagreb and Ljubljana are over 100km apart.
	require.False(t, WithinRadius(45.815, 15.9819, 46.0569, 14.5058, 500))
}
