package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid(19.0760, 72.8777))
	assert.True(t, Valid(-90, 180))
	assert.False(t, Valid(math.NaN(), 72.8))
	assert.False(t, Valid(19.0, math.Inf(1)))
	assert.False(t, Valid(91, 72.8))
	assert.False(t, Valid(19.0, -181))
}

func TestHash(t *testing.T) {
	h := Hash(19.0760, 72.8777)
	assert.Len(t, h, HashPrecision)
	assert.True(t, strings.HasPrefix(Hash(19.0761, 72.8778), h[:5]))
}

func TestDistanceKm(t *testing.T) {
	// Mumbai to Pune is roughly 120km as the crow flies.
	d := DistanceKm(19.0760, 72.8777, 18.5204, 73.8567)
	assert.InDelta(t, 120, d, 10)
	assert.InDelta(t, 0, DistanceKm(1, 1, 1, 1), 1e-9)
}
