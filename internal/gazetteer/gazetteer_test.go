package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCities_WholeWordOnly(t *testing.T) {
	g := Default()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"isolated word", "Heavy rain expected in Pune today", []string{"Pune"}},
		{"any case", "HEAVY RAIN IN MUMBAI", []string{"Mumbai"}},
		{"embedded in longer token", "Punepolis and Mumbaikar festivals", nil},
		{"punctuation boundary", "Alert: Chennai, Kolkata.", []string{"Kolkata", "Chennai"}},
		{"alias resolves to canonical", "Rain over Bombay and Calcutta", []string{"Mumbai", "Kolkata"}},
		{"alias and name collapse", "Mumbai (Bombay) waterlogging", []string{"Mumbai"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range g.MatchCities(tt.text) {
				got = append(got, p.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchCities_ResolvesCoordinates(t *testing.T) {
	got := Default().MatchCities("Flood warning for Kolkata")
	require.Len(t, got, 1)
	assert.Equal(t, Place{Name: "Kolkata", State: "West Bengal", Lat: 22.5726, Lng: 88.3639}, got[0])
}

func TestFirstCity(t *testing.T) {
	p, ok := Default().FirstCity("storm near chennai and pune")
	require.True(t, ok)
	assert.Equal(t, "Pune", p.Name, "table order wins, not text order")

	_, ok = Default().FirstCity("nothing relevant here")
	assert.False(t, ok)
}

func TestMatchRegion_Substring(t *testing.T) {
	g := Default()

	p, ok := g.MatchRegion("Thunderstorm at isolated places over TamilNadu and Tamil Nadu coast")
	require.True(t, ok)
	assert.Equal(t, "Tamil Nadu", p.State)

	// substring, not whole word
	p, ok = g.MatchRegion("rain over SouthAndamanSea")
	require.True(t, ok)
	assert.Equal(t, "Andaman and Nicobar Islands", p.State)

	_, ok = g.MatchRegion("no region")
	assert.False(t, ok)
}

func TestMatchRegion_Order(t *testing.T) {
	p, ok := Default().MatchRegion("Andaman and Nicobar islands")
	require.True(t, ok)
	assert.Equal(t, "Andaman and Nicobar", p.Name)
}

func TestNew_CustomTable(t *testing.T) {
	g := New(
		[]City{{Place: Place{Name: "St. Louis", State: "Missouri", Lat: 38.6, Lng: -90.2}}},
		[]Region{{Pattern: "MISSOURI", Place: Place{Name: "Missouri", State: "Missouri"}}},
	)

	got := g.MatchCities("storms in st. louis tonight")
	require.Len(t, got, 1)
	assert.Equal(t, "St. Louis", got[0].Name)

	assert.Empty(t, g.MatchCities("stxlouis"))

	_, ok := g.MatchRegion("missouri river")
	assert.True(t, ok)
}
