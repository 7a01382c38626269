package entity

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPoint_MarshalJSON(t *testing.T) {
	point := NewGeoPoint(72.8777, 19.0760)

	data, err := json.Marshal(point)
	require.NoError(t, err)

	var decoded struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Point", decoded.Type)
	require.Len(t, decoded.Coordinates, 2)
	assert.InDelta(t, 72.8777, decoded.Coordinates[0], 1e-9, "longitude comes first")
	assert.InDelta(t, 19.0760, decoded.Coordinates[1], 1e-9)
}

func TestGeoPoint_UnmarshalJSON(t *testing.T) {
	var point GeoPoint
	err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[72.8777,19.0760]}`), &point)
	require.NoError(t, err)
	assert.InDelta(t, 72.8777, point.Lng(), 1e-9)
	assert.InDelta(t, 19.0760, point.Lat(), 1e-9)
}

func TestGeoPoint_UnmarshalJSON_RejectsOtherGeometries(t *testing.T) {
	var point GeoPoint
	err := json.Unmarshal([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`), &point)
	assert.Error(t, err)
}

func TestGeoPoint_UnmarshalJSON_RejectsGarbage(t *testing.T) {
	var point GeoPoint
	assert.Error(t, json.Unmarshal([]byte(`{"lat":19,"lng":72}`), &point))
	assert.Error(t, json.Unmarshal([]byte(`"not a geometry"`), &point))
}

func TestGeoPoint_RoundTrip(t *testing.T) {
	original := NewGeoPoint(-73.985664, 40.748514)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded GeoPoint
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.InDelta(t, original.Lng(), decoded.Lng(), 1e-9)
	assert.InDelta(t, original.Lat(), decoded.Lat(), 1e-9)
}

func TestGeoPoint_Validate(t *testing.T) {
	assert.NoError(t, NewGeoPoint(0, 0).Validate())
	assert.NoError(t, NewGeoPoint(180, 90).Validate())
	assert.NoError(t, NewGeoPoint(-180, -90).Validate())
	assert.Error(t, NewGeoPoint(180.1, 0).Validate())
	assert.Error(t, NewGeoPoint(0, 90.1).Validate())
	assert.Error(t, NewGeoPoint(-200, 0).Validate())
}

func TestGeoPoint_DistanceAgainstHaversine(t *testing.T) {
	// Dadar vegetable market to Crawford Market, roughly 7.5 km apart.
	dadar := NewGeoPoint(72.8440, 19.0178)
	crawford := NewGeoPoint(72.8347, 18.9472)

	meters := geo.Distance(dadar.Point(), crawford.Point())
	assert.InDelta(t, 7900, meters, 400)
}
