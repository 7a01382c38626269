// Package entity contains the core business objects of the project.
package entity

import (
	"encoding/json"
	"math"

	"easesupply/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoPoint is a geographic position serialized as a GeoJSON Point,
// longitude first: {"type":"Point","coordinates":[lng,lat]}.
type GeoPoint struct {
	point orb.Point
}

// NewGeoPoint builds a GeoPoint from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{point: orb.Point{lng, lat}}
}

// Lng returns the longitude component.
func (p GeoPoint) Lng() float64 {
	return p.point.Lon()
}

// Lat returns the latitude component.
func (p GeoPoint) Lat() float64 {
	return p.point.Lat()
}

// Point returns the underlying orb.Point.
func (p GeoPoint) Point() orb.Point {
	return p.point
}

// Validate checks that both components are finite and within WGS84 bounds.
func (p GeoPoint) Validate() error {
	lng, lat := p.point.Lon(), p.point.Lat()
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if lng < -180 || lng > 180 {
		return errors.Errorf("longitude out of range: %f", lng)
	}
	if lat < -90 || lat > 90 {
		return errors.Errorf("latitude out of range: %f", lat)
	}

	return nil
}

// MarshalJSON encodes the point as a GeoJSON Point geometry.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(p.point).MarshalJSON()
}

// UnmarshalJSON decodes a GeoJSON Point geometry. Any other geometry type is rejected.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var geom geojson.Geometry
	if err := json.Unmarshal(data, &geom); err != nil {
		return errors.Wrap(err, "invalid GeoJSON geometry")
	}

	point, ok := geom.Geometry().(orb.Point)
	if !ok {
		return errors.Errorf("expected GeoJSON Point, got %s", geom.Type)
	}
	p.point = point

	return nil
}
