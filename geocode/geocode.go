package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"go-lifeline/logger"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	return mapsClient, err
}

// GeocodeAddress takes an address string and returns geocoding results.
func GeocodeAddress(ctx context.Context, address string) ([]maps.GeocodingResult, error) {
	client, err := InitMapsClient()
	if err != nil {
		return nil, err
	}

	req := &maps.GeocodingRequest{
		Address: address,
	}

	// Forward geocode: get latitude and longitude for the given address.
	results, err := client.Geocode(ctx, req)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// ResolveCoordinates geocodes a free-text incident location into lat/long.
// ok is false when geocoding is unavailable or returned nothing; the
// report is then stored without coordinates and the geo signal simply
// stays ungated downstream.
func ResolveCoordinates(ctx context.Context, location string) (lat, long float64, ok bool) {
	if location == "" {
		return 0, 0, false
	}

	results, err := GeocodeAddress(ctx, location)
	if err != nil {
		logger.Warn().Err(err).Str("location", location).Msg("geocoding failed")
		return 0, 0, false
	}
	if len(results) == 0 {
		logger.Debug().Str("location", location).Msg("geocoding returned no results")
		return 0, 0, false
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, true
}
