package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"holicast/datasource"
	"holicast/models"
)

// geocodingResponse represents the geocoding API response structure
type geocodingResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Admin1      string  `json:"admin1"`
		Timezone    string  `json:"timezone"`
	} `json:"results"`
}

// SearchLocations resolves a free-text place query against the Open-Meteo
// geocoder. Queries shorter than two non-space characters return an empty
// result without issuing a request.
func (p *Provider) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	if !datasource.ViableQuery(query) {
		return []models.Location{}, nil
	}

	params := url.Values{}
	params.Add("name", strings.TrimSpace(query))
	params.Add("count", "8")
	params.Add("language", "en")
	params.Add("format", "json")

	body, err := p.get(ctx, fmt.Sprintf("%s/search", p.geocodingBaseURL), params)
	if err != nil {
		return nil, err
	}

	var response geocodingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	locations := make([]models.Location, 0, len(response.Results))
	for _, r := range response.Results {
		locations = append(locations, models.Location{
			ID:          r.ID,
			Name:        r.Name,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Region:      r.Admin1,
			Timezone:    r.Timezone,
		})
	}

	return locations, nil
}
