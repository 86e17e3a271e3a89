// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodmate/internal/models"
)

const maxErrorBodySize = 4 * 1024

// OpenMeteoProvider queries the Open-Meteo forecast API. No API key is needed.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewOpenMeteoProvider creates a provider for baseURL
// (for example https://api.open-meteo.com).
func NewOpenMeteoProvider(baseURL string, timeout time.Duration) *OpenMeteoProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenMeteoProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type openMeteoResponse struct {
	Current *struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode *int     `json:"weather_code"`
	} `json:"current"`
}

// FetchWeather implements Provider.
func (p *OpenMeteoProvider) FetchWeather(ctx context.Context, coords Coordinates) (*models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code")
	reqURL := fmt.Sprintf("%s/v1/forecast?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var decoded openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrProviderUnavailable, err)
	}
	if decoded.Current == nil || decoded.Current.Temperature == nil || decoded.Current.WeatherCode == nil {
		return nil, fmt.Errorf("%w: response missing current conditions", ErrProviderUnavailable)
	}

	location := coords.Label
	if location == "" {
		location = "Current Location"
	}

	return &models.WeatherSnapshot{
		TemperatureC: *decoded.Current.Temperature,
		Condition:    ConditionFromWMO(*decoded.Current.WeatherCode),
		Location:     location,
		Humidity:     decoded.Current.Humidity,
		FetchedAt:    p.now(),
	}, nil
}

// ConditionFromWMO maps a WMO weather interpretation code to a condition.
// Snow and unknown codes are treated as overcast.
func ConditionFromWMO(code int) models.WeatherCondition {
	switch {
	case code >= 0 && code <= 1:
		return models.ConditionClear
	case code >= 2 && code <= 3, code >= 45 && code <= 48:
		return models.ConditionCloudy
	case code >= 51 && code <= 67, code >= 80 && code <= 82:
		return models.ConditionRainy
	case code >= 95 && code <= 99:
		return models.ConditionStormy
	default:
		return models.ConditionCloudy
	}
}

var _ Provider = (*OpenMeteoProvider)(nil)
