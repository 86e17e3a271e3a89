// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import (
	"fmt"
	"strings"
	"time"
)

// WeatherCondition is the coarse sky condition reported by a weather provider.
type WeatherCondition string

const (
	ConditionClear  WeatherCondition = "clear"
	ConditionCloudy WeatherCondition = "cloudy"
	ConditionRainy  WeatherCondition = "rainy"
	ConditionStormy WeatherCondition = "stormy"
)

// Valid reports whether c is one of the four known conditions.
func (c WeatherCondition) Valid() bool {
	switch c {
	case ConditionClear, ConditionCloudy, ConditionRainy, ConditionStormy:
		return true
	default:
		return false
	}
}

// ParseWeatherCondition converts a case-insensitive name into a condition.
func ParseWeatherCondition(s string) (WeatherCondition, error) {
	c := WeatherCondition(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown weather condition %q", s)
	}
	return c, nil
}

// WeatherSnapshot is replaced wholesale on every refresh.
// Humidity is optional because not every provider reports it.
type WeatherSnapshot struct {
	TemperatureC float64          `json:"temperature"`
	Condition    WeatherCondition `json:"condition"`
	Location     string           `json:"location"`
	Humidity     *float64         `json:"humidity,omitempty"`
	FetchedAt    time.Time        `json:"fetched_at"`
}

// Clone returns a deep copy. A nil receiver yields nil.
func (w *WeatherSnapshot) Clone() *WeatherSnapshot {
	if w == nil {
		return nil
	}
	out := *w
	if w.Humidity != nil {
		h := *w.Humidity
		out.Humidity = &h
	}
	return &out
}
