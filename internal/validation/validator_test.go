// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type moodInput struct {
	Happiness int `validate:"min=1,max=10"`
	Energy    int `validate:"min=1,max=10"`
}

type decideInput struct {
	Domain   string `validate:"domain"`
	Decision string `validate:"omitempty,decision"`
}

type namedDomain string

type locationInput struct {
	Domain   namedDomain `validate:"domain"`
	Latitude float64     `validate:"latitude"`
}

func TestValidateStruct_Mood(t *testing.T) {
	tests := []struct {
		name    string
		in      moodInput
		wantErr bool
		field   string
	}{
		{"lower bound", moodInput{1, 1}, false, ""},
		{"upper bound", moodInput{10, 10}, false, ""},
		{"happiness zero", moodInput{0, 5}, true, "Happiness"},
		{"energy eleven", moodInput{5, 11}, true, "Energy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Errors()[0].Field() != tt.field {
				t.Errorf("field = %q, want %q", err.Errors()[0].Field(), tt.field)
			}
		})
	}
}

func TestValidateStruct_CustomTags(t *testing.T) {
	if err := ValidateStruct(&decideInput{Domain: "movie", Decision: "accept"}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := ValidateStruct(&decideInput{Domain: "music"}); err != nil {
		t.Errorf("omitted decision rejected: %v", err)
	}

	err := ValidateStruct(&decideInput{Domain: "podcast", Decision: "maybe"})
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(err.Errors()))
	}
	if got := err.Errors()[0].Error(); got != "Domain must be movie or music" {
		t.Errorf("message = %q", got)
	}

	if err := ValidateStruct(&locationInput{Domain: "music", Latitude: 45}); err != nil {
		t.Errorf("named string type rejected: %v", err)
	}
	if err := ValidateStruct(&locationInput{Domain: "music", Latitude: 95}); err == nil {
		t.Error("out of range latitude accepted")
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&moodInput{Happiness: 0, Energy: 5}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", single.Code)
	}
	if single.Message != "Happiness must be at least 1" {
		t.Errorf("Message = %q", single.Message)
	}
	if single.Details["field"] != "Happiness" {
		t.Errorf("Details = %v", single.Details)
	}

	multi := ValidateStruct(&moodInput{Happiness: 0, Energy: 12}).ToAPIError()
	if !strings.Contains(multi.Message, "Happiness:") || !strings.Contains(multi.Message, "Energy: Energy must be at most 10") {
		t.Errorf("Message = %q", multi.Message)
	}
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details = %v", multi.Details)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("field = %q, want unknown", err.Errors()[0].Field())
	}
}
