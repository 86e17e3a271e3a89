// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/moodmate/internal/models"
)

// ErrMalformedData marks a candidate pool that failed validation.
var ErrMalformedData = errors.New("malformed recommendation data")

// GenerationError reports that the data source was unreachable or returned
// malformed data.
type GenerationError struct {
	Domain models.Domain
	Cause  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s recommendations: %v", e.Domain, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsGenerationError reports whether err is or wraps a *GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
