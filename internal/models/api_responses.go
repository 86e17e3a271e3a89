// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status field values:
//   - "success": see Data
//   - "error": see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"balance": 9},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
//
// A mutation that succeeded locally but could not be written durably still
// reports "success" and carries a warning in metadata.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// APIError carries a machine-readable code and a human message.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input
//   - INSUFFICIENT_CREDITS: generation attempted with a zero balance
//   - GENERATION_ERROR: the recommendation data source failed
//   - CONFLICT: a generation or decision is already in flight
//   - AUTHENTICATION_ERROR: missing or invalid token
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
