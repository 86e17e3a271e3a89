// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/favorites"
	"github.com/tomtom215/moodmate/internal/filters"
	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/session"
	"github.com/tomtom215/moodmate/internal/storage"
	"github.com/tomtom215/moodmate/internal/swipe"
	"github.com/tomtom215/moodmate/internal/validation"
	"github.com/tomtom215/moodmate/internal/wal"
	"github.com/tomtom215/moodmate/internal/weather"
)

// Error codes returned in APIError.Code.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeGeneration          = "GENERATION_ERROR"
	CodeConflict            = "CONFLICT"
	CodeNothingToUndo       = "NOTHING_TO_UNDO"
	CodeWeatherUnavailable  = "WEATHER_UNAVAILABLE"
	CodeAdCooldown          = "AD_COOLDOWN"
	CodeNotFound            = "NOT_FOUND"
	CodeAuthentication      = "AUTHENTICATION_ERROR"
	CodeTimeout             = "TIMEOUT"
	CodeInternal            = "INTERNAL_ERROR"
)

// Warnings attached to metadata.warnings.
const (
	WarningQueued              = "queued: saved for this session, will be persisted when storage recovers"
	WarningLocationDenied      = "location permission denied: recommendations ignore weather"
	WarningCreditsNotPersisted = "credit balance not persisted yet"
	WarningFavoriteNotSaved    = "favorite change applied to this session but not saved"
)

// errorMapping is one row of the domain error table.
type errorMapping struct {
	match   func(error) bool
	status  int
	code    string
	message string
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

var errorTable = []errorMapping{
	{is(credits.ErrInsufficientCredits), http.StatusPaymentRequired, CodeInsufficientCredits, "No credits left"},
	{recommend.IsGenerationError, http.StatusBadGateway, CodeGeneration, "Could not load recommendations"},
	{is(swipe.ErrBusy), http.StatusConflict, CodeConflict, "Recommendations are already loading"},
	{is(swipe.ErrDecisionInFlight), http.StatusConflict, CodeConflict, "Another decision is in progress"},
	{is(swipe.ErrStaleDecision), http.StatusConflict, CodeConflict, "Card is no longer current"},
	{is(swipe.ErrStaleGeneration), http.StatusConflict, CodeConflict, "Generation was superseded"},
	{is(swipe.ErrClosed), http.StatusConflict, CodeConflict, "Session was closed"},
	{is(swipe.ErrNothingToUndo), http.StatusConflict, CodeNothingToUndo, "Nothing to undo"},
	{is(swipe.ErrInvalidDecision), http.StatusBadRequest, CodeValidation, "Decision must be accept or reject"},
	{is(filters.ErrInvalidFilter), http.StatusBadRequest, CodeValidation, "Invalid filter"},
	{is(credits.ErrUnknownPack), http.StatusBadRequest, CodeValidation, "Unknown offer"},
	{is(credits.ErrInvalidAmount), http.StatusBadRequest, CodeValidation, "Invalid credit amount"},
	{is(weather.ErrProviderUnavailable), http.StatusServiceUnavailable, CodeWeatherUnavailable, "Weather is unavailable"},
	{is(credits.ErrAdCooldown), http.StatusTooManyRequests, CodeAdCooldown, "Ad reward is cooling down"},
	{is(favorites.ErrNotFound), http.StatusNotFound, CodeNotFound, "Favorite not found"},
	{is(session.ErrUnknownDomain), http.StatusNotFound, CodeNotFound, "Unknown domain"},
	{is(storage.ErrMissingUserID), http.StatusUnauthorized, CodeAuthentication, "User identity required"},
	{is(context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout, "Request timed out"},
	{is(context.Canceled), http.StatusGatewayTimeout, CodeTimeout, "Request canceled"},
	{isItemError, http.StatusBadRequest, CodeValidation, "Invalid item"},
}

func isItemError(err error) bool {
	return errors.Is(err, models.ErrItemMissingID) ||
		errors.Is(err, models.ErrItemMissingTitle) ||
		errors.Is(err, models.ErrItemVariantMissing)
}

// respondDomainError maps err through errorTable. Validation failures keep
// their field details; anything unmapped is a 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil)
		return
	}

	for i := range errorTable {
		m := &errorTable[i]
		if m.match(err) {
			message := m.message
			if m.status == http.StatusBadRequest {
				message = err.Error()
			}
			respondError(w, r, m.status, m.code, message, err)
			return
		}
	}

	respondError(w, r, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
}

// deferredWrite reports whether err means the mutation succeeded in memory
// but its durable write is pending.
func deferredWrite(err error) bool {
	return wal.IsQueued(err) || storage.IsUnavailable(err)
}

// respondMutation writes the result of a mutation that may have a deferred
// durable write: 202 plus a queued warning in that case, the mapped error
// for any other failure, and status otherwise.
func respondMutation(w http.ResponseWriter, r *http.Request, status int, data interface{}, err error) {
	switch {
	case err == nil:
		respondSuccess(w, r, status, data)
	case deferredWrite(err):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Durable write deferred")
		respondSuccess(w, r, http.StatusAccepted, data, WarningQueued)
	default:
		respondDomainError(w, r, err)
	}
}
