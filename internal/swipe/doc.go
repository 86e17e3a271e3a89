// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package swipe implements the card-swipe interaction for one recommendation
domain.

A Controller moves between three states:

	Idle ──Generate──▶ Loading ──ok, items──▶ Presenting(list, cursor)
	  ▲                   │                       │
	  └──ok, no items─────┘                       │ Decide at last card
	  └──────────────────────────────────────────┘

Generate spends one credit before the engine is called. While Loading, new
Generate and Decide calls fail with ErrBusy. Each Generate bumps an epoch;
a result that arrives after Close (which also bumps the epoch) is discarded
with ErrStaleGeneration.

Accept inserts the current card into favorites, Reject skips it. DecideAt
carries the position the client saw, so a duplicate tap on a card that has
already advanced fails with ErrStaleDecision instead of deciding the next
card. Undo reverts the last decision of the current list.

Raw drag distances are turned into decisions by ResolveGesture; partial
gestures never reach the controller.
*/
package swipe
