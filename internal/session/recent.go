// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package session

import (
	"sync"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
)

// DefaultRecentLimit is the size of the recent recommendations list.
const DefaultRecentLimit = 10

// RecentEntry is one recently recommended item.
type RecentEntry struct {
	Item          models.Item   `json:"item"`
	Type          models.Domain `json:"type"`
	RecommendedAt time.Time     `json:"recommended_at"`
}

// recentList keeps the newest recommendations first, across domains.
// An item recommended again moves to the front.
type recentList struct {
	mu      sync.Mutex
	limit   int
	entries []RecentEntry
}

func newRecentList(limit int) *recentList {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &recentList{limit: limit}
}

func (r *recentList) push(items []models.Item, at time.Time) {
	if len(items) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]RecentEntry, 0, len(items)+len(r.entries))
	seen := make(map[string]bool, len(items))
	for i := range items {
		if seen[items[i].ID] {
			continue
		}
		seen[items[i].ID] = true
		batch = append(batch, RecentEntry{Item: items[i].Clone(), Type: items[i].Domain, RecommendedAt: at})
	}
	for _, e := range r.entries {
		if !seen[e.Item.ID] {
			batch = append(batch, e)
		}
	}
	if len(batch) > r.limit {
		batch = batch[:r.limit]
	}
	r.entries = batch
}

func (r *recentList) list() []RecentEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecentEntry, len(r.entries))
	for i, e := range r.entries {
		e.Item = e.Item.Clone()
		out[i] = e
	}
	return out
}
