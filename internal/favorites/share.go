// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package favorites

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/models"
)

// Shareable is the payload handed to a Sharer.
type Shareable struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Sharer delivers a Shareable to some outside channel.
type Sharer interface {
	Share(ctx context.Context, s Shareable) error
}

// SharerFunc adapts a function to Sharer.
type SharerFunc func(ctx context.Context, s Shareable) error

// Share implements Sharer.
func (f SharerFunc) Share(ctx context.Context, s Shareable) error {
	return f(ctx, s)
}

// LogSharer writes shares to the structured log.
type LogSharer struct {
	Logger zerolog.Logger
}

// Share implements Sharer.
//
//nolint:gocritic // hugeParam: signature fixed by Sharer
func (l LogSharer) Share(_ context.Context, s Shareable) error {
	l.Logger.Info().
		Str("title", s.Title).
		Str("text", s.Text).
		Str("image_url", s.ImageURL).
		Msg("share item")
	return nil
}

// NewShareable builds the share payload for an item.
//
//nolint:gocritic // hugeParam: item is read only
func NewShareable(item models.Item) Shareable {
	var text string
	switch {
	case item.Movie != nil && item.Movie.Director != "":
		text = fmt.Sprintf("Check out %s (%d), directed by %s. Recommended by MoodMate.", item.Title, item.Movie.Year, item.Movie.Director)
	case item.Music != nil && item.Music.Artist != "":
		text = fmt.Sprintf("Listen to %s by %s. Recommended by MoodMate.", item.Title, item.Music.Artist)
	default:
		text = fmt.Sprintf("Check out %s. Recommended by MoodMate.", item.Title)
	}
	return Shareable{
		Title:    item.Title,
		Text:     text,
		ImageURL: item.ImageURL,
	}
}

// Share sends the saved item id through sharer.
func (s *Store) Share(ctx context.Context, id string, sharer Sharer) (Shareable, error) {
	entry, ok := s.Get(id)
	if !ok {
		return Shareable{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	payload := NewShareable(entry.Item)
	if err := sharer.Share(ctx, payload); err != nil {
		return Shareable{}, fmt.Errorf("share %s: %w", id, err)
	}
	return payload, nil
}

var (
	_ Sharer = LogSharer{}
	_ Sharer = SharerFunc(nil)
)
