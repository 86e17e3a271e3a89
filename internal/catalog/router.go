// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
)

// Router dispatches queries by domain.
type Router struct {
	sources map[models.Domain]recommend.DataSource
}

// NewRouter creates a router. Nil entries are ignored.
func NewRouter(sources map[models.Domain]recommend.DataSource) *Router {
	r := &Router{sources: make(map[models.Domain]recommend.DataSource, len(sources))}
	for d, s := range sources {
		if s != nil {
			r.sources[d] = s
		}
	}
	return r
}

// Query implements recommend.DataSource.
//
//nolint:gocritic // hugeParam: signature fixed by recommend.DataSource
func (r *Router) Query(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	src, ok := r.sources[req.Domain]
	if !ok {
		return nil, fmt.Errorf("router: %w: %s", ErrUnsupportedDomain, req.Domain)
	}
	return src.Query(ctx, req)
}

var _ recommend.DataSource = (*Router)(nil)
