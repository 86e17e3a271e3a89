// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package reranking

import (
	"context"
	"strings"

	"github.com/tomtom215/moodmate/internal/recommend"
)

// maxWindow bounds the candidates considered, since the similarity
// matrix is quadratic. Items past the window keep their relevance order.
const maxWindow = 500

// MMR implements Maximal Marginal Relevance reranking over item genres.
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// sim is the Jaccard similarity of the two items' genre sets.
type MMR struct {
	lambda float64
}

// NewMMR creates an MMR reranker. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance/diversity balance.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank greedily selects k items from a relevance-sorted list.
// The input slice is not modified.
func (m *MMR) Rerank(ctx context.Context, items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return items
	}
	if k > len(items) {
		k = len(items)
	}
	if m.lambda >= 1.0 {
		return items[:k]
	}

	window := items
	if len(window) > maxWindow {
		window = window[:maxWindow]
	}
	if k > len(window) {
		k = len(window)
	}

	genres := make([]map[string]struct{}, len(window))
	for i := range window {
		genres[i] = genreSet(window[i].Item.Genres())
	}

	selected := make([]recommend.ScoredItem, 0, k)
	picked := make([]int, 0, k)
	taken := make([]bool, len(window))

	for len(selected) < k {
		if ctx.Err() != nil {
			break
		}

		bestIdx := -1
		bestMMR := 0.0
		for i := range window {
			if taken[i] {
				continue
			}
			maxSim := 0.0
			for _, j := range picked {
				if sim := jaccard(genres[i], genres[j]); sim > maxSim {
					maxSim = sim
				}
			}
			score := m.lambda*window[i].Score - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		selected = append(selected, window[bestIdx])
		picked = append(picked, bestIdx)
		taken[bestIdx] = true
	}

	// On cancellation fill the rest in relevance order.
	for i := 0; len(selected) < k && i < len(window); i++ {
		if !taken[i] {
			selected = append(selected, window[i])
			taken[i] = true
		}
	}

	return selected
}

func genreSet(genres []string) map[string]struct{} {
	set := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		set[strings.ToLower(g)] = struct{}{}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|, or 0 when both are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for g := range a {
		if _, ok := b[g]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var _ recommend.Reranker = (*MMR)(nil)
