// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package reranking implements post-processing for recommendation lists.

MMR (Maximal Marginal Relevance) trades a little relevance for genre
diversity so a five item deck is not five thrillers:

	engine.RegisterReranker(reranking.NewMMR(cfg.Recommend.DiversityLambda))

Lambda 1.0 keeps the relevance order untouched; 0.0 maximizes diversity.
*/
package reranking
