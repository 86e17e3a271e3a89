// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package mood

import "github.com/tomtom215/moodmate/internal/models"

// Label is a coarse mood classification shown next to the sliders.
type Label string

const (
	LabelHappy     Label = "happy"
	LabelSad       Label = "sad"
	LabelEnergetic Label = "energetic"
	LabelRelaxed   Label = "relaxed"
	LabelAngry     Label = "angry"
	LabelAnxious   Label = "anxious"
)

var emojis = map[Label]string{
	LabelHappy:     "😄",
	LabelSad:       "😔",
	LabelEnergetic: "⚡",
	LabelRelaxed:   "😌",
	LabelAngry:     "😠",
	LabelAnxious:   "😰",
}

// Classification is the display form of a sample.
type Classification struct {
	Label   Label  `json:"label"`
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// Classify maps a sample to a label. Rules are evaluated in order and the
// first match wins; anything unmatched is happy.
func Classify(m models.MoodSample) Classification {
	h, e := m.Happiness, m.Energy

	var label Label
	switch {
	case h > 7 && e > 7:
		label = LabelHappy
	case h < 3 && e < 3:
		label = LabelSad
	case h < 3 && e > 7:
		label = LabelAngry
	case h > 7 && e < 3:
		label = LabelRelaxed
	case e > 7:
		label = LabelEnergetic
	case h < 4:
		label = LabelAnxious
	default:
		label = LabelHappy
	}

	return Classification{
		Label:   label,
		Emoji:   emojis[label],
		Message: greeting(h, e),
	}
}

func greeting(h, e int) string {
	switch {
	case h > 7:
		return "You seem quite happy today!"
	case h < 3:
		return "Having a tough day?"
	case e > 7:
		return "You're full of energy today!"
	case e < 3:
		return "Feeling a bit low energy today?"
	default:
		return "How are you feeling today?"
	}
}
