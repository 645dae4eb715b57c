package preset

import "sort"

// minScore is the match threshold; presets scoring below it are dropped.
const minScore = 0.5

// Match is one workflow candidate the observed history may be executing.
type Match struct {
	// PresetID identifies the matched preset.
	PresetID string `json:"preset_id"`

	// Description is the preset's description.
	Description string `json:"description"`

	// Score is LCS(observed, sequence) / len(sequence), in [0, 1].
	Score float64 `json:"score"`
}

// Matcher ranks workflow presets against observed tool sequences.
// Pure in-memory computation over the immutable catalog.
type Matcher struct {
	presets []Preset
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(presets []Preset) *Matcher {
	return &Matcher{presets: presets}
}

// Match scores every preset against the observed tool sequence (the
// session history with the current tool already appended). Presets
// scoring at least 0.5 are returned sorted by descending score, ties
// broken by catalog declaration order. An empty observed sequence
// yields an empty result.
func (m *Matcher) Match(observed []string) []Match {
	if len(observed) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(m.presets))
	for _, p := range m.presets {
		score := float64(lcsLength(observed, p.Sequence)) / float64(len(p.Sequence))
		if score >= minScore {
			matches = append(matches, Match{
				PresetID:    p.ID,
				Description: p.Description,
				Score:       score,
			})
		}
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// lcsLength computes the longest common subsequence length of two tool
// sequences. Order-preserving, not necessarily contiguous.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
