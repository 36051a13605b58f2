// Package sentiment implements a lexicon-based polarity primitive. Each text
// segment receives a compound score in [-1, 1] computed from per-word
// valences with simple negation and intensifier handling.
package sentiment

import (
	"math"

	"github.com/xinayida/anti-turing-test/internal/textproc"
)

// normalizationAlpha dampens the compound score so that a handful of strong
// words saturates toward +/-1 rather than overshooting.
const normalizationAlpha = 15.0

// negationDamp is applied when a negator flips a valence; "not good" reads
// weaker than "bad".
const negationDamp = 0.74

// Compound scores a text segment. 0 means neutral or no lexicon hits.
func Compound(text string) float64 {
	tokens := textproc.Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var total float64
	for i, tok := range tokens {
		v, ok := valence[tok]
		if !ok {
			continue
		}

		if i > 0 {
			prev := tokens[i-1]
			if scale, ok := intensifiers[prev]; ok {
				v *= scale
			}
			if _, ok := negators[prev]; ok {
				v = -v * negationDamp
			} else if i > 1 {
				// negator one word back: "not very good"
				if _, ok := negators[tokens[i-2]]; ok {
					v = -v * negationDamp
				}
			}
		}

		total += v
	}

	compound := total / math.Sqrt(total*total+normalizationAlpha)
	return math.Max(-1, math.Min(1, compound))
}
