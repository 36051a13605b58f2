package aisim

import (
	"math"

	"github.com/xinayida/anti-turing-test/internal/sentiment"
)

// typicalHumanStdDev is the assumed standard deviation of per-segment
// polarity in human writing; the raw deviation is normalized against it.
const typicalHumanStdDev = 0.5

// EmotionalFluctuation scores how much sentiment polarity varies between
// consecutive text segments. Fewer than two segments cannot exhibit variance
// and score 0.
func EmotionalFluctuation(segments []string) float64 {
	if len(segments) < 2 {
		return 0
	}

	polarities := make([]float64, len(segments))
	var sum float64
	for i, seg := range segments {
		polarities[i] = sentiment.Compound(seg)
		sum += polarities[i]
	}
	mean := sum / float64(len(polarities))

	var variance float64
	for _, p := range polarities {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(len(polarities))

	return math.Min(math.Sqrt(variance)/typicalHumanStdDev, 1)
}
