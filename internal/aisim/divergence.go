package aisim

import (
	"math"

	"github.com/xinayida/anti-turing-test/internal/textproc"
)

// topicTermCount is how many top-weighted terms represent a segment's topic.
const topicTermCount = 3

// jumpAmplification stretches the average jump distance before clamping;
// moderate topic drift should already register as divergent.
const jumpAmplification = 1.5

// CreativeDivergence scores how far apart the topics of consecutive segments
// are, using keyword overlap as a similarity proxy. Fewer than two segments
// score 0.
func CreativeDivergence(segments []string) float64 {
	if len(segments) < 2 {
		return 0
	}

	termSets := make([]map[string]struct{}, len(segments))
	for i, seg := range segments {
		top := textproc.TopTerms(textproc.Tokenize(seg), topicTermCount)
		set := make(map[string]struct{}, len(top))
		for _, kt := range top {
			set[kt.Term] = struct{}{}
		}
		termSets[i] = set
	}

	var totalJump float64
	pairs := 0
	for i := 0; i < len(termSets)-1; i++ {
		a, b := termSets[i], termSets[i+1]
		larger := len(a)
		if len(b) > larger {
			larger = len(b)
		}
		if larger == 0 {
			continue
		}

		overlap := 0
		for term := range a {
			if _, ok := b[term]; ok {
				overlap++
			}
		}
		similarity := float64(overlap) / float64(larger)
		totalJump += 1 - similarity
		pairs++
	}

	if pairs == 0 {
		return 0
	}

	avgJump := totalJump / float64(pairs)
	return math.Min(avgJump*jumpAmplification, 1)
}
