// Package aisim computes the three statistical AI-likeness scores and
// aggregates them into the human-likeness-oriented AISimilarity result.
package aisim

import (
	"math"

	"github.com/xinayida/anti-turing-test/internal/textproc"
)

// transition branching factors above this count as maximally varied.
const branchingCeiling = 5.0

// vocabulary weights: academic density, connector density, branching.
const (
	academicWeight   = 0.4
	connectorWeight  = 0.3
	transitionWeight = 0.3
)

// VocabularyComplexity scores how academically dense and varied the word
// choice is. All three components are bounded in [0, 1], so the weighted sum
// needs no further clamping.
func VocabularyComplexity(text string) float64 {
	tokens := textproc.Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = textproc.Stem(tok)
	}

	academicCount := 0
	for _, s := range stems {
		if _, ok := academicStems[s]; ok {
			academicCount++
		}
	}
	academicDensity := float64(academicCount) / float64(len(tokens))

	connectorCount := 0
	for _, tok := range tokens {
		if _, ok := connectorWords[tok]; ok {
			connectorCount++
		}
	}
	connectorDensity := float64(connectorCount) / float64(len(tokens))

	return academicWeight*academicDensity +
		connectorWeight*connectorDensity +
		transitionWeight*transitionVariety(stems)
}

// transitionVariety builds a first-order transition table over stems and
// averages the per-stem branching factor. Richer vocabulary tends toward
// higher branching.
func transitionVariety(stems []string) float64 {
	if len(stems) < 2 {
		return 0
	}

	transitions := make(map[string]map[string]struct{})
	for i := 0; i < len(stems)-1; i++ {
		next, ok := transitions[stems[i]]
		if !ok {
			next = make(map[string]struct{})
			transitions[stems[i]] = next
		}
		next[stems[i+1]] = struct{}{}
	}

	var total float64
	for _, next := range transitions {
		total += float64(len(next))
	}
	avgBranching := total / float64(len(transitions))

	return math.Min(avgBranching/branchingCeiling, 1)
}
