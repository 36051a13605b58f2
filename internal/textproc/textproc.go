// Package textproc provides the tokenization and term-weighting primitives
// shared by the statistical scorers.
package textproc

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// maxSegmentLen bounds a segment to roughly a paragraph's worth of text.
// Variance and divergence scorers operate over these chunks.
const maxSegmentLen = 200

var (
	tokenRegex    = regexp.MustCompile(`[\p{L}\p{N}']+`)
	sentenceRegex = regexp.MustCompile(`[.!?]+`)
)

// Tokenize splits text into lowercased word tokens on word boundaries.
func Tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// Stem reduces a token to its stem. Tokens the stemmer cannot handle are
// returned unchanged.
func Stem(token string) string {
	stemmed, err := snowball.Stem(token, "english", true)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}

// Sentences splits text on runs of sentence-ending punctuation, discarding
// empty results.
func Sentences(text string) []string {
	parts := sentenceRegex.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Segments groups consecutive sentences into chunks of at most maxSegmentLen
// characters. A single sentence longer than the limit forms its own segment.
func Segments(text string) []string {
	sentences := Sentences(text)
	segments := make([]string, 0, len(sentences))

	var current strings.Builder
	for _, s := range sentences {
		if current.Len() > 0 && current.Len()+len(s)+1 > maxSegmentLen {
			segments = append(segments, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(s)
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

// TermWeights ranks the tokens of a single document by their degenerate
// TF-IDF weight. With one document the IDF term is constant, so the weight
// collapses to within-document frequency. Ties break alphabetically so the
// ranking is stable across runs.
func TermWeights(tokens []string) []models.KeyTerm {
	if len(tokens) == 0 {
		return nil
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	terms := make([]models.KeyTerm, 0, len(freq))
	total := float64(len(tokens))
	for term, count := range freq {
		terms = append(terms, models.KeyTerm{
			Term:   term,
			Weight: float64(count) / total,
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})

	return terms
}

// TopTerms returns the n highest-weighted terms of the token sequence.
func TopTerms(tokens []string, n int) []models.KeyTerm {
	terms := TermWeights(tokens)
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
