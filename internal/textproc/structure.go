package textproc

import (
	"github.com/xinayida/anti-turing-test/internal/models"
)

// keyTermLimit caps the key-term list in the report.
const keyTermLimit = 5

// AnalyzeStructure computes the structural metrics of the answer text:
// lexical diversity over stem-normalized tokens, average sentence length,
// and the top weighted key terms.
func AnalyzeStructure(text string) models.TextStructure {
	tokens := Tokenize(text)
	sentences := Sentences(text)

	structure := models.TextStructure{
		TokenCount:    len(tokens),
		SentenceCount: len(sentences),
		KeyTerms:      TopTerms(tokens, keyTermLimit),
	}

	if len(tokens) > 0 {
		stems := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			stems[Stem(tok)] = struct{}{}
		}
		structure.LexicalDiversity = float64(len(stems)) / float64(len(tokens))
	}

	if len(sentences) > 0 {
		structure.AvgSentenceLength = float64(len(tokens)) / float64(len(sentences))
	}

	return structure
}
