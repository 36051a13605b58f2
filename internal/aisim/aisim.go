package aisim

import (
	"math"

	"github.com/xinayida/anti-turing-test/internal/models"
	"github.com/xinayida/anti-turing-test/internal/textproc"
)

// Aggregation weights over the three inverted scores.
const (
	vocabularyAggWeight  = 0.3
	fluctuationAggWeight = 0.4
	divergenceAggWeight  = 0.3
)

// inversionExponent shapes the AI-likeness -> human-likeness inversion.
// The concave curve rewards low AI-likeness disproportionately.
const inversionExponent = 1.5

// Analyze runs the three statistical scorers over the text and combines
// them. The raw scores are AI-likeness magnitudes; each is inverted with
// 1 - x^1.5 before the weighted sum, so the stored fields and the overall
// score are human-likeness oriented.
func Analyze(text string) models.AISimilarity {
	segments := textproc.Segments(text)

	vocabulary := invert(VocabularyComplexity(text))
	fluctuation := invert(EmotionalFluctuation(segments))
	divergence := invert(CreativeDivergence(segments))

	overall := vocabularyAggWeight*vocabulary +
		fluctuationAggWeight*fluctuation +
		divergenceAggWeight*divergence

	return models.AISimilarity{
		VocabularyComplexity: vocabulary,
		EmotionalFluctuation: fluctuation,
		CreativeDivergence:   divergence,
		OverallScore:         clamp(overall),
	}
}

func invert(x float64) float64 {
	return clamp(1 - math.Pow(x, inversionExponent))
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
