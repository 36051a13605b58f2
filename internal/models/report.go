package models

import "time"

// Classification buckets for the final human-likeness score.
const (
	ClassHuman     = "Human"
	ClassAI        = "AI"
	ClassAmbiguous = "Ambiguous"
)

// Dimension identifies one qualitative feature judged during analysis.
type Dimension string

const (
	SemanticElasticity  Dimension = "semantic_elasticity"
	EmotionalExpression Dimension = "emotional_expression"
	ReferenceAbility    Dimension = "reference_ability"
	AmbiguityHandling   Dimension = "ambiguity_handling"
	CreativeThinking    Dimension = "creative_thinking"
	TimePerception      Dimension = "time_perception"
)

// Dimensions lists all six qualitative dimensions in report order.
var Dimensions = []Dimension{
	SemanticElasticity,
	EmotionalExpression,
	ReferenceAbility,
	AmbiguityHandling,
	CreativeThinking,
	TimePerception,
}

// HumanVsAI is the fixed descriptive pair attached to every feature result.
type HumanVsAI struct {
	Human string `json:"human"`
	AI    string `json:"ai"`
}

// FeatureResult is the outcome of a single qualitative judge.
type FeatureResult struct {
	Score     float64   `json:"score"`
	Analysis  string    `json:"analysis"`
	HumanVsAI HumanVsAI `json:"human_vs_ai"`

	// Parsed is false when the judge reply carried no extractable score and
	// the neutral 0.5 default was substituted. Internal observability only.
	Parsed bool `json:"-"`
}

// KeyTerm is a weighted term extracted from the answer text.
type KeyTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TextStructure holds the structural metrics of the answer text.
type TextStructure struct {
	LexicalDiversity  float64   `json:"lexical_diversity"`
	AvgSentenceLength float64   `json:"avg_sentence_length"`
	KeyTerms          []KeyTerm `json:"key_terms"`
	TokenCount        int       `json:"token_count"`
	SentenceCount     int       `json:"sentence_count"`
}

// AISimilarity holds the three statistical scores after inversion to a
// human-likeness orientation, plus their weighted combination.
type AISimilarity struct {
	VocabularyComplexity float64 `json:"vocabulary_complexity"`
	EmotionalFluctuation float64 `json:"emotional_fluctuation"`
	CreativeDivergence   float64 `json:"creative_divergence"`
	OverallScore         float64 `json:"overall_score"`
}

// InnovationFeatures holds the six qualitative judge results. Field order
// fixes the output ordering regardless of judge completion order.
type InnovationFeatures struct {
	SemanticElasticity  FeatureResult `json:"semantic_elasticity"`
	EmotionalExpression FeatureResult `json:"emotional_expression"`
	ReferenceAbility    FeatureResult `json:"reference_ability"`
	AmbiguityHandling   FeatureResult `json:"ambiguity_handling"`
	CreativeThinking    FeatureResult `json:"creative_thinking"`
	TimePerception      FeatureResult `json:"time_perception"`
	OverallScore        float64       `json:"overall_score"`
}

// ByDimension returns the result for a single dimension.
func (f *InnovationFeatures) ByDimension(d Dimension) FeatureResult {
	switch d {
	case SemanticElasticity:
		return f.SemanticElasticity
	case EmotionalExpression:
		return f.EmotionalExpression
	case ReferenceAbility:
		return f.ReferenceAbility
	case AmbiguityHandling:
		return f.AmbiguityHandling
	case CreativeThinking:
		return f.CreativeThinking
	case TimePerception:
		return f.TimePerception
	}
	return FeatureResult{}
}

// SetDimension stores the result for a single dimension.
func (f *InnovationFeatures) SetDimension(d Dimension, r FeatureResult) {
	switch d {
	case SemanticElasticity:
		f.SemanticElasticity = r
	case EmotionalExpression:
		f.EmotionalExpression = r
	case ReferenceAbility:
		f.ReferenceAbility = r
	case AmbiguityHandling:
		f.AmbiguityHandling = r
	case CreativeThinking:
		f.CreativeThinking = r
	case TimePerception:
		f.TimePerception = r
	}
}

// AnalysisReport is the full result of one scoring pass. It is created once
// per analyze request and never mutated afterwards.
type AnalysisReport struct {
	ID                 string             `json:"id" db:"id"`
	SessionID          string             `json:"session_id" db:"session_id"`
	Text               string             `json:"text" db:"text"`
	TextStructure      TextStructure      `json:"text_structure"`
	AISimilarity       AISimilarity       `json:"ai_similarity"`
	InnovationFeatures InnovationFeatures `json:"innovation_features"`
	OverallScore       float64            `json:"overall_human_likeness_score" db:"overall_score"`
	Classification     string             `json:"classification" db:"classification"`
	AnalyzedAt         time.Time          `json:"analyzed_at" db:"analyzed_at"`
}

// AnalyzeRequest is the externally observable input contract of the pipeline.
type AnalyzeRequest struct {
	Text           string  `json:"text" binding:"required"`
	ResponseDelays []int64 `json:"response_delays"`
	SessionID      string  `json:"session_id"`
}
