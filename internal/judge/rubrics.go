package judge

import "github.com/xinayida/anti-turing-test/internal/models"

// Rubric is the fixed judging guideline for one qualitative dimension.
// Rubrics are static configuration data; the scoring logic never inspects
// their content beyond embedding it in the prompt.
type Rubric struct {
	Title      string
	HumanShows []string
	AIShows    []string
	Pair       models.HumanVsAI
}

var rubrics = map[models.Dimension]Rubric{
	models.SemanticElasticity: {
		Title: "Semantic Elasticity",
		HumanShows: []string{
			"loose associations that still land on the point",
			"mid-sentence reframing or self-correction",
			"meaning stretched through metaphor or slang",
			"tolerance for their own imprecision",
		},
		AIShows: []string{
			"tightly scoped, dictionary-faithful word usage",
			"uniform abstraction level across the whole answer",
			"definitions offered where none were asked for",
			"reluctance to leave a thought unfinished",
		},
		Pair: models.HumanVsAI{
			Human: "Humans stretch and bend word meanings, drift between abstraction levels, and correct themselves mid-thought.",
			AI:    "AI keeps word usage precise and consistent, holding one abstraction level throughout.",
		},
	},
	models.EmotionalExpression: {
		Title: "Emotional Expression",
		HumanShows: []string{
			"uneven emotional intensity across the answer",
			"personal stakes, complaints, or enthusiasm leaking through",
			"emotion attached to specific memories",
			"contradictory feelings held at once",
		},
		AIShows: []string{
			"evenly tempered, agreeable tone throughout",
			"emotion described rather than expressed",
			"balanced acknowledgement of all perspectives",
			"sentiment that never escalates or cools",
		},
		Pair: models.HumanVsAI{
			Human: "Humans express uneven, personal, sometimes contradictory emotion tied to lived moments.",
			AI:    "AI maintains an even, agreeable tone and describes emotions instead of showing them.",
		},
	},
	models.ReferenceAbility: {
		Title: "Reference Ability",
		HumanShows: []string{
			"concrete references to people, places, or events in their own life",
			"imperfect recall with hedges like 'I think it was'",
			"niche cultural references without explanation",
			"references that assume shared context with the reader",
		},
		AIShows: []string{
			"generic examples attributable to no one in particular",
			"well-known references explained in full",
			"no first-person episodic memory",
			"hedged, attribution-free factual claims",
		},
		Pair: models.HumanVsAI{
			Human: "Humans anchor answers in specific personal and cultural references, recalled imperfectly.",
			AI:    "AI relies on generic, fully-explained examples with no episodic memory of its own.",
		},
	},
	models.AmbiguityHandling: {
		Title: "Ambiguity Handling",
		HumanShows: []string{
			"picking one reading of an ambiguous question and running with it",
			"answering the question they wish had been asked",
			"comfort with leaving ambiguity unresolved",
			"asking nothing and assuming a lot",
		},
		AIShows: []string{
			"enumerating every possible interpretation",
			"requests for clarification before committing",
			"hedged answers covering all readings at once",
			"explicit restatement of the question",
		},
		Pair: models.HumanVsAI{
			Human: "Humans commit to one interpretation of an ambiguous prompt and tolerate loose ends.",
			AI:    "AI enumerates interpretations, hedges across all of them, and restates the question.",
		},
	},
	models.CreativeThinking: {
		Title: "Creative Thinking",
		HumanShows: []string{
			"odd, low-probability associations",
			"ideas abandoned halfway for better ones",
			"humor, exaggeration, or deliberate absurdity",
			"solutions borrowed from unrelated domains of their life",
		},
		AIShows: []string{
			"safe, high-probability idea selection",
			"structured brainstorm lists",
			"novelty achieved by recombination of common tropes",
			"uniform elaboration depth on every idea",
		},
		Pair: models.HumanVsAI{
			Human: "Humans produce odd associations, abandon ideas mid-stream, and joke or exaggerate.",
			AI:    "AI offers safe, well-structured ideas elaborated to a uniform depth.",
		},
	},
	models.TimePerception: {
		Title: "Time Perception",
		HumanShows: []string{
			"vague, relative time anchors like 'last week' or 'a while ago'",
			"hesitation consistent with recalling when something happened",
			"timeline inconsistencies left uncorrected",
		},
		AIShows: []string{
			"precise dates and clock times",
			"implausibly fast, uniform response timing",
			"chronologies that are suspiciously tidy",
		},
		Pair: models.HumanVsAI{
			Human: "Humans remember time vaguely and respond with natural hesitation.",
			AI:    "AI produces precise timestamps and implausibly fast, uniform responses.",
		},
	},
}

// RubricFor returns the rubric of a dimension.
func RubricFor(d models.Dimension) Rubric {
	return rubrics[d]
}

// fallbackResult is the canned neutral result substituted when a judge
// cannot complete normally. The pipeline always produces six scores.
func fallbackResult(d models.Dimension) models.FeatureResult {
	return models.FeatureResult{
		Score:     0.5,
		Analysis:  "Error analyzing " + rubrics[d].Title,
		HumanVsAI: rubrics[d].Pair,
	}
}
