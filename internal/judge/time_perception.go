package judge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xinayida/anti-turing-test/internal/models"
)

// Inter-keystroke delays outside this window are paste or idle anomalies and
// are discarded before averaging.
const (
	minPlausibleDelayMs = 100
	maxPlausibleDelayMs = 10000
)

// Typical human hesitation window for the average inter-keystroke delay.
const (
	hesitationLowMs   = 1200
	hesitationHighMs  = 3400
	implausiblyFastMs = 500
)

// Score adjustments applied to the neutral 0.5 baseline.
const (
	hesitationBonus       = 0.2
	fastPenalty           = 0.2
	vaguePhraseBonus      = 0.15
	precisePatternPenalty = 0.15
)

// vagueTimePhrases are relative time anchors typical of human recall.
var vagueTimePhrases = []string{
	"recently",
	"last week",
	"last month",
	"last year",
	"a while ago",
	"the other day",
	"a few days ago",
	"some time ago",
	"yesterday",
	"not long ago",
}

var (
	preciseDateRegex = regexp.MustCompile(`\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)
	preciseTimeRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// TimePerception is the one locally computed judge: it scores how human the
// response timing and the text's treatment of time look, with no external
// call.
func TimePerception(text string, delays []int64) models.FeatureResult {
	filtered := filterDelays(delays)

	var avgDelay float64
	if len(filtered) > 0 {
		var sum int64
		for _, d := range filtered {
			sum += d
		}
		avgDelay = float64(sum) / float64(len(filtered))
	}

	score := 0.5
	var signals []string

	// An empty or fully filtered sample set averages to 0 and reads as
	// implausibly fast.
	if avgDelay >= hesitationLowMs && avgDelay <= hesitationHighMs {
		score += hesitationBonus
		signals = append(signals, fmt.Sprintf("average response delay %.0fms falls in the natural hesitation window", avgDelay))
	} else if avgDelay < implausiblyFastMs {
		score -= fastPenalty
		signals = append(signals, fmt.Sprintf("average response delay %.0fms is implausibly fast", avgDelay))
	} else {
		signals = append(signals, fmt.Sprintf("average response delay %.0fms is outside the typical hesitation window", avgDelay))
	}

	lower := strings.ToLower(text)
	foundVague := ""
	for _, phrase := range vagueTimePhrases {
		if strings.Contains(lower, phrase) {
			foundVague = phrase
			break
		}
	}
	if foundVague != "" {
		score += vaguePhraseBonus
		signals = append(signals, fmt.Sprintf("uses the vague time phrase %q", foundVague))
	} else {
		signals = append(signals, "no vague time phrases")
	}

	if preciseDateRegex.MatchString(text) || preciseTimeRegex.MatchString(text) {
		score -= precisePatternPenalty
		signals = append(signals, "contains a precise date or clock time")
	} else {
		signals = append(signals, "no precise date or clock times")
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	rubric := RubricFor(models.TimePerception)
	return models.FeatureResult{
		Score:     score,
		Analysis:  "Time perception signals: " + strings.Join(signals, "; ") + ".",
		HumanVsAI: rubric.Pair,
		Parsed:    true,
	}
}

func filterDelays(delays []int64) []int64 {
	filtered := make([]int64, 0, len(delays))
	for _, d := range delays {
		if d >= minPlausibleDelayMs && d <= maxPlausibleDelayMs {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
