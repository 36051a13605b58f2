package judge

import (
	"regexp"
	"strconv"
)

// scoreRegex matches "score: <number>" case-insensitively anywhere in the
// judge reply. Pattern matching on free text is fragile; a miss is reported
// so the neutral default stays observable.
var scoreRegex = regexp.MustCompile(`(?i)score[:：]\s*([0-9]*\.?[0-9]+)`)

// parseScore extracts the numeric score from a judge reply. The second
// return value is false when no score could be found; callers substitute the
// neutral 0.5. Parsed values are clamped to [0, 1].
func parseScore(reply string) (float64, bool) {
	m := scoreRegex.FindStringSubmatch(reply)
	if m == nil {
		return 0.5, false
	}

	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.5, false
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, true
}
