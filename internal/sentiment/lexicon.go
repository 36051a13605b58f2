package sentiment

// valence maps lowercase words to a polarity valence on a [-4, 4] scale.
// Rule-based approximation, not a learned model; kept as a data table so it
// can be tuned without touching the scoring arithmetic.
var valence = map[string]float64{
	// positive
	"good":       1.9,
	"great":      3.1,
	"excellent":  3.2,
	"amazing":    2.8,
	"wonderful":  2.7,
	"fantastic":  2.6,
	"awesome":    3.1,
	"love":       3.2,
	"loved":      2.9,
	"like":       1.5,
	"liked":      1.6,
	"enjoy":      2.2,
	"enjoyed":    2.3,
	"happy":      2.7,
	"happiness":  2.6,
	"joy":        2.8,
	"glad":       2.0,
	"pleased":    1.9,
	"delighted":  2.9,
	"excited":    2.2,
	"exciting":   2.3,
	"beautiful":  2.9,
	"best":       3.2,
	"better":     1.9,
	"perfect":    2.7,
	"nice":       1.8,
	"fun":        2.3,
	"funny":      1.9,
	"interesting": 1.7,
	"impressive": 2.2,
	"helpful":    1.8,
	"hope":       1.9,
	"hopeful":    2.0,
	"success":    2.4,
	"successful": 2.4,
	"win":        2.4,
	"winning":    2.4,
	"proud":      2.1,
	"calm":       1.3,
	"comfort":    1.5,
	"comfortable": 1.7,
	"warm":       1.4,
	"thank":      1.9,
	"thanks":     1.9,
	"grateful":   2.4,
	"favorite":   2.0,
	"brilliant":  2.8,
	"laugh":      2.2,
	"laughed":    2.1,
	"smile":      2.1,

	// negative
	"bad":          -2.5,
	"terrible":     -3.1,
	"awful":        -3.0,
	"horrible":     -2.9,
	"worst":        -3.1,
	"worse":        -2.1,
	"hate":         -2.7,
	"hated":        -2.7,
	"dislike":      -1.6,
	"sad":          -2.1,
	"sadness":      -2.1,
	"unhappy":      -1.8,
	"angry":        -2.3,
	"anger":        -2.3,
	"mad":          -2.2,
	"annoyed":      -1.8,
	"annoying":     -1.9,
	"frustrated":   -2.1,
	"frustrating":  -2.1,
	"disappointed": -2.1,
	"disappointing": -2.2,
	"afraid":       -2.0,
	"fear":         -2.2,
	"scared":       -2.2,
	"worried":      -1.9,
	"worry":        -1.9,
	"anxious":      -1.9,
	"stress":       -1.9,
	"stressed":     -2.0,
	"pain":         -2.3,
	"painful":      -2.4,
	"hurt":         -2.1,
	"cry":          -2.1,
	"cried":        -2.1,
	"lonely":       -2.1,
	"tired":        -1.4,
	"boring":       -1.6,
	"bored":        -1.5,
	"ugly":         -2.2,
	"wrong":        -1.7,
	"fail":         -2.3,
	"failed":       -2.3,
	"failure":      -2.4,
	"lose":         -1.8,
	"lost":         -1.6,
	"problem":      -1.4,
	"difficult":    -1.2,
	"hard":         -0.8,
	"trouble":      -1.7,
	"miss":         -1.3,
	"missed":       -1.3,
	"regret":       -2.0,
	"sorry":        -1.0,
}

// negators invert the valence of the word that follows them.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"neither": {},
	"nobody":  {},
	"nothing": {},
	"without": {},
	"hardly":  {},
	"cannot":  {},
	"can't":   {},
	"don't":   {},
	"didn't":  {},
	"doesn't": {},
	"isn't":   {},
	"wasn't":  {},
	"won't":   {},
	"wouldn't": {},
}

// intensifiers scale the valence of the word that follows them.
var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"incredibly": 1.5,
	"absolutely": 1.4,
	"totally":    1.3,
	"so":         1.2,
	"quite":      1.1,
	"somewhat":   0.8,
	"slightly":   0.7,
	"barely":     0.6,
}
