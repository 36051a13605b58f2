package aisim

import "github.com/xinayida/anti-turing-test/internal/textproc"

// academicWords is the fixed academic lexicon used for the vocabulary
// complexity density. Matching happens on stems, so the set is stemmed once
// at init rather than hand-maintaining stem forms.
var academicWords = []string{
	"analyze", "analysis", "approach", "assess", "assume", "concept",
	"consist", "context", "data", "define", "derive", "distribute",
	"establish", "estimate", "evaluate", "evidence", "factor", "function",
	"identify", "indicate", "interpret", "method", "occur", "percent",
	"principle", "process", "require", "research", "significant", "structure",
	"theory", "vary",
}

// connectorWords is the fixed list of discourse connectors.
var connectorWords = map[string]struct{}{
	"therefore":    {},
	"however":      {},
	"moreover":     {},
	"furthermore":  {},
	"consequently": {},
	"nevertheless": {},
	"additionally": {},
	"meanwhile":    {},
	"thus":         {},
	"hence":        {},
}

var academicStems map[string]struct{}

func init() {
	academicStems = make(map[string]struct{}, len(academicWords))
	for _, w := range academicWords {
		academicStems[textproc.Stem(w)] = struct{}{}
	}
}
