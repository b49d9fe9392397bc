// Package lineparse decides what, if anything, a single line of forum
// text encodes: a two-player prediction, a single-player ranking guess,
// or something suspect worth flagging.
package lineparse

import (
	"fmt"
	"strings"

	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/internal/domain/outcome"
	"github.com/chesspool/schedina/internal/domain/participant"
)

// Kind classifies the parse result of one line.
type Kind int

const (
	// None means the line encodes nothing of interest. Routine and silent.
	None Kind = iota
	// Prediction means the line names exactly two participants and a
	// recognized outcome.
	Prediction
	// RankingEntry means the line is a bare single-participant line, as
	// found in final-standings guesses.
	RankingEntry
	// Suspect means the line partially matches expected patterns; it is
	// surfaced as a warning, never auto-corrected.
	Suspect
)

// Result is the outcome of parsing one line.
type Result struct {
	Kind    Kind
	First   string        // Prediction: participant named first on the line
	Second  string        // Prediction: participant named second
	Outcome model.Outcome // Prediction only
	Name    string        // RankingEntry only
	Reason  string        // Suspect only
}

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithMaxExtraWords bounds how many words beside the participant name a
// ranking line may carry and still be accepted.
func WithMaxExtraWords(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.maxExtraWords = n
		}
	}
}

// Parser combines participant and outcome recognition. Safe for
// concurrent use.
type Parser struct {
	matcher       *participant.Matcher
	maxExtraWords int
}

// NewParser creates a line parser over the given participant matcher.
func NewParser(matcher *participant.Matcher, opts ...Option) *Parser {
	p := &Parser{matcher: matcher, maxExtraWords: 2}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse classifies one line. Participant and outcome recognition run
// independently; cardinality of recognized participants decides the kind:
//
//	2 + outcome   -> Prediction, sides ordered by ascending offset
//	2, no outcome -> Suspect (forecast without a readable result)
//	1             -> RankingEntry if the line is otherwise bare, else Suspect
//	>=3           -> Suspect (ambiguous multi-name text)
//	0             -> None
func (p *Parser) Parse(line string) Result {
	found := p.matcher.FindAll(line)
	sym := outcome.Find(line)

	switch len(found) {
	case 0:
		return Result{Kind: None}
	case 1:
		if name, ok := p.rankingName(line, found[0]); ok {
			return Result{Kind: RankingEntry, Name: name}
		}
		return Result{
			Kind:   Suspect,
			Reason: fmt.Sprintf("single participant %q with no usable context", found[0].Name),
		}
	case 2:
		if sym == model.Unknown {
			return Result{
				Kind:   Suspect,
				Reason: fmt.Sprintf("participants %q and %q but no recognized outcome", found[0].Name, found[1].Name),
			}
		}
		return Result{
			Kind:    Prediction,
			First:   found[0].Name,
			Second:  found[1].Name,
			Outcome: sym,
		}
	default:
		names := make([]string, len(found))
		for i, f := range found {
			names[i] = f.Name
		}
		return Result{
			Kind:   Suspect,
			Reason: fmt.Sprintf("%d participants on one line (%s)", len(found), strings.Join(names, ", ")),
		}
	}
}

const trimPunct = ".,;:()[]-–—\"'"

// rankingName accepts a line as a ranking entry when it carries one
// recognized participant, at most one leading numeral (a position marker
// like "3."), and no more than maxExtraWords other non-numeric words.
// A digit-bearing token anywhere else disqualifies the line: it is more
// likely a half-parsed prediction than a standings guess.
func (p *Parser) rankingName(line string, m participant.Match) (string, bool) {
	extra := 0
	for i, field := range strings.Fields(line) {
		word := strings.Trim(field, trimPunct)
		if word == "" {
			continue
		}
		if containsDigit(word) {
			if i == 0 {
				continue
			}
			return "", false
		}
		if p.matcher.IsToken(m.Name, word) {
			continue
		}
		extra++
		if extra > p.maxExtraWords {
			return "", false
		}
	}
	return m.Name, true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
