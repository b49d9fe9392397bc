// Package participant recognizes tournament participants in free text.
package participant

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chesspool/schedina/internal/domain/model"
)

// Match reports one recognized participant and where its first
// recognized token starts in the line. Offsets order the two sides of a
// prediction left to right.
type Match struct {
	Name   string
	Offset int
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithWordBoundaries toggles word-boundary-aware token matching. Strict
// matching (the default) avoids partial-word hits such as finding "Al"
// inside "Albert"; bare substring matching reproduces looser historical
// configurations.
func WithWordBoundaries(strict bool) Option {
	return func(m *Matcher) {
		m.strict = strict
	}
}

// Matcher finds known participants in lines of text. Build one per run;
// it precompiles token patterns and is safe for concurrent use.
type Matcher struct {
	strict   bool
	entries  []entry
	literals map[string]map[string]bool // name -> recognized words
}

type entry struct {
	name   string
	tokens []token
}

type token struct {
	literal string
	pattern *regexp.Regexp // nil in bare-substring mode
}

// NewMatcher creates a Matcher over the known participants.
func NewMatcher(participants []model.Participant, opts ...Option) *Matcher {
	m := &Matcher{strict: true, literals: make(map[string]map[string]bool)}
	for _, opt := range opts {
		opt(m)
	}

	for _, p := range participants {
		e := entry{name: p.Name}
		words := map[string]bool{p.Name: true}
		var literals []string
		literals = append(literals, strings.Fields(p.Name)...)
		literals = append(literals, p.Nicknames...)
		for _, lit := range literals {
			if lit == "" {
				continue
			}
			words[lit] = true
			t := token{literal: lit}
			if m.strict {
				t.pattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(lit) + `\b`)
			}
			e.tokens = append(e.tokens, t)
		}
		m.entries = append(m.entries, e)
		m.literals[p.Name] = words
	}
	return m
}

// IsToken reports whether word is one of the recognized spellings of the
// named participant: the full name, a name token, or a nickname.
func (m *Matcher) IsToken(name, word string) bool {
	return m.literals[name][word]
}

// FindAll returns every participant recognized in the line, each at most
// once, ordered by ascending offset. The full canonical name is tried
// first as a plain substring; failing that, each name token and nickname
// in turn.
func (m *Matcher) FindAll(line string) []Match {
	var found []Match
	for _, e := range m.entries {
		if idx := strings.Index(line, e.name); idx >= 0 {
			found = append(found, Match{Name: e.name, Offset: idx})
			continue
		}
		for _, t := range e.tokens {
			idx := t.find(line)
			if idx < 0 {
				continue
			}
			found = append(found, Match{Name: e.name, Offset: idx})
			break
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Offset < found[j].Offset })
	return found
}

func (t token) find(line string) int {
	if t.pattern != nil {
		loc := t.pattern.FindStringIndex(line)
		if loc == nil {
			return -1
		}
		return loc[0]
	}
	return strings.Index(line, t.literal)
}
