// Package model contains domain models passed between pipeline stages.
package model

import "time"

// OfficialAuthor is the sentinel author of the authoritative results feed.
// Predictions carrying it are ground truth, never scored themselves.
const OfficialAuthor = "Official results"

// Outcome classifies a match result notation.
type Outcome string

// Outcome symbols. "1" means the first-named participant wins, "2" the
// second-named, "X" a draw, "@" a game not yet played, "?" an absent or
// unrecognized notation. "?" is never stored on a final prediction.
const (
	FirstWins  Outcome = "1"
	SecondWins Outcome = "2"
	Draw       Outcome = "X"
	Unplayed   Outcome = "@"
	Unknown    Outcome = "?"
)

// Post represents one forum message as produced by the thread loader.
type Post struct {
	ID        string    // loader-assigned id for diagnostics
	Author    string    // forum author, possibly remapped via aliases
	Text      string    // raw message body
	Timestamp time.Time // zero when the source carries no timestamp
}

// Participant is one tournament identity. The canonical name is the unique
// key; nicknames extend recognition in forum prose.
type Participant struct {
	Name      string   `koanf:"name"`
	Nicknames []string `koanf:"nicknames"`
}

// Prediction is a single forecasted or actual match result. First and
// Second are participant names in the order they appeared in the source
// line. Round 0 means the round is not known yet; it may be filled in
// during reconciliation. Values are immutable: use WithRound and WithScore
// to derive updated copies.
type Prediction struct {
	Author  string
	First   string
	Second  string
	Outcome Outcome
	Round   int // 0 = unknown
	Score   int // assigned by scoring, 0 until then
}

// WithRound returns a copy of p with the round replaced.
func (p Prediction) WithRound(round int) Prediction {
	p.Round = round
	return p
}

// WithScore returns a copy of p with the score set.
func (p Prediction) WithScore(score int) Prediction {
	p.Score = score
	return p
}

// Official reports whether p belongs to the authoritative feed.
func (p Prediction) Official() bool {
	return p.Author == OfficialAuthor
}

// Pairing identifies the game independent of author and round.
func (p Prediction) Pairing() Pairing {
	return Pairing{First: p.First, Second: p.Second}
}

// Pairing is a (first, second) participant pair, in line order.
type Pairing struct {
	First  string
	Second string
}

// Ranking is one author's guessed final standings, in order from first
// place down. Only rankings of the configured expected length survive
// extraction.
type Ranking struct {
	Author string
	Names  []string
}

// OfficialRanking is the authoritative final standings. Each position
// holds the set of acceptable names, to tolerate ties.
type OfficialRanking [][]string

// At returns the acceptable names for a zero-based position.
func (r OfficialRanking) At(pos int) []string {
	if pos < 0 || pos >= len(r) {
		return nil
	}
	return r[pos]
}

// Contains reports whether name appears at any position.
func (r OfficialRanking) Contains(name string) bool {
	for _, names := range r {
		for _, n := range names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// RoundEntry is one leaderboard row for a single round: how many
// predictions the author made, what they scored, and their running total
// through that round. Fully derived, recomputed each run.
type RoundEntry struct {
	Round       int
	Author      string
	Predictions int
	Score       int
	Cumulative  int
}

// TotalEntry is one row of the final combined leaderboard.
type TotalEntry struct {
	Author       string
	RankingScore int
	Total        int
}
