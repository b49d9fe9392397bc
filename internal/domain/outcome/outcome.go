// Package outcome classifies match-result notations found in free text.
package outcome

import (
	"regexp"

	"github.com/chesspool/schedina/internal/domain/model"
)

// rule pairs a notation pattern with the outcome it encodes.
type rule struct {
	pattern *regexp.Regexp
	symbol  model.Outcome
}

// Patterns in descending order of reliability: "0 - 1" also matches the
// bare-digit rules further down, so the specific two-number notations
// must be tried first.
var rules = []rule{
	{regexp.MustCompile(`(?:^|\D)1\s*[-–\\/]\s*0(?:$|\D)`), model.FirstWins},  // 1 - 0
	{regexp.MustCompile(`(?:^|\D)0\s*[-–\\/]\s*1(?:$|\D)`), model.SecondWins}, // 0 - 1
	{regexp.MustCompile(`(?:^|\D)½\s*[-–\\/]\s*½(?:$|\D)`), model.Draw},       // ½ - ½
	{regexp.MustCompile(`(?:^|\D)1[\\/]2(?:$|\D)`), model.Draw},               // 1/2
	{regexp.MustCompile(`(?:^|\D)0[.,]5(?:$|\D)`), model.Draw},                // 0.5
	{regexp.MustCompile(`(?i)(?:^|\s)patta(?:$|\W)`), model.Draw},             // patta
	{regexp.MustCompile(`(?:^|\s)½(?:$|\s)`), model.Draw},                     // ½
	{regexp.MustCompile(`(?:^|\D)1\s+0(?:$|\D)`), model.FirstWins},            // 1 0
	{regexp.MustCompile(`(?:^|\D)0\s+1(?:$|\D)`), model.SecondWins},           // 0 1
	{regexp.MustCompile(`(?:^|\s)[xX](?:$|\s)`), model.Draw},                  // X
	{regexp.MustCompile(`(?:^|\D)1(?:$|\D)`), model.FirstWins},                // 1
	{regexp.MustCompile(`(?:^|\D)2(?:$|\D)`), model.SecondWins},               // 2
	{regexp.MustCompile(`@@@`), model.Unplayed},                               // not yet played
}

// Find returns the outcome encoded on the line, or model.Unknown when no
// notation is recognized.
func Find(line string) model.Outcome {
	for _, r := range rules {
		if r.pattern.MatchString(line) {
			return r.symbol
		}
	}
	return model.Unknown
}
