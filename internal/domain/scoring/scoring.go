// Package scoring awards points to predictions and ranking guesses
// against the official results and builds the leaderboard entries.
package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/pkg/logger"
	"github.com/chesspool/schedina/pkg/metrics"
)

// Default scoring configuration constants.
const (
	defaultPerfectBonus = 1
	defaultPlausibleCap = 10
	defaultRankingFirst = 3
	defaultRankingOther = 2
	defaultRankingLoose = 1
	defaultSystem       = "classic"
)

// Table holds the points awarded for a correct prediction, by predicted
// outcome.
type Table struct {
	FirstWin  int // correct "1"
	Draw      int // correct "X"
	SecondWin int // correct "2"
}

// Named preset tables observed across contest editions.
var presets = map[string]Table{
	"classic": {FirstWin: 2, Draw: 1, SecondWin: 3},
	"flat":    {FirstWin: 2, Draw: 2, SecondWin: 2},
	"steep":   {FirstWin: 3, Draw: 1, SecondWin: 4},
}

// TableFor resolves a scoring-system name to its point table. An unknown
// name returns ErrUnknownSystem: misconfiguration, not input noise.
func TableFor(system string) (Table, error) {
	t, ok := presets[system]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}
	return t, nil
}

func (t Table) points(o model.Outcome) int {
	switch o {
	case model.FirstWins:
		return t.FirstWin
	case model.Draw:
		return t.Draw
	case model.SecondWins:
		return t.SecondWin
	default:
		return 0
	}
}

// RankingPoints holds the per-position points for ranking guesses.
type RankingPoints struct {
	FirstCorrect int // named the winner in the top position
	OtherCorrect int // correct name at any other position
	Misplaced    int // named someone in the list, wrong position
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTable sets the prediction point table.
func WithTable(t Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithPerfectBonus sets the bonus for scoring on every game of a round.
func WithPerfectBonus(bonus int) Option {
	return func(e *Engine) {
		if bonus >= 0 {
			e.perfectBonus = bonus
		}
	}
}

// WithRankingPoints sets the ranking-guess point values.
func WithRankingPoints(p RankingPoints) Option {
	return func(e *Engine) {
		e.rankingPoints = p
	}
}

// WithDefaultDraw enables the standing all-draws forecast for authors who
// participated earlier but skipped a round.
func WithDefaultDraw(enabled bool) Option {
	return func(e *Engine) {
		e.defaultDraw = enabled
	}
}

// WithPlausibilityThreshold sets the prediction score above which a
// missing ranking submission is flagged.
func WithPlausibilityThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.plausibleCap = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine assigns points and derives leaderboard entries. All methods are
// pure transformations over their inputs.
type Engine struct {
	table         Table
	perfectBonus  int
	rankingPoints RankingPoints
	defaultDraw   bool
	plausibleCap  int
	log           logger.Logger
}

// NewEngine creates a scoring engine. The default table is the classic
// preset.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		table:        presets[defaultSystem],
		perfectBonus: defaultPerfectBonus,
		rankingPoints: RankingPoints{
			FirstCorrect: defaultRankingFirst,
			OtherCorrect: defaultRankingOther,
			Misplaced:    defaultRankingLoose,
		},
		plausibleCap: defaultPlausibleCap,
		log:          logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// tripleKey matches a forecast to an official result exactly: same
// pairing, same outcome.
type tripleKey struct {
	first   string
	second  string
	outcome model.Outcome
}

// ScorePredictions returns copies of the non-official predictions with
// points assigned: the table value when an official result with the same
// (first, second, outcome) triple exists, zero otherwise. Official
// entries pass through unscored.
func (e *Engine) ScorePredictions(ctx context.Context, predictions []model.Prediction) []model.Prediction {
	official := make(map[tripleKey]bool)
	for _, p := range predictions {
		if p.Official() {
			official[tripleKey{p.First, p.Second, p.Outcome}] = true
		}
	}

	out := make([]model.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Official() {
			out = append(out, p)
			continue
		}
		score := 0
		if official[tripleKey{p.First, p.Second, p.Outcome}] {
			score = e.table.points(p.Outcome)
		}
		metrics.RecordPredictionScored()
		out = append(out, p.WithScore(score))
	}
	return out
}

// RoundEntries derives the per-round leaderboard. Rounds come from the
// official set, ascending; every author seen anywhere in the forecasts
// gets an entry per round, with a running cumulative total. The perfect
// bonus is added when an author scored on every official game of the
// round. With the default-draw policy on, an author who participated in
// an earlier round but skipped this one is scored as if they had
// forecast a draw for every game of the round.
func (e *Engine) RoundEntries(ctx context.Context, scored []model.Prediction) []model.RoundEntry {
	official := make([]model.Prediction, 0)
	forecasts := make([]model.Prediction, 0, len(scored))
	for _, p := range scored {
		if p.Official() {
			official = append(official, p)
		} else {
			forecasts = append(forecasts, p)
		}
	}

	roundSet := make(map[int]bool)
	gamesByRound := make(map[int][]model.Prediction)
	for _, p := range official {
		roundSet[p.Round] = true
		gamesByRound[p.Round] = append(gamesByRound[p.Round], p)
	}
	rounds := make([]int, 0, len(roundSet))
	for r := range roundSet {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)

	authorSet := make(map[string]bool)
	for _, p := range forecasts {
		authorSet[p.Author] = true
	}
	authors := make([]string, 0, len(authorSet))
	for a := range authorSet {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	metrics.UpdateAuthorCount(len(authors))

	byAuthorRound := make(map[string]map[int][]model.Prediction)
	for _, p := range forecasts {
		if byAuthorRound[p.Author] == nil {
			byAuthorRound[p.Author] = make(map[int][]model.Prediction)
		}
		byAuthorRound[p.Author][p.Round] = append(byAuthorRound[p.Author][p.Round], p)
	}

	cumulative := make(map[string]int)
	participated := make(map[string]bool)
	var entries []model.RoundEntry

	for _, r := range rounds {
		games := gamesByRound[r]
		// Authors active before this round, for the default-draw policy.
		activeBefore := make(map[string]bool, len(participated))
		for a := range participated {
			activeBefore[a] = true
		}

		for _, author := range authors {
			preds := byAuthorRound[author][r]
			if len(preds) > 0 {
				participated[author] = true
			}

			if len(preds) == 0 && e.defaultDraw && activeBefore[author] {
				preds = e.defaultDrawForecast(author, games)
			}

			score := 0
			hits := 0
			for _, p := range preds {
				score += p.Score
				if p.Score > 0 {
					hits++
				}
			}
			if len(games) > 0 && hits == len(games) {
				score += e.perfectBonus
				metrics.RecordPerfectRound()
			}

			cumulative[author] += score
			entries = append(entries, model.RoundEntry{
				Round:       r,
				Author:      author,
				Predictions: len(preds),
				Score:       score,
				Cumulative:  cumulative[author],
			})
		}
	}
	return entries
}

// defaultDrawForecast synthesizes a scored all-draws guess over the
// round's official games. It models a standing forecast, not a penalty.
func (e *Engine) defaultDrawForecast(author string, games []model.Prediction) []model.Prediction {
	preds := make([]model.Prediction, 0, len(games))
	for _, g := range games {
		score := 0
		if g.Outcome == model.Draw {
			score = e.table.Draw
		}
		preds = append(preds, model.Prediction{
			Author:  author,
			First:   g.First,
			Second:  g.Second,
			Outcome: model.Draw,
			Round:   g.Round,
			Score:   score,
		})
	}
	return preds
}

// RankingScores awards points per ranking submission against the official
// final standings. When an author submitted more than once, the last
// submission wins outright. The top position earns FirstCorrect when it
// names anyone in the official top set; other exact positions earn
// OtherCorrect; a name at the wrong position but present somewhere in
// the official list earns the Misplaced credit.
func (e *Engine) RankingScores(ctx context.Context, rankings []model.Ranking, official model.OfficialRanking) map[string]int {
	latest := make(map[string]model.Ranking)
	for _, r := range rankings {
		latest[r.Author] = r
	}

	scores := make(map[string]int, len(latest))
	for author, r := range latest {
		total := 0
		for pos, name := range r.Names {
			atPos := official.At(pos)
			exact := false
			for _, n := range atPos {
				if n == name {
					exact = true
					break
				}
			}
			switch {
			case exact && pos == 0:
				total += e.rankingPoints.FirstCorrect
			case exact:
				total += e.rankingPoints.OtherCorrect
			case official.Contains(name):
				total += e.rankingPoints.Misplaced
			}
		}
		scores[author] = total
	}
	return scores
}

// GrandTotal combines each author's final cumulative round score with
// their ranking score, sorted by descending total. An author with a high
// prediction score and no ranking at all is flagged: likely a parsing
// miss worth reviewing.
func (e *Engine) GrandTotal(ctx context.Context, entries []model.RoundEntry, rankingScores map[string]int) []model.TotalEntry {
	final := make(map[string]int)
	for _, en := range entries {
		// Entries arrive in round order; the last one per author is final.
		final[en.Author] = en.Cumulative
	}
	// Authors who only submitted a ranking still make the board.
	for author := range rankingScores {
		if _, ok := final[author]; !ok {
			final[author] = 0
		}
	}

	totals := make([]model.TotalEntry, 0, len(final))
	for author, cum := range final {
		rs, hasRanking := rankingScores[author]
		if !hasRanking && cum > e.plausibleCap {
			e.log.Warn(ctx, "high score but no ranking submitted",
				logger.String("author", author),
				logger.Int("score", cum))
		}
		totals = append(totals, model.TotalEntry{
			Author:       author,
			RankingScore: rs,
			Total:        cum + rs,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Author < totals[j].Author
	})
	return totals
}
