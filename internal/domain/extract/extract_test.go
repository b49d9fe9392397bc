package extract_test

import (
	"context"
	"testing"

	"github.com/chesspool/schedina/internal/domain/extract"
	"github.com/chesspool/schedina/internal/domain/lineparse"
	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/internal/domain/participant"
	"github.com/chesspool/schedina/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func newExtractor(opts ...extract.Option) *extract.Extractor {
	matcher := participant.NewMatcher([]model.Participant{
		{Name: "Alice Smith"},
		{Name: "Bob Jones"},
		{Name: "Carol White"},
		{Name: "Dan Green"},
		{Name: "Eve Black"},
		{Name: "Frank Rossi"},
	})
	return extract.New(lineparse.NewParser(matcher), opts...)
}

func TestExtractPredictions(t *testing.T) {
	ctx := context.Background()

	Convey("Given an extractor", t, func() {
		e := newExtractor(extract.WithGamesPerRound(2))

		Convey("When a post declares a round and two games", func() {
			post := model.Post{ID: "p1", Author: "tifoso1", Text: "Turno 1\nSmith - Jones 1-0\nWhite - Green x\n"}
			preds, ranking := e.Extract(ctx, post)

			Convey("Then both predictions carry the round and the author", func() {
				So(preds, ShouldHaveLength, 2)
				So(ranking, ShouldBeNil)
				So(preds[0], ShouldResemble, model.Prediction{
					Author: "tifoso1", First: "Alice Smith", Second: "Bob Jones",
					Outcome: model.FirstWins, Round: 1,
				})
				So(preds[1].First, ShouldEqual, "Carol White")
				So(preds[1].Second, ShouldEqual, "Dan Green")
				So(preds[1].Outcome, ShouldEqual, model.Draw)
				So(preds[1].Round, ShouldEqual, 1)
			})
		})

		Convey("When the round changes mid-post", func() {
			post := model.Post{ID: "p2", Author: "tifoso2", Text: "Turno 1\nSmith - Jones 1-0\nsecondo turno\nJones - Smith 0-1\n"}
			preds, _ := e.Extract(ctx, post)

			So(preds, ShouldHaveLength, 2)
			So(preds[0].Round, ShouldEqual, 1)
			So(preds[1].Round, ShouldEqual, 2)
		})

		Convey("When no round is ever declared", func() {
			post := model.Post{ID: "p3", Author: "tifoso3", Text: "Smith - Jones 1-0\nWhite - Green 0-1\n"}
			preds, _ := e.Extract(ctx, post)

			So(preds, ShouldHaveLength, 2)
			So(preds[0].Round, ShouldEqual, 0)
		})

		Convey("When a line has a missing outcome it contributes nothing", func() {
			post := model.Post{ID: "p4", Author: "tifoso4", Text: "Turno 1\nAlice batte Bob\nWhite - Green 1-0\n"}
			preds, _ := e.Extract(ctx, post)

			So(preds, ShouldHaveLength, 1)
			So(preds[0].First, ShouldEqual, "Carol White")
		})
	})
}

func TestExtractRankings(t *testing.T) {
	ctx := context.Background()

	Convey("Given an extractor expecting rankings of five", t, func() {
		e := newExtractor(extract.WithRankingLength(5))

		Convey("When a post lists exactly five names", func() {
			post := model.Post{ID: "r1", Author: "tifoso1",
				Text: "la mia classifica:\n1. Smith\n2. Jones\n3. White\n4. Green\n5. Black\n"}
			preds, ranking := e.Extract(ctx, post)

			So(preds, ShouldBeEmpty)
			So(ranking, ShouldNotBeNil)
			So(ranking.Author, ShouldEqual, "tifoso1")
			So(ranking.Names, ShouldResemble, []string{
				"Alice Smith", "Bob Jones", "Carol White", "Dan Green", "Eve Black",
			})
		})

		Convey("When a post lists only four names", func() {
			post := model.Post{ID: "r2", Author: "tifoso2",
				Text: "1. Smith\n2. Jones\n3. White\n4. Green\n"}
			_, ranking := e.Extract(ctx, post)

			So(ranking, ShouldBeNil)
		})

		Convey("When a post has nothing at all", func() {
			post := model.Post{ID: "r3", Author: "tifoso3", Text: "buongiorno a tutti\n"}
			preds, ranking := e.Extract(ctx, post)

			So(preds, ShouldBeEmpty)
			So(ranking, ShouldBeNil)
		})
	})
}
