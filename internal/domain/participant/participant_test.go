package participant_test

import (
	"testing"

	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/internal/domain/participant"
	. "github.com/smartystreets/goconvey/convey"
)

func roster() []model.Participant {
	return []model.Participant{
		{Name: "Alice Smith", Nicknames: []string{"Ally"}},
		{Name: "Bob Jones"},
		{Name: "Al Brandt"},
		{Name: "Albert Verdi"},
	}
}

func TestMatcherFindAll(t *testing.T) {
	Convey("Given a strict matcher over the roster", t, func() {
		m := participant.NewMatcher(roster())

		Convey("When a full canonical name appears", func() {
			found := m.FindAll("vince Alice Smith senza dubbio")
			So(found, ShouldHaveLength, 1)
			So(found[0].Name, ShouldEqual, "Alice Smith")
			So(found[0].Offset, ShouldEqual, 6)
		})

		Convey("When only a family name appears", func() {
			found := m.FindAll("Smith batte tutti")
			So(found, ShouldHaveLength, 1)
			So(found[0].Name, ShouldEqual, "Alice Smith")
			So(found[0].Offset, ShouldEqual, 0)
		})

		Convey("When a nickname appears", func() {
			found := m.FindAll("forza Ally!")
			So(found, ShouldHaveLength, 1)
			So(found[0].Name, ShouldEqual, "Alice Smith")
		})

		Convey("When two participants appear, order follows offsets", func() {
			found := m.FindAll("Jones - Smith 0-1")
			So(found, ShouldHaveLength, 2)
			So(found[0].Name, ShouldEqual, "Bob Jones")
			So(found[1].Name, ShouldEqual, "Alice Smith")
			So(found[0].Offset, ShouldBeLessThan, found[1].Offset)
		})

		Convey("When a token is a prefix of another word", func() {
			// "Al" must not match inside "Albert".
			found := m.FindAll("Albert Verdi gioca bene")
			So(found, ShouldHaveLength, 1)
			So(found[0].Name, ShouldEqual, "Albert Verdi")
		})

		Convey("When several tokens of one participant match", func() {
			found := m.FindAll("Alice Smith, proprio Alice")
			So(found, ShouldHaveLength, 1)
		})

		Convey("When nobody appears", func() {
			So(m.FindAll("che bella giornata"), ShouldBeEmpty)
		})
	})

	Convey("Given a bare-substring matcher", t, func() {
		m := participant.NewMatcher(roster(), participant.WithWordBoundaries(false))

		Convey("Then partial-word hits come back too", func() {
			found := m.FindAll("Albert Verdi gioca bene")
			names := make(map[string]bool)
			for _, f := range found {
				names[f.Name] = true
			}
			So(names["Albert Verdi"], ShouldBeTrue)
			So(names["Al Brandt"], ShouldBeTrue)
		})
	})
}

func TestMatcherIsToken(t *testing.T) {
	Convey("Given a matcher over the roster", t, func() {
		m := participant.NewMatcher(roster())

		Convey("Then name tokens, nicknames and the full name are recognized", func() {
			So(m.IsToken("Alice Smith", "Smith"), ShouldBeTrue)
			So(m.IsToken("Alice Smith", "Alice"), ShouldBeTrue)
			So(m.IsToken("Alice Smith", "Ally"), ShouldBeTrue)
			So(m.IsToken("Alice Smith", "Alice Smith"), ShouldBeTrue)
		})

		Convey("And unrelated words are not", func() {
			So(m.IsToken("Alice Smith", "Jones"), ShouldBeFalse)
			So(m.IsToken("Bob Jones", "Smith"), ShouldBeFalse)
		})
	})
}
