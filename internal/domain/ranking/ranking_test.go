package ranking_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func names(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given scored players", t, func() {
		Convey("When scores differ", func() {
			entries := ranking.Rank([]model.Player{
				{Name: "Ana", WeeklyScore: 10},
				{Name: "Budi", WeeklyScore: 30},
				{Name: "Cika", WeeklyScore: 20},
			}, model.ModePreAggregated)

			Convey("Then the highest score should rank first", func() {
				So(names(entries), ShouldResemble, []string{"Budi", "Cika", "Ana"})
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[2].Rank, ShouldEqual, 3)
				So(entries[0].Mode, ShouldEqual, model.ModePreAggregated)
			})
		})

		Convey("When scores tie and one player finished a book", func() {
			entries := ranking.Rank([]model.Player{
				{Name: "Ana", WeeklyScore: 100, BooksFinishedWeek: 0, Pages: 90},
				{Name: "Budi", WeeklyScore: 100, BooksFinishedWeek: 1, Pages: 10},
			}, model.ModePreAggregated)

			Convey("Then the finisher should rank first", func() {
				So(names(entries), ShouldResemble, []string{"Budi", "Ana"})
			})
		})

		Convey("When books finished are ignored in computed mode", func() {
			entries := ranking.Rank([]model.Player{
				{Name: "Ana", WeeklyScore: 100, BooksFinishedWeek: 0, Pages: 90},
				{Name: "Budi", WeeklyScore: 100, BooksFinishedWeek: 1, Pages: 10},
			}, model.ModeComputed)

			Convey("Then pages should break the tie", func() {
				So(names(entries), ShouldResemble, []string{"Ana", "Budi"})
				So(entries[0].Mode, ShouldEqual, model.ModeComputed)
			})
		})

		Convey("When score, books and pages all tie", func() {
			entries := ranking.Rank([]model.Player{
				{Name: "budi", WeeklyScore: 5},
				{Name: "Cika", WeeklyScore: 5},
				{Name: "Ana", WeeklyScore: 5},
			}, model.ModePreAggregated)

			Convey("Then names should sort with a locale-aware collation", func() {
				So(names(entries), ShouldResemble, []string{"Ana", "budi", "Cika"})
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When the input is empty", func() {
			So(ranking.Rank(nil, model.ModePreAggregated), ShouldBeEmpty)
		})

		Convey("When ranking, the input should not be reordered", func() {
			in := []model.Player{{Name: "Ana", WeeklyScore: 1}, {Name: "Budi", WeeklyScore: 2}}
			ranking.Rank(in, model.ModePreAggregated)
			So(in[0].Name, ShouldEqual, "Ana")
		})
	})
}

func TestNameOrder(t *testing.T) {
	Convey("Given a name order", t, func() {
		order := ranking.NewNameOrder(ranking.WithLanguage(language.Indonesian))

		Convey("Then identical names should compare equal", func() {
			So(order.Compare("Ana", "Ana"), ShouldEqual, 0)
		})

		Convey("Then names differing only by case should still be ordered", func() {
			So(order.Compare("ana", "Ana"), ShouldNotEqual, 0)
			So(order.Compare("ana", "Ana"), ShouldEqual, -order.Compare("Ana", "ana"))
		})

		Convey("Then sorting should ignore case at the primary level", func() {
			list := []string{"dewi", "Budi", "ana", "Cika"}
			order.Sort(list)
			So(list, ShouldResemble, []string{"ana", "Budi", "Cika", "dewi"})
		})
	})
}

func TestRankIsStrictTotalOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genPlayers := gen.SliceOf(gen.Struct(reflect.TypeOf(model.Player{}), map[string]gopter.Gen{
		"WeeklyScore":       gen.IntRange(0, 5),
		"BooksFinishedWeek": gen.IntRange(0, 2),
		"Pages":             gen.IntRange(0, 3),
	}))

	properties.Property("ranks are dense, distinct and follow the comparator", prop.ForAll(
		func(players []model.Player) bool {
			for i := range players {
				players[i].Name = fmt.Sprintf("p%03d", i)
			}
			entries := ranking.Rank(players, model.ModePreAggregated)
			if len(entries) != len(players) {
				return false
			}
			cmp := ranking.NewComparator(model.ModePreAggregated)
			for i, e := range entries {
				if e.Rank != i+1 {
					return false
				}
				if i > 0 && !cmp.Less(entries[i-1].Player, e.Player) {
					return false
				}
			}
			return true
		},
		genPlayers,
	))

	properties.Property("ranking is deterministic regardless of input order", prop.ForAll(
		func(players []model.Player) bool {
			for i := range players {
				players[i].Name = fmt.Sprintf("p%03d", i)
			}
			reversed := make([]model.Player, len(players))
			for i, p := range players {
				reversed[len(players)-1-i] = p
			}
			a := names(ranking.Rank(players, model.ModePreAggregated))
			b := names(ranking.Rank(reversed, model.ModePreAggregated))
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		genPlayers,
	))

	properties.TestingRun(t)
}
