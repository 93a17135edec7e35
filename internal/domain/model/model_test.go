package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/okian/arena/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func decode(v any) map[string]any {
	b, err := json.Marshal(v)
	convey.So(err, convey.ShouldBeNil)
	var out map[string]any
	convey.So(json.Unmarshal(b, &out), convey.ShouldBeNil)
	return out
}

func TestTable(t *testing.T) {
	convey.Convey("Given a table with a messy header", t, func() {
		table := model.Table{
			Header: []string{"employee_name", "weekly_score"},
			Rows:   []model.Row{{"employee_name": "Ana"}},
		}

		convey.Convey("Then column lookups should normalize the name", func() {
			convey.So(table.HasColumn(" Weekly_Score "), convey.ShouldBeTrue)
			convey.So(table.HasColumn("timestamp"), convey.ShouldBeFalse)
			convey.So(table.Len(), convey.ShouldEqual, 1)
		})

		convey.Convey("Then missing cells should read as empty", func() {
			convey.So(table.Rows[0].Get("weekly_score"), convey.ShouldEqual, "")
			var nilRow model.Row
			convey.So(nilRow.Get("anything"), convey.ShouldEqual, "")
		})

		convey.Convey("Then header keys should drop a byte order mark", func() {
			convey.So(model.HeaderKey("\ufeffEmployee_Name"), convey.ShouldEqual, "employee_name")
		})
	})
}

func TestEntryJSON(t *testing.T) {
	convey.Convey("Given a pre-aggregated entry", t, func() {
		e := model.Entry{
			Rank: 1,
			Mode: model.ModePreAggregated,
			Player: model.Player{
				Name:              "Ana",
				WeeklyScore:       50,
				Pages:             10,
				BooksFinishedWeek: 1,
			},
		}

		convey.Convey("When it is marshaled", func() {
			out := decode(e)

			convey.Convey("Then it should carry the sheet fields", func() {
				convey.So(out["rank"], convey.ShouldEqual, 1.0)
				convey.So(out["name"], convey.ShouldEqual, "Ana")
				convey.So(out["weeklyScore"], convey.ShouldEqual, 50.0)
				convey.So(out["booksFinishedWeek"], convey.ShouldEqual, 1.0)
				convey.So(out["sheetRank"], convey.ShouldBeNil)
				convey.So(out["avatarUrl"], convey.ShouldBeNil)
				_, hasStatus := out["status"]
				convey.So(hasStatus, convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a computed entry", t, func() {
		at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
		e := model.Entry{
			Rank:      2,
			Mode:      model.ModeComputed,
			AvatarURL: "/avatars/CIKA.jpeg",
			Player: model.Player{
				Name:        "Cika",
				WeeklyScore: 90,
				Status:      "FINISHED",
				BookTitle:   "Dune",
				SubmittedAt: at,
			},
		}

		convey.Convey("When it is marshaled", func() {
			out := decode(e)

			convey.Convey("Then it should carry the progress fields", func() {
				convey.So(out["status"], convey.ShouldEqual, "FINISHED")
				convey.So(out["bookTitle"], convey.ShouldEqual, "Dune")
				convey.So(out["submittedAt"], convey.ShouldEqual, "2026-10-19T08:30:00Z")
				convey.So(out["avatarUrl"], convey.ShouldEqual, "/avatars/CIKA.jpeg")
				_, hasBooks := out["booksFinishedWeek"]
				convey.So(hasBooks, convey.ShouldBeFalse)
			})
		})
	})
}

func TestNotableJSON(t *testing.T) {
	convey.Convey("Given notable values", t, func() {
		convey.Convey("When the pre-aggregated list is empty", func() {
			b, err := json.Marshal(model.Notable{Mode: model.ModePreAggregated})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "[]")
		})

		convey.Convey("When the pre-aggregated list has names", func() {
			b, err := json.Marshal(model.Notable{Mode: model.ModePreAggregated, Finishers: []string{"Ana", "Budi"}})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `["Ana","Budi"]`)
		})

		convey.Convey("When the computed shape has no finisher", func() {
			b, err := json.Marshal(model.Notable{Mode: model.ModeComputed})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "null")
		})

		convey.Convey("When the computed shape has a finisher", func() {
			n := model.Notable{Mode: model.ModeComputed, Latest: &model.Finish{Name: "Cika", Detail: "Dune"}}
			b, err := json.Marshal(n)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldContainSubstring, `"name":"Cika"`)
			convey.So(string(b), convey.ShouldContainSubstring, `"detail":"Dune"`)
		})
	})
}

func TestModeString(t *testing.T) {
	convey.Convey("Given scoring modes", t, func() {
		convey.So(model.ModePreAggregated.String(), convey.ShouldEqual, "preAggregated")
		convey.So(model.ModeComputed.String(), convey.ShouldEqual, "computed")
		convey.So(model.Mode(9).String(), convey.ShouldEqual, "unknown")

		b, err := json.Marshal(model.Result{Mode: model.ModeComputed})
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(b), convey.ShouldContainSubstring, `"mode":"computed"`)
	})
}
