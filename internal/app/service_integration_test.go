package service_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/adapters/sheets"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

const progressCSV = `timestamp,week,employee_name,pages_read,status,book_title
2026-10-19 08:00:00,2026-W42,Cika,20,READING,Dune
2026-10-19 09:00:00,2026-W42,Cika,45,FINISHED,Dune
2026-10-18 10:00:00,2026-W42,Budi,30,READING,
2026-10-12 10:00:00,2026-W41,Ana,80,READING,Laskar Pelangi
`

const rosterCSV = `employee_name,active
Ana,TRUE
Budi,TRUE
Cika,iya
Dewi,FALSE
`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service reading exports over HTTP", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/activity.csv", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(progressCSV))
		})
		mux.HandleFunc("/roster.csv", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(rosterCSV))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc := service.New(
			service.WithSources(sheets.NewFetcher(sheets.WithTimeout(2*time.Second))),
			service.WithSourceURLs(srv.URL+"/activity.csv", srv.URL+"/roster.csv"),
			service.WithScoring(50, 10, "FINISHED"),
			service.WithLanguage(language.Indonesian),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When computing the latest week", func() {
			res, err := svc.Arena(ctx, "")

			Convey("Then the computed shape should be scored end-to-end", func() {
				So(err, ShouldBeNil)
				So(res.Mode, ShouldEqual, model.ModeComputed)
				So(res.Period, ShouldEqual, "2026-W42")
				So(res.Leaderboard, ShouldHaveLength, 2)
				So(res.Leaderboard[0].Name, ShouldEqual, "Cika")
				So(res.Leaderboard[0].WeeklyScore, ShouldEqual, 105)
				So(res.Leaderboard[1].WeeklyScore, ShouldEqual, 40)
				So(res.Missed, ShouldResemble, []string{"Ana"})
				So(res.Totals, ShouldResemble, model.Totals{TotalRoster: 3, Submitted: 2, Missed: 1})
				So(res.Notable.Latest, ShouldNotBeNil)
				So(res.Notable.Latest.Detail, ShouldEqual, "Dune")
			})
		})

		Convey("When computing an explicit week", func() {
			res, err := svc.Arena(ctx, "2026-W41")

			Convey("Then only that week should count", func() {
				So(err, ShouldBeNil)
				So(res.Leaderboard, ShouldHaveLength, 1)
				So(res.Leaderboard[0].Name, ShouldEqual, "Ana")
				So(res.Missed, ShouldResemble, []string{"Budi", "Cika"})
				So(res.Notable.Latest, ShouldBeNil)
			})
		})
	})
}

func TestServiceDefaultFetcherLogs(t *testing.T) {
	Convey("Given a service built without explicit sources", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		defer func() { _ = logger.Init() }()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := service.New(service.WithSourceURLs(srv.URL+"/activity.csv", srv.URL+"/roster.csv"))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a fetch fails", func() {
			_, err := svc.Arena(ctx, "")

			Convey("Then the failure should reach the service logger", func() {
				So(err, ShouldNotBeNil)
				So(buf.String(), ShouldContainSubstring, "source fetch failed")
				So(buf.String(), ShouldContainSubstring, "status 503")
			})
		})
	})
}
