package arenacheck_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/arena/internal/adapters/http/api"
	"github.com/okian/arena/internal/adapters/sheets"
	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/arenacheck"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func records(t *testing.T, b []byte) [][]string {
	t.Helper()
	out, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestGenerate(t *testing.T) {
	Convey("Given a fixture config", t, func() {
		Convey("When generating a pre-aggregated sheet", func() {
			f, err := arenacheck.Generate(arenacheck.FixtureConfig{
				Mode: model.ModePreAggregated, Players: 10, Inactive: 2, MissedRatio: 0.3,
			})
			So(err, ShouldBeNil)

			Convey("Then the expectation should follow the ratio", func() {
				So(f.Expect.Roster, ShouldEqual, 10)
				So(f.Expect.Submitted, ShouldEqual, 7)
				So(len(f.Expect.Missed), ShouldEqual, 3)
			})

			Convey("Then the roster should list active and inactive members", func() {
				rows := records(t, f.Roster)
				So(rows[0], ShouldResemble, []string{"employee_name", "active"})
				So(len(rows), ShouldEqual, 1+12)
			})

			Convey("Then the activity sheet should carry weekly_score", func() {
				rows := records(t, f.Activity)
				So(rows[0], ShouldContain, "weekly_score")
			})
		})

		Convey("When generating a computed sheet", func() {
			f, err := arenacheck.Generate(arenacheck.FixtureConfig{
				Mode: model.ModeComputed, Players: 4, MissedRatio: 0.5, Period: "2026-W42",
			})
			So(err, ShouldBeNil)

			Convey("Then rows should carry the requested period", func() {
				rows := records(t, f.Activity)
				So(rows[0], ShouldContain, "pages_read")
				So(len(rows), ShouldBeGreaterThan, 2)
				So(f.Expect.Mode, ShouldEqual, model.ModeComputed)
			})
		})

		Convey("When the config is unusable", func() {
			for _, cfg := range []arenacheck.FixtureConfig{
				{Players: 0},
				{Players: 3, MissedRatio: 1.5},
				{Players: 3, Inactive: -1},
				{Players: 3, Mode: model.Mode(7)},
			} {
				_, err := arenacheck.Generate(cfg)
				So(errors.Is(err, arenacheck.ErrInvalidConfig), ShouldBeTrue)
			}
		})
	})

	Convey("Given a date", t, func() {
		So(arenacheck.CurrentPeriod(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2026-W43")
		So(arenacheck.CurrentPeriod(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)), ShouldEqual, "2026-W02")
	})
}

func TestVerify(t *testing.T) {
	Convey("Given served results", t, func() {
		good := arenacheck.Result{Mode: "preAggregated"}
		good.Leaderboard = []arenacheck.Entry{
			{Rank: 1, Name: "Ana", WeeklyScore: 90},
			{Rank: 2, Name: "Budi", WeeklyScore: 90},
			{Rank: 3, Name: "Cika", WeeklyScore: 10},
		}
		good.Missed = []string{"dewi", "Eko"}
		good.Totals.TotalRoster = 5
		good.Totals.Submitted = 3
		good.Totals.Missed = 2

		Convey("When every rule holds", func() {
			So(arenacheck.Verify(good, nil), ShouldBeNil)
		})

		Convey("When ranks have a gap", func() {
			bad := good
			bad.Leaderboard = append([]arenacheck.Entry(nil), good.Leaderboard...)
			bad.Leaderboard[2].Rank = 4
			So(errors.Is(arenacheck.Verify(bad, nil), arenacheck.ErrInvariant), ShouldBeTrue)
		})

		Convey("When scores increase down the board", func() {
			bad := good
			bad.Leaderboard = append([]arenacheck.Entry(nil), good.Leaderboard...)
			bad.Leaderboard[2].WeeklyScore = 100
			So(arenacheck.Verify(bad, nil), ShouldNotBeNil)
		})

		Convey("When a ranked name is also missed", func() {
			bad := good
			bad.Missed = []string{"Ana", "dewi"}
			So(arenacheck.Verify(bad, nil), ShouldNotBeNil)
		})

		Convey("When the missed list is unsorted", func() {
			bad := good
			bad.Missed = []string{"Eko", "dewi"}
			So(arenacheck.Verify(bad, nil), ShouldNotBeNil)
		})

		Convey("When totals disagree with the lists", func() {
			bad := good
			bad.Totals.Submitted = 4
			So(arenacheck.Verify(bad, nil), ShouldNotBeNil)
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given a fixture expectation", t, func() {
		want := arenacheck.Expectation{Mode: model.ModeComputed, Roster: 3, Submitted: 2, Missed: []string{"Cika"}}
		res := arenacheck.Result{Mode: "computed", Missed: []string{"Cika"}}
		res.Totals.TotalRoster = 3
		res.Totals.Submitted = 2
		res.Totals.Missed = 1

		So(arenacheck.Compare(res, want), ShouldBeNil)

		res.Missed = []string{"Budi"}
		So(arenacheck.Compare(res, want), ShouldNotBeNil)
	})
}

func TestFixtureRoundTrip(t *testing.T) {
	for _, mode := range []model.Mode{model.ModePreAggregated, model.ModeComputed} {
		mode := mode
		Convey("Given a running service reading generated "+mode.String()+" fixtures", t, func() {
			f, err := arenacheck.Generate(arenacheck.FixtureConfig{
				Mode: mode, Players: 25, Inactive: 3, MissedRatio: 0.2,
			})
			So(err, ShouldBeNil)

			sheetsSrv := httptest.NewServer(arenacheck.Handler(f))
			defer sheetsSrv.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			svc := service.New(
				service.WithLogger(logger.Nop()),
				service.WithSources(sheets.NewFetcher(sheets.WithTimeout(2*time.Second))),
				service.WithSourceURLs(sheetsSrv.URL+arenacheck.ActivityPath, sheetsSrv.URL+arenacheck.RosterPath),
			)
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			api.NewServer(svc, svc, api.WithLogger(logger.Nop())).Register(ctx, mux)
			arenaSrv := httptest.NewServer(mux)
			defer arenaSrv.Close()

			Convey("Then verification should pass against the expectation", func() {
				err := arenacheck.RunVerify(ctx, arenacheck.VerifyConfig{
					BaseURL: arenaSrv.URL,
					Timeout: 5 * time.Second,
					Expect:  &f.Expect,
				})
				So(err, ShouldBeNil)
			})
		})
	}
}

func TestFetchArenaErrors(t *testing.T) {
	Convey("Given a service that fails", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"code":"upstream_error"}`, http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := arenacheck.FetchArena(context.Background(), arenacheck.VerifyConfig{BaseURL: srv.URL, Week: "2026-W42"})
		So(errors.Is(err, arenacheck.ErrRequest), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "502")
	})
}

func TestServe(t *testing.T) {
	Convey("Given a fixture server", t, func() {
		f, err := arenacheck.Generate(arenacheck.FixtureConfig{Players: 2})
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		addrCh := make(chan net.Addr, 1)
		done := make(chan error, 1)
		go func() {
			done <- arenacheck.Serve(ctx, "127.0.0.1:0", f, func(a net.Addr) { addrCh <- a })
		}()

		addr := <-addrCh
		resp, err := http.Get("http://" + addr.String() + arenacheck.RosterPath)
		So(err, ShouldBeNil)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)
		So(body, ShouldResemble, f.Roster)

		cancel()
		So(<-done, ShouldBeNil)
	})
}
