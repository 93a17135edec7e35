package sheets_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/arena/internal/adapters/sheets"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a CSV export", t, func() {
		Convey("When the header is messy and rows are ragged", func() {
			payload := "\ufeffEmployee_Name , Weekly_Score,submitted\n" +
				"Ana,50,TRUE\n" +
				"\n" +
				" , , \n" +
				"Budi,30\n" +
				"\"Cika, S.\",\"10\",TRUE,extra\n"

			table, err := sheets.Parse(strings.NewReader(payload))

			Convey("Then header keys should be normalized and rows kept", func() {
				So(err, ShouldBeNil)
				So(table.Header, ShouldResemble, []string{"employee_name", "weekly_score", "submitted"})
				So(table.Len(), ShouldEqual, 3)
				So(table.Rows[0].Get("weekly_score"), ShouldEqual, "50")
				So(table.Rows[1].Get("submitted"), ShouldEqual, "")
				So(table.Rows[2].Get("employee_name"), ShouldEqual, "Cika, S.")
			})
		})

		Convey("When the payload is empty", func() {
			table, err := sheets.Parse(strings.NewReader(""))

			Convey("Then it should yield an empty table", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 0)
				So(table.Rows, ShouldNotBeNil)
			})
		})

		Convey("When a quote is stray", func() {
			table, err := sheets.Parse(strings.NewReader("employee_name,book_title\nAna,The \"Best\" Book\n"))

			Convey("Then it should be read leniently", func() {
				So(err, ShouldBeNil)
				So(table.Rows[0].Get("book_title"), ShouldEqual, `The "Best" Book`)
			})
		})
	})
}

func csvServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Cache-Control") != "no-cache" {
				http.Error(w, "cache header missing", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(body))
		})
	}
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher(t *testing.T) {
	Convey("Given a server publishing both exports", t, func() {
		srv := csvServer(t, map[string]string{
			"/activity.csv": "employee_name,submitted,weekly_score\nAna,TRUE,50\n",
			"/roster.csv":   "employee_name,active\nAna,TRUE\nBudi,TRUE\n",
		})
		f := sheets.NewFetcher(sheets.WithTimeout(500 * time.Millisecond))
		ctx := context.Background()

		Convey("When fetching both", func() {
			activity, roster, err := f.FetchBoth(ctx, srv.URL+"/activity.csv", srv.URL+"/roster.csv")

			Convey("Then both tables should be parsed", func() {
				So(err, ShouldBeNil)
				So(activity.Len(), ShouldEqual, 1)
				So(roster.Len(), ShouldEqual, 2)
				So(activity.HasColumn("weekly_score"), ShouldBeTrue)
			})
		})

		Convey("When one source is not configured", func() {
			_, _, err := f.FetchBoth(ctx, srv.URL+"/activity.csv", " ")

			Convey("Then a configuration error should name it", func() {
				So(errors.Is(err, sheets.ErrNotConfigured), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, sheets.SourceRoster)
			})
		})

		Convey("When one source fails", func() {
			_, _, err := f.FetchBoth(ctx, srv.URL+"/activity.csv", srv.URL+"/broken")

			Convey("Then the whole fetch should fail", func() {
				So(errors.Is(err, sheets.ErrFetch), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "status 500")
			})
		})

		Convey("When a source is too slow", func() {
			_, err := f.Fetch(ctx, sheets.SourceActivity, srv.URL+"/slow")

			Convey("Then the timeout should surface as a fetch error", func() {
				So(errors.Is(err, sheets.ErrFetch), ShouldBeTrue)
			})
		})

		Convey("When a payload is larger than the byte cap", func() {
			body := "employee_name,submitted,weekly_score\nAna,TRUE,50\n"
			capped := sheets.NewFetcher(sheets.WithMaxBytes(int64(len(body) - 3)))
			_, err := capped.Fetch(ctx, sheets.SourceActivity, srv.URL+"/activity.csv")

			Convey("Then the fetch should fail instead of parsing a cut row", func() {
				So(errors.Is(err, sheets.ErrFetch), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "payload exceeds")
			})
		})

		Convey("When a payload is exactly the byte cap", func() {
			body := "employee_name,submitted,weekly_score\nAna,TRUE,50\n"
			capped := sheets.NewFetcher(sheets.WithMaxBytes(int64(len(body))))
			table, err := capped.Fetch(ctx, sheets.SourceActivity, srv.URL+"/activity.csv")

			Convey("Then it should still parse", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the host is unreachable", func() {
			_, err := f.Fetch(ctx, sheets.SourceRoster, "http://127.0.0.1:1/roster.csv")

			Convey("Then it should be a fetch error", func() {
				So(errors.Is(err, sheets.ErrFetch), ShouldBeTrue)
			})
		})
	})
}
