// Package site serves the browser views of the leaderboard.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// ErrRender reports a broken embedded page template.
var ErrRender = errors.New("site render failed")

const defaultPollInterval = 15 * time.Second

// Option configures the views.
type Option func(*settings)

type settings struct {
	pollInterval time.Duration
	title        string
}

// WithPollInterval sets how often the views refresh.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithTitle sets the heading shown on both views.
func WithTitle(title string) Option {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
	}
}

type pageData struct {
	Title          string
	PollIntervalMS int64
}

// Register attaches the compact view at /, the TV view at /tv and their
// assets under /static/.
func Register(_ context.Context, mux *http.ServeMux, opts ...Option) error {
	if mux == nil {
		panic("mux is nil")
	}
	s := settings{pollInterval: defaultPollInterval, title: "BOOK ARENA"}
	for _, opt := range opts {
		opt(&s)
	}
	data := pageData{Title: s.title, PollIntervalMS: s.pollInterval.Milliseconds()}

	compact, err := render("index.html", data)
	if err != nil {
		return err
	}
	tv, err := render("tv.html", data)
	if err != nil {
		return err
	}

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/tv", page(tv))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page(compact)(w, r)
	})
	return nil
}

func render(name string, data pageData) ([]byte, error) {
	tmpl, err := template.ParseFS(assets(), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return buf.Bytes(), nil
}

func page(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	}
}
