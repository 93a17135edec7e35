package arenacheck

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/arena/internal/domain/model"
)

// Ranges for generated progress values.
const (
	maxPages          = 250
	maxBooksFinished  = 2
	maxRowsPerReader  = 3
	finishBonusPoints = 50
	nameSuffixLen     = 8
	timestampLayout   = "2006-01-02 15:04:05"
	statusReading     = "READING"
	statusFinished    = "FINISHED"
)

var bookTitles = []string{"Laskar Pelangi", "Bumi Manusia", "Dune", "Cantik Itu Luka", "Ronggeng Dukuh Paruk"}

// Fixture is a generated pair of sheet exports and the leaderboard facts a
// correct service must derive from them.
type Fixture struct {
	Activity []byte
	Roster   []byte
	Expect   Expectation
}

// randomInt returns a value in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// CurrentPeriod returns the ISO week id for t, e.g. 2026-W42.
func CurrentPeriod(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (c FixtureConfig) validate() error {
	switch {
	case c.Players <= 0:
		return fmt.Errorf("%w: players must be positive", ErrInvalidConfig)
	case c.Inactive < 0:
		return fmt.Errorf("%w: inactive must not be negative", ErrInvalidConfig)
	case c.MissedRatio < 0 || c.MissedRatio > 1:
		return fmt.Errorf("%w: missed ratio must be within [0,1]", ErrInvalidConfig)
	case c.Mode != model.ModePreAggregated && c.Mode != model.ModeComputed:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// Generate builds a roster of unique readers and an activity sheet in the
// configured shape.
func Generate(cfg FixtureConfig) (Fixture, error) {
	if err := cfg.validate(); err != nil {
		return Fixture{}, err
	}
	now := time.Now().UTC()
	if cfg.Period == "" {
		cfg.Period = CurrentPeriod(now)
	}

	active := make([]string, cfg.Players)
	for i := range active {
		active[i] = readerName()
	}
	inactive := make([]string, cfg.Inactive)
	for i := range inactive {
		inactive[i] = readerName()
	}

	missedCount := int(math.Round(float64(cfg.Players) * cfg.MissedRatio))
	submitters := active[:cfg.Players-missedCount]
	missed := active[cfg.Players-missedCount:]

	roster, err := writeCSV([]string{model.ColEmployeeName, model.ColActive}, func(add func(...string)) {
		for _, name := range active {
			add(name, "TRUE")
		}
		for _, name := range inactive {
			add(name, "FALSE")
		}
	})
	if err != nil {
		return Fixture{}, err
	}

	var activity []byte
	if cfg.Mode == model.ModeComputed {
		activity, err = progressSheet(cfg.Period, now, submitters, missed)
	} else {
		activity, err = weeklySheet(submitters, missed)
	}
	if err != nil {
		return Fixture{}, err
	}

	expectMissed := make([]string, len(missed))
	copy(expectMissed, missed)

	return Fixture{
		Activity: activity,
		Roster:   roster,
		Expect: Expectation{
			Mode:      cfg.Mode,
			Roster:    len(active),
			Submitted: len(submitters),
			Missed:    expectMissed,
		},
	}, nil
}

func readerName() string {
	return "Reader " + uuid.NewString()[:nameSuffixLen]
}

// weeklySheet writes the pre-aggregated shape. Half of the missed readers
// appear with submitted=FALSE, the rest are absent.
func weeklySheet(submitters, missed []string) ([]byte, error) {
	header := []string{
		model.ColEmployeeName, model.ColSubmitted, model.ColPagesAdded,
		model.ColBooksFinishedWeek, model.ColFinishedTotal, model.ColWeeklyScore,
	}
	return writeCSV(header, func(add func(...string)) {
		for _, name := range submitters {
			pages := randomInt(maxPages + 1)
			books := randomInt(maxBooksFinished + 1)
			add(name, "TRUE", strconv.Itoa(pages), strconv.Itoa(books),
				strconv.Itoa(books+randomInt(10)), strconv.Itoa(pages+books*finishBonusPoints))
		}
		for i, name := range missed {
			if i%2 == 0 {
				add(name, "FALSE", "0", "0", "0", "0")
			}
		}
	})
}

// progressSheet writes the per-submission shape. Submitters get one to
// three rows in period; missed readers only appear in the week before.
func progressSheet(period string, now time.Time, submitters, missed []string) ([]byte, error) {
	header := []string{
		model.ColTimestamp, model.ColWeek, model.ColEmployeeName,
		model.ColPagesRead, model.ColStatus, model.ColBookTitle,
	}
	// Older rows only stay out of the leaderboard while a later period exists.
	previous := CurrentPeriod(now.AddDate(0, 0, -7))
	writePrevious := previous < period && len(submitters) > 0
	return writeCSV(header, func(add func(...string)) {
		for _, name := range submitters {
			title := bookTitles[randomInt(len(bookTitles))]
			rows := 1 + randomInt(maxRowsPerReader)
			for r := 0; r < rows; r++ {
				status := statusReading
				if r == rows-1 && randomInt(3) == 0 {
					status = statusFinished
				}
				at := now.Add(-time.Duration(rows-r) * time.Hour)
				add(at.Format(timestampLayout), period, name, strconv.Itoa(randomInt(maxPages+1)), status, title)
			}
		}
		for i, name := range missed {
			if writePrevious && i%2 == 0 {
				at := now.AddDate(0, 0, -7)
				add(at.Format(timestampLayout), previous, name, strconv.Itoa(randomInt(maxPages+1)), statusReading, "")
			}
		}
	})
}

func writeCSV(header []string, rows func(add func(...string))) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	var writeErr error
	rows(func(record ...string) {
		if writeErr == nil {
			writeErr = w.Write(record)
		}
	})
	if writeErr != nil {
		return nil, writeErr
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
