package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/arena/internal/domain/model"
)

// Parse reads a delimited-text payload with a header row. Ragged rows
// are tolerated: short rows leave trailing columns empty, extra cells are
// ignored. Blank lines are skipped. A payload with no header yields an
// empty table.
func Parse(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{Header: []string{}, Rows: []model.Row{}}, nil
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: header: %v", ErrParse, err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = model.HeaderKey(h)
	}

	t := model.Table{Header: keys, Rows: []model.Row{}}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if blank(record) {
			continue
		}

		row := make(model.Row, len(keys))
		for i, key := range keys {
			if key == "" || i >= len(record) {
				continue
			}
			// First occurrence of a repeated header wins.
			if _, dup := row[key]; dup {
				continue
			}
			row[key] = record[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
