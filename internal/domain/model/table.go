// Package model contains domain models passed between layers.
package model

import "strings"

// Row is one CSV data record keyed by normalized header name.
type Row map[string]string

// Get returns the raw value for key, or "" when the column is absent.
func (r Row) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// Table is a parsed delimited-text payload: its header and its data rows.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header carries the named column.
func (t Table) HasColumn(name string) bool {
	name = HeaderKey(name)
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// HeaderKey normalizes a header cell so lookups tolerate stray
// whitespace, casing and a UTF-8 byte order mark.
func HeaderKey(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}
