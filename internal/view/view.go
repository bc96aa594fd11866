// Package view is the presentation surface the controllers render into. It
// stands in for the widget framework of the host UI: render functions own
// their widgets outright and overwrite contents wholesale, so concurrent
// refreshes resolve as last-write-wins per widget.
package view

import "sync"

// Field is a single text input.
type Field struct {
	mu    sync.Mutex
	value string
}

// SetValue replaces the field contents.
func (f *Field) SetValue(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// Value returns the current field contents.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Reset clears the field.
func (f *Field) Reset() {
	f.SetValue("")
}

// Metric is a read-only text display (a dashboard card or a computed label).
type Metric struct {
	mu    sync.Mutex
	value string
}

// Set replaces the displayed value.
func (m *Metric) Set(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
}

// Value returns the displayed value.
func (m *Metric) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Action is a row-level command bound at render time. The closure carries
// the typed row data it needs, so rendered rows never reference anything by
// global name.
type Action struct {
	Label  string
	Invoke func()
}

// Row is one rendered table row.
type Row struct {
	Cells   []string
	Actions []Action
}

// Table is a column-headed list of rows. SetRows replaces the whole body;
// there is no incremental diffing.
type Table struct {
	mu      sync.Mutex
	columns []string
	rows    []Row
}

// NewTable creates a table with the given column headers.
func NewTable(columns ...string) *Table {
	return &Table{columns: columns}
}

// Columns returns the column headers.
func (t *Table) Columns() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.columns...)
}

// SetRows overwrites the table body.
func (t *Table) SetRows(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
}

// Rows returns a copy of the current body.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Row(nil), t.rows...)
}

// Len returns the current row count.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}
