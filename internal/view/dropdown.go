package view

import "sync"

// Option is one selectable dropdown entry. Meta carries per-option data the
// renderer attaches for later reads (the sale-product dropdown stores price
// and stock there, so the sale form reads them without another fetch).
type Option struct {
	Value string
	Label string
	Meta  map[string]string
}

// Dropdown is a single-select list with a fixed placeholder entry. Setting
// options replaces everything below the placeholder wholesale.
type Dropdown struct {
	mu          sync.Mutex
	placeholder string
	options     []Option
	selected    string
}

// NewDropdown creates a dropdown whose first, empty-valued entry shows the
// given placeholder label.
func NewDropdown(placeholder string) *Dropdown {
	return &Dropdown{placeholder: placeholder}
}

// SetOptions replaces all options. The current selection is kept when an
// option with the same value still exists, otherwise it resets to the
// placeholder.
func (d *Dropdown) SetOptions(options []Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.options = append([]Option(nil), options...)
	if d.selected == "" {
		return
	}
	for _, o := range d.options {
		if o.Value == d.selected {
			return
		}
	}
	d.selected = ""
}

// Options returns a copy of the current options, placeholder excluded.
func (d *Dropdown) Options() []Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Option(nil), d.options...)
}

// Select sets the selection. An empty value or an unknown value falls back
// to the placeholder.
func (d *Dropdown) Select(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, o := range d.options {
		if o.Value == value {
			d.selected = value
			return
		}
	}
	d.selected = ""
}

// Selected returns the chosen option. ok is false while the placeholder is
// selected.
func (d *Dropdown) Selected() (Option, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, o := range d.options {
		if o.Value == d.selected && d.selected != "" {
			return o, true
		}
	}
	return Option{}, false
}

// Reset returns the dropdown to the placeholder selection.
func (d *Dropdown) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = ""
}

// Placeholder returns the placeholder label.
func (d *Dropdown) Placeholder() string {
	return d.placeholder
}
