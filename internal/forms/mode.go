// Package forms holds the create/update controllers for products and
// suppliers. Edit intent is a scoped Mode value held by each controller and
// reset on every modal open and close, so a cancelled edit can never leak
// its identifier into the next add.
package forms

import "errors"

// ErrValidation is returned when client-side input checks reject a save
// before any network call is made.
var ErrValidation = errors.New("invalid form input")

// Mode says whether a form save creates a new record or updates an
// existing one.
type Mode struct {
	editing bool
	id      int
}

// CreateMode is the default: saving creates a new record.
func CreateMode() Mode {
	return Mode{}
}

// EditMode marks the form as updating the record with the given ID.
func EditMode(id int) Mode {
	return Mode{editing: true, id: id}
}

// Editing returns the target record ID and whether the form is in edit
// mode.
func (m Mode) Editing() (int, bool) {
	return m.id, m.editing
}
