package view

import "sync"

// Modal mirrors the host dialog lifecycle: Show runs the registered show
// hooks before the dialog becomes visible, Hide runs the hidden hooks after
// it is gone. Controllers use the hooks for form pre-population and reset.
type Modal struct {
	mu       sync.Mutex
	visible  bool
	onShow   []func()
	onHidden []func()
}

// OnShow registers a hook invoked at the start of every Show.
func (m *Modal) OnShow(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onShow = append(m.onShow, fn)
}

// OnHidden registers a hook invoked after every Hide.
func (m *Modal) OnHidden(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onHidden = append(m.onHidden, fn)
}

// Show runs the show hooks, then marks the modal visible.
func (m *Modal) Show() {
	m.mu.Lock()
	hooks := append([]func(){}, m.onShow...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	m.mu.Lock()
	m.visible = true
	m.mu.Unlock()
}

// Hide marks the modal hidden, then runs the hidden hooks. Hiding an
// already-hidden modal still fires the hooks, matching the host framework's
// explicit-close path.
func (m *Modal) Hide() {
	m.mu.Lock()
	m.visible = false
	hooks := append([]func(){}, m.onHidden...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Visible reports whether the modal is currently shown.
func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Button is a clickable control with a busy state used to block duplicate
// submissions while a request is in flight.
type Button struct {
	mu        sync.Mutex
	label     string
	busyLabel string
	busy      bool
}

// NewButton creates a button with its idle and busy labels.
func NewButton(label, busyLabel string) *Button {
	return &Button{label: label, busyLabel: busyLabel}
}

// Begin moves the button into the busy state. It returns false when the
// button is already busy, letting callers drop duplicate activations.
func (b *Button) Begin() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.busy {
		return false
	}
	b.busy = true
	return true
}

// End restores the idle state. Safe to call unconditionally.
func (b *Button) End() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.busy = false
}

// Busy reports whether the button is disabled.
func (b *Button) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// Label returns the text currently shown on the button.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.busy {
		return b.busyLabel
	}
	return b.label
}
