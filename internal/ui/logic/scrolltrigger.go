package logic

// TriggerDeps are the inputs that decide whether reaching the bottom of the
// list may load another page. Any change re-evaluates the trigger.
type TriggerDeps struct {
	HasNextPage bool
	InFlight    bool
	Errored     bool
	CurrentPage int
}

// Allowed reports whether a further page may be requested
func (d TriggerDeps) Allowed() bool {
	return d.HasNextPage && !d.InFlight && !d.Errored
}

// ScrollTrigger watches sentinel visibility and asks for the next page when
// the sentinel is in view and the guards allow it. It fires on the sentinel
// entering the viewport and again whenever its dependencies change while
// the sentinel stays in view.
type ScrollTrigger struct {
	closed      bool
	observed    bool
	lastVisible bool
	lastDeps    TriggerDeps
}

// NewScrollTrigger creates an open trigger
func NewScrollTrigger() *ScrollTrigger {
	return &ScrollTrigger{}
}

// Observe feeds the current sentinel visibility and dependencies. It
// returns the page to request and true when the trigger fires.
func (t *ScrollTrigger) Observe(visible bool, deps TriggerDeps) (int, bool) {
	if t.closed {
		return 0, false
	}

	changed := !t.observed || deps != t.lastDeps
	entered := visible && !t.lastVisible

	t.observed = true
	t.lastVisible = visible
	t.lastDeps = deps

	if !visible || !(changed || entered) || !deps.Allowed() {
		return 0, false
	}

	return deps.CurrentPage + 1, true
}

// Close stops the trigger; it never fires again
func (t *ScrollTrigger) Close() {
	t.closed = true
}

// Closed reports whether Close was called
func (t *ScrollTrigger) Closed() bool {
	return t.closed
}
