package ui

// Router keeps the location history of the page. The current location
// is the last entry.
type Router struct {
	history []string
	limit   int
}

// NewRouter creates a router holding at most limit entries; limit <= 0
// means unbounded
func NewRouter(limit int) *Router {
	return &Router{limit: limit}
}

// Navigate makes location current. Navigating to the current location
// does not add an entry.
func (r *Router) Navigate(location string) {
	if n := len(r.history); n > 0 && r.history[n-1] == location {
		return
	}
	r.history = append(r.history, location)
	if r.limit > 0 && len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
}

// Replace swaps the current location without adding an entry
func (r *Router) Replace(location string) {
	if len(r.history) == 0 {
		r.history = append(r.history, location)
		return
	}
	r.history[len(r.history)-1] = location
}

// Back drops the current location and returns the previous one
func (r *Router) Back() (string, bool) {
	if !r.CanGoBack() {
		return "", false
	}
	r.history = r.history[:len(r.history)-1]
	return r.history[len(r.history)-1], true
}

// CanGoBack reports whether there is a previous location
func (r *Router) CanGoBack() bool {
	return len(r.history) > 1
}

// Current returns the current location
func (r *Router) Current() string {
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// Len returns the number of history entries
func (r *Router) Len() int {
	return len(r.history)
}
