package logic

// Navigator handles selection and viewport management over the farm list.
// The list has one row per farm card followed by a sentinel row that stands
// for "the bottom of the list" (loading indicator, end of results, error).
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	itemCount      int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, itemCount int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	if n.viewportHeight < 1 {
		n.viewportHeight = 1
	}
	n.itemCount = itemCount
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetMaxIndex returns the maximum selectable index, -1 for an empty list
func (n *Navigator) GetMaxIndex() int {
	return n.itemCount - 1
}

// SentinelIndex is the row after the last card
func (n *Navigator) SentinelIndex() int {
	return n.itemCount
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	if index > n.GetMaxIndex() {
		index = n.GetMaxIndex()
	}
	if index < 0 {
		index = 0
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// MoveBy moves the selection by delta rows
func (n *Navigator) MoveBy(delta int) (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageDown moves the selection one viewport down
func (n *Navigator) PageDown() (int, int) {
	return n.MoveBy(n.viewportHeight)
}

// PageUp moves the selection one viewport up
func (n *Navigator) PageUp() (int, int) {
	return n.MoveBy(-n.viewportHeight)
}

// Top selects the first card
func (n *Navigator) Top() (int, int) {
	return n.SetSelectedIndex(0)
}

// Bottom selects the last card and scrolls the sentinel into view
func (n *Navigator) Bottom() (int, int) {
	return n.SetSelectedIndex(n.GetMaxIndex())
}

// ensureSelectedVisible adjusts the viewport to keep the selected item
// visible. Selecting the last card also reveals the sentinel row, the way
// scrolling a page to its end reveals its footer.
func (n *Navigator) ensureSelectedVisible() {
	totalItems := n.itemCount + 1

	target := n.selectedIndex
	if n.itemCount > 0 && n.selectedIndex == n.itemCount-1 {
		target = n.SentinelIndex()
	}

	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// If the target is below the viewport, scroll down
	if target >= n.viewportOffset+n.viewportHeight {
		newOffset := target - n.viewportHeight + 1
		// never push the selection itself out of the top
		if newOffset > n.selectedIndex {
			newOffset = n.selectedIndex
		}
		n.viewportOffset = newOffset
	}

	// Final validation: ensure viewport doesn't exceed bounds
	maxOffset := totalItems - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

// Clamp re-validates the viewport after the list or viewport size changed
func (n *Navigator) Clamp() (int, int) {
	if n.itemCount == 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return 0, 0
	}
	return n.SetSelectedIndex(n.selectedIndex)
}

// SentinelVisible reports whether the sentinel row is fully inside the
// viewport
func (n *Navigator) SentinelVisible() bool {
	s := n.SentinelIndex()
	return s >= n.viewportOffset && s < n.viewportOffset+n.viewportHeight
}

// HeaderScrolledAway reports whether the list has scrolled past its first
// row, which pins the compact search bar
func (n *Navigator) HeaderScrolledAway() bool {
	return n.viewportOffset > 0
}

// VisibleRange returns the half-open range of rows in the viewport,
// sentinel included
func (n *Navigator) VisibleRange() (int, int) {
	end := n.viewportOffset + n.viewportHeight
	if end > n.itemCount+1 {
		end = n.itemCount + 1
	}
	return n.viewportOffset, end
}
