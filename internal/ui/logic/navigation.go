package logic

// Navigator handles cursor movement and viewport management over the movie list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	count          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, count int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.count = count
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

func (n *Navigator) MoveUp() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex - 1)
}

func (n *Navigator) MoveDown() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + 1)
}

func (n *Navigator) PageUp() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex - n.pageSize())
}

func (n *Navigator) PageDown() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + n.pageSize())
}

func (n *Navigator) First() (int, int) {
	return n.SetSelectedIndex(0)
}

func (n *Navigator) Last() (int, int) {
	return n.SetSelectedIndex(n.count - 1)
}

// Clamp pulls the cursor and viewport back into range after the list changed
func (n *Navigator) Clamp() (int, int) {
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

func (n *Navigator) pageSize() int {
	if n.viewportHeight > 1 {
		return n.viewportHeight - 1
	}
	return 1
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.count <= 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if n.selectedIndex >= n.count {
		n.selectedIndex = n.count - 1
	}

	height := n.viewportHeight
	if height < 1 {
		height = 1
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+height {
		n.viewportOffset = n.selectedIndex - height + 1
	}

	// Don't leave empty rows below the last item when the list could fill them
	maxOffset := n.count - height
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
