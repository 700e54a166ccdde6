package state

// MoveCursorDown advances the cursor to the next visible row. At the bottom
// it stays put; there is no wraparound. Moving the cursor disables filtering
// so the visible set cannot shift mid-burst.
func (b *Browse) MoveCursorDown() bool {
	n := len(b.Visible)
	if n == 0 {
		return false
	}
	b.FilterEnabled = false
	next := b.Cursor + 1
	if next > n-1 {
		return false
	}
	b.setCursor(next)
	return true
}

// MoveCursorUp moves the cursor to the previous visible row, clamped at the
// top. Same filter guard as MoveCursorDown.
func (b *Browse) MoveCursorUp() bool {
	if len(b.Visible) == 0 {
		return false
	}
	b.FilterEnabled = false
	if b.Cursor <= 0 {
		return false
	}
	b.setCursor(b.Cursor - 1)
	return true
}

func (b *Browse) setCursor(i int) {
	b.Cursor = i
	b.SelectedID = b.Visible[i].Node.ID
}

// EnsureCursorVisible adjusts the viewport offset so the cursor row stays on
// screen. An idle cursor pins the viewport to the top.
func (b *Browse) EnsureCursorVisible(maxVisible int) {
	if len(b.Visible) == 0 || b.Cursor < 0 {
		b.ViewportOffset = 0
		return
	}
	if maxVisible <= 0 {
		b.ViewportOffset = 0
		return
	}
	maxOffset := len(b.Visible) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if b.ViewportOffset > maxOffset {
		b.ViewportOffset = maxOffset
	}
	if b.ViewportOffset < 0 {
		b.ViewportOffset = 0
	}
	if b.Cursor < b.ViewportOffset {
		b.ViewportOffset = b.Cursor
	}
	upper := b.ViewportOffset + maxVisible - 1
	if b.Cursor > upper {
		b.ViewportOffset = b.Cursor - maxVisible + 1
		if b.ViewportOffset < 0 {
			b.ViewportOffset = 0
		}
		if b.ViewportOffset > maxOffset {
			b.ViewportOffset = maxOffset
		}
	}
}
