package state

import "github.com/atomicstack/tagsort/internal/suggest"

// MoveCursorUp moves the cursor up one rule, wrapping to the last.
func (r *Rules) MoveCursorUp() bool {
	return r.step(-1)
}

// MoveCursorDown moves the cursor down one rule, wrapping to the first.
func (r *Rules) MoveCursorDown() bool {
	return r.step(1)
}

func (r *Rules) step(delta int) bool {
	n := len(r.Items)
	if n == 0 {
		r.Cursor = 0
		return false
	}
	old := r.Cursor
	r.Cursor = suggest.Wrap(r.Cursor+delta, n)
	return old != r.Cursor
}

// MoveCursorHome moves the cursor to the first rule.
func (r *Rules) MoveCursorHome() bool {
	if len(r.Items) == 0 {
		r.Cursor = 0
		return false
	}
	old := r.Cursor
	r.Cursor = 0
	return old != r.Cursor
}

// MoveCursorEnd moves the cursor to the last rule.
func (r *Rules) MoveCursorEnd() bool {
	n := len(r.Items)
	if n == 0 {
		r.Cursor = 0
		return false
	}
	old := r.Cursor
	r.Cursor = n - 1
	return old != r.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (r *Rules) MoveCursorPageUp(maxVisible int) bool {
	return r.moveCursorBy(-r.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (r *Rules) MoveCursorPageDown(maxVisible int) bool {
	return r.moveCursorBy(r.pageSize(maxVisible))
}

func (r *Rules) moveCursorBy(delta int) bool {
	if len(r.Items) == 0 {
		r.Cursor = 0
		return false
	}
	old := r.Cursor
	if r.Cursor < 0 {
		r.Cursor = 0
	}
	r.Cursor += delta
	if r.Cursor < 0 {
		r.Cursor = 0
	}
	if r.Cursor >= len(r.Items) {
		r.Cursor = len(r.Items) - 1
	}
	return r.Cursor != old
}

func (r *Rules) pageSize(maxVisible int) int {
	total := len(r.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (r *Rules) EnsureCursorVisible(maxVisible int) {
	if len(r.Items) == 0 {
		r.Cursor = 0
		r.ViewportOffset = 0
		return
	}
	if r.Cursor < 0 {
		r.Cursor = 0
	}
	if r.Cursor >= len(r.Items) {
		r.Cursor = len(r.Items) - 1
	}
	if maxVisible <= 0 {
		r.ViewportOffset = 0
		return
	}
	maxOffset := len(r.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.ViewportOffset > maxOffset {
		r.ViewportOffset = maxOffset
	}
	if r.ViewportOffset < 0 {
		r.ViewportOffset = 0
	}
	if r.Cursor < r.ViewportOffset {
		r.ViewportOffset = r.Cursor
	}
	upper := r.ViewportOffset + maxVisible - 1
	if r.Cursor > upper {
		r.ViewportOffset = r.Cursor - maxVisible + 1
		if r.ViewportOffset < 0 {
			r.ViewportOffset = 0
		}
		if r.ViewportOffset > maxOffset {
			r.ViewportOffset = maxOffset
		}
	}
}
