package tui

// Focusable is one interactive control in the detail modal, in display
// order.
type Focusable struct {
	ID       string
	Label    string
	Disabled bool
}

// FocusRing cycles keyboard focus across an ordered set of controls. Tab
// wraps last to first, Shift+Tab wraps first to last, and disabled
// controls are skipped in both directions.
type FocusRing struct {
	items []Focusable
	index int
}

// NewFocusRing builds a ring over the given controls. Focus starts on the
// first enabled control.
func NewFocusRing(items ...Focusable) *FocusRing {
	r := &FocusRing{items: items}
	if len(items) > 0 && items[0].Disabled {
		r.Next()
	}
	return r
}

// Len returns the number of controls in the ring, disabled included.
func (r *FocusRing) Len() int {
	return len(r.items)
}

// Items returns the controls in display order.
func (r *FocusRing) Items() []Focusable {
	return r.items
}

// Current returns the focused control.
func (r *FocusRing) Current() (Focusable, bool) {
	if len(r.items) == 0 {
		return Focusable{}, false
	}
	return r.items[r.index], true
}

// IsFocused reports whether the control with the given id holds focus.
func (r *FocusRing) IsFocused(id string) bool {
	cur, ok := r.Current()
	return ok && cur.ID == id
}

// Focus moves focus to the control with the given id. Disabled or unknown
// ids leave focus where it is.
func (r *FocusRing) Focus(id string) bool {
	for i, item := range r.items {
		if item.ID == id && !item.Disabled {
			r.index = i
			return true
		}
	}
	return false
}

// Next advances focus, wrapping past the end.
func (r *FocusRing) Next() {
	r.step(1)
}

// Prev moves focus backwards, wrapping past the start.
func (r *FocusRing) Prev() {
	r.step(-1)
}

func (r *FocusRing) step(dir int) {
	n := len(r.items)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		next := ((r.index+dir*i)%n + n) % n
		if !r.items[next].Disabled {
			r.index = next
			return
		}
	}
}
