package render

import "sync"

// TooltipKind distinguishes the passive hover hint from check output.
type TooltipKind int

const (
	TooltipHint TooltipKind = iota + 1
	TooltipLoading
	TooltipResult
)

func (k TooltipKind) String() string {
	switch k {
	case TooltipHint:
		return "hint"
	case TooltipLoading:
		return "loading"
	case TooltipResult:
		return "result"
	}
	return "none"
}

// Closable reports whether the tooltip carries a close button.
func (k TooltipKind) Closable() bool {
	return k != TooltipHint
}

type TooltipState struct {
	Kind TooltipKind
	Text string
}

// Display holds the single currently shown tooltip. The last write wins.
type Display struct {
	mu      sync.Mutex
	current *TooltipState
}

// ShowHint shows the hover hint unless a check tooltip is on screen.
func (d *Display) ShowHint(text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil && d.current.Kind != TooltipHint {
		return false
	}
	d.current = &TooltipState{Kind: TooltipHint, Text: text}
	return true
}

func (d *Display) ShowLoading(text string) {
	d.set(TooltipState{Kind: TooltipLoading, Text: text})
}

func (d *Display) ShowResult(text string) {
	d.set(TooltipState{Kind: TooltipResult, Text: text})
}

// LeaveLink hides the tooltip only if it is the hover hint.
func (d *Display) LeaveLink() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil && d.current.Kind == TooltipHint {
		d.current = nil
	}
}

// Hide removes any tooltip.
func (d *Display) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = nil
}

// Current returns the shown tooltip, if any.
func (d *Display) Current() (TooltipState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return TooltipState{}, false
	}
	return *d.current, true
}

func (d *Display) set(t TooltipState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = &t
}
