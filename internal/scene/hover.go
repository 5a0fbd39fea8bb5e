package scene

import (
	"fmt"
	"time"
)

// HoverState is the per-shape interaction state.
type HoverState int

const (
	Idle HoverState = iota
	Highlighted
)

func (h HoverState) String() string {
	if h == Highlighted {
		return "highlighted"
	}
	return "idle"
}

// Tooltip transition durations.
const (
	TooltipShow = 200 * time.Millisecond
	TooltipHide = 500 * time.Millisecond
)

// Tooltip is the overlay shared by every chart of a document. Its content is
// replaced on each hover.
type Tooltip struct {
	HTML       string
	Visible    bool
	Transition time.Duration
}

func (t *Tooltip) show(html string) {
	t.HTML = html
	t.Visible = true
	t.Transition = TooltipShow
}

func (t *Tooltip) hide() {
	t.Visible = false
	t.Transition = TooltipHide
}

// Enter moves shape i to Highlighted, dims the rest of its group and shows
// its tooltip. A shape that is already highlighted stays so; entering a new
// shape first leaves the previous one. The browser runtime replays the same
// transitions from the attributes written by Finalize.
func (s *Surface) Enter(i int) (*Shape, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.shapes) {
		return nil, fmt.Errorf("shape %d out of range [0,%d)", i, len(s.shapes))
	}
	if s.hovered == i {
		return s.shapes[i], nil
	}
	if s.hovered >= 0 {
		s.leaveLocked(s.hovered)
	}

	shape := s.shapes[i]
	shape.state = Highlighted
	s.hovered = i
	if shape.Group != "" && len(shape.Others) > 0 {
		for _, other := range s.shapes {
			if other != shape && other.Group == shape.Group {
				s.dimmed[other] = true
			}
		}
	}
	if s.tooltip != nil && shape.Tooltip != "" {
		s.tooltip.show(shape.Tooltip)
	}
	return shape, nil
}

// Leave returns shape i to Idle and starts the tooltip fade.
func (s *Surface) Leave(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.shapes) {
		return fmt.Errorf("shape %d out of range [0,%d)", i, len(s.shapes))
	}
	if s.hovered != i {
		return nil
	}
	s.leaveLocked(i)
	return nil
}

func (s *Surface) leaveLocked(i int) {
	s.shapes[i].state = Idle
	s.hovered = -1
	s.dimmed = make(map[*Shape]bool)
	if s.tooltip != nil {
		s.tooltip.hide()
	}
}

// Dimmed reports whether shape is restyled by a hovered sibling.
func (s *Surface) Dimmed(shape *Shape) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimmed[shape]
}

// Hovered returns the index of the highlighted shape, or -1.
func (s *Surface) Hovered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}
