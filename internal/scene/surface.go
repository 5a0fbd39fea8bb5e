package scene

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Shape is an element bound to one normalized record.
type Shape struct {
	Node    *Node
	Datum   int    // index of the record the shape was drawn from
	Group   string // shapes sharing a group react to each other's hover
	Tooltip string // tooltip HTML shown while highlighted

	// Hover overrides attributes of this shape while highlighted; Others
	// overrides the remaining shapes of the same group.
	Hover  map[string]string
	Others map[string]string

	state HoverState
}

// State returns the shape's hover state.
func (s *Shape) State() HoverState { return s.state }

// Attr returns the effective value of an attribute, taking hover overrides
// into account.
func (s *Shape) Attr(name string) string {
	if s.state == Highlighted {
		if v, ok := s.Hover[name]; ok {
			return v
		}
	}
	v, _ := s.Node.Get(name)
	return v
}

// Surface is the drawing area of one chart container: a root <svg> and the
// shapes bound to data.
type Surface struct {
	Width  float64
	Height float64

	mu      sync.Mutex
	root    *Node
	shapes  []*Shape
	dimmed  map[*Shape]bool
	hovered int
	tooltip *Tooltip
}

// NewSurface creates an empty surface of the given pixel size.
func NewSurface(width, height float64) *Surface {
	s := &Surface{Width: width, Height: height}
	s.Clear()
	return s
}

// Clear drops every element and shape.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = El("svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"width", Num(s.Width),
		"height", Num(s.Height),
		"viewBox", fmt.Sprintf("0 0 %s %s", Num(s.Width), Num(s.Height)))
	s.shapes = nil
	s.dimmed = make(map[*Shape]bool)
	s.hovered = -1
}

// Root returns the <svg> element.
func (s *Surface) Root() *Node {
	return s.root
}

// Add appends decoration elements to parent (the root when nil).
func (s *Surface) Add(parent *Node, nodes ...*Node) {
	if parent == nil {
		parent = s.root
	}
	parent.Append(nodes...)
}

// Bind appends n to parent and registers it as the shape for datum.
func (s *Surface) Bind(parent *Node, n *Node, datum int) *Shape {
	s.Add(parent, n)
	shape := &Shape{Node: n, Datum: datum}
	s.mu.Lock()
	s.shapes = append(s.shapes, shape)
	s.mu.Unlock()
	return shape
}

// Shapes returns the data-bound shapes in drawing order.
func (s *Surface) Shapes() []*Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Shape(nil), s.shapes...)
}

// Placeholder clears the surface and centres a single message on it.
func (s *Surface) Placeholder(message string) {
	s.Clear()
	s.root.Append(El("text",
		"class", "placeholder",
		"x", Num(s.Width/2),
		"y", Num(s.Height/2),
		"text-anchor", "middle",
		"font-size", "16px",
		"fill", "#666").WithText(message))
}

// Finalize serializes the interaction data of every shape onto its element
// so the browser runtime can replay the hover state machine.
func (s *Surface) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, shape := range s.shapes {
		n := shape.Node
		n.Set("data-shape", fmt.Sprint(i))
		if shape.Group != "" {
			n.Set("data-group", shape.Group)
		}
		if shape.Tooltip != "" {
			n.Set("data-tooltip", shape.Tooltip)
		}
		if len(shape.Hover) > 0 {
			n.Set("data-hover", encodeOverrides(shape.Hover))
		}
		if len(shape.Others) > 0 {
			n.Set("data-hover-others", encodeOverrides(shape.Others))
		}
	}
}

func encodeOverrides(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]string, 0, len(keys))
	for _, k := range keys {
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(m[k])
		ordered = append(ordered, string(kb)+":"+string(vb))
	}
	return "{" + strings.Join(ordered, ",") + "}"
}

// SVG returns the surface markup.
func (s *Surface) SVG() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.String()
}
