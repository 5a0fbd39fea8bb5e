package scene

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"time"
)

// Attr is one SVG attribute. Attributes keep insertion order so output is
// stable.
type Attr struct {
	Name  string
	Value string
}

// Animation is an entrance transition written as a SMIL <animate>. The
// element holds From during Delay, then moves through Values (or to To) over
// Duration and freezes on the final value.
type Animation struct {
	Attr     string
	From     string
	To       string
	Values   []string // keyframes after From; overrides To when set
	Delay    time.Duration
	Duration time.Duration
}

// Node is an SVG element.
type Node struct {
	Tag        string
	Attrs      []Attr
	Text       string
	Children   []*Node
	Animations []Animation
}

// El creates an element with attribute name/value pairs.
func El(tag string, kv ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Set(kv[i], kv[i+1])
	}
	return n
}

// Set adds or replaces an attribute.
func (n *Node) Set(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetF sets a numeric attribute.
func (n *Node) SetF(name string, v float64) *Node {
	return n.Set(name, Num(v))
}

// Get returns an attribute value.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// WithText sets the text content.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// Animate attaches an entrance animation.
func (n *Node) Animate(a Animation) *Node {
	n.Animations = append(n.Animations, a)
	return n
}

// Num formats a coordinate with at most two decimals.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func ms(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// WriteTo writes the element and its subtree as SVG markup.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	n.write(&b)
	written, err := io.WriteString(w, b.String())
	return int64(written), err
}

// String returns the SVG markup of the subtree.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		fmt.Fprintf(b, ` %s="%s"`, a.Name, html.EscapeString(a.Value))
	}
	if n.Text == "" && len(n.Children) == 0 && len(n.Animations) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, a := range n.Animations {
		writeAnimation(b, a)
	}
	b.WriteString(html.EscapeString(n.Text))
	for _, c := range n.Children {
		c.write(b)
	}
	fmt.Fprintf(b, "</%s>", n.Tag)
}

// writeAnimation emits an animation that starts with the document and holds
// the initial value through the delay, so the static attribute can carry the
// final value for renderers without SMIL.
func writeAnimation(b *strings.Builder, a Animation) {
	frames := append([]string{a.From}, a.Values...)
	if len(a.Values) == 0 {
		frames = append(frames, a.To)
	}
	total := a.Delay + a.Duration
	if total <= 0 {
		total = time.Millisecond
	}

	values := frames
	keyTimes := make([]string, 0, len(frames)+1)
	start := float64(a.Delay) / float64(total)
	if a.Delay > 0 {
		values = append([]string{a.From}, frames...)
		keyTimes = append(keyTimes, "0")
	}
	steps := len(frames) - 1
	for i := range frames {
		t := start + (1-start)*float64(i)/float64(max(steps, 1))
		keyTimes = append(keyTimes, strconv.FormatFloat(t, 'f', 4, 64))
	}

	fmt.Fprintf(b, `<animate attributeName="%s" values="%s" keyTimes="%s" dur="%s" begin="0s" fill="freeze"/>`,
		a.Attr,
		html.EscapeString(strings.Join(values, ";")),
		strings.Join(keyTimes, ";"),
		ms(total))
}
