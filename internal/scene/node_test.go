package scene

import (
	"strings"
	"testing"
	"time"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{12.5, "12.5"},
		{3.14159, "3.14"},
		{-0.001, "0"},
		{-7.25, "-7.25"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNodeString(t *testing.T) {
	n := El("g", "transform", "translate(70,30)")
	n.Append(El("rect", "x", "1", "y", "2"))
	n.Append(El("text", "class", "label").WithText(`Plasma <"HD">`))

	got := n.String()
	want := `<g transform="translate(70,30)"><rect x="1" y="2"/>` +
		`<text class="label">Plasma &lt;&#34;HD&#34;&gt;</text></g>`
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestNodeSetReplaces(t *testing.T) {
	n := El("circle", "r", "0")
	n.SetF("r", 5.5).Set("fill", "#fff")
	if v, _ := n.Get("r"); v != "5.5" {
		t.Errorf("r = %q", v)
	}
	if len(n.Attrs) != 2 {
		t.Errorf("expected 2 attributes, got %d", len(n.Attrs))
	}
	if _, ok := n.Get("stroke"); ok {
		t.Error("stroke should be absent")
	}
}

func TestAnimationHoldsThroughDelay(t *testing.T) {
	n := El("rect", "height", "120").Animate(Animation{
		Attr:     "height",
		From:     "0",
		To:       "120",
		Delay:    time.Second,
		Duration: time.Second,
	})

	out := n.String()
	for _, want := range []string{
		`attributeName="height"`,
		`values="0;0;120"`,
		`keyTimes="0;0.5000;1.0000"`,
		`dur="2000ms"`,
		`begin="0s"`,
		`fill="freeze"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("animation missing %s in %s", want, out)
		}
	}
}

func TestAnimationKeyframes(t *testing.T) {
	n := El("path").Animate(Animation{
		Attr:     "d",
		From:     "a",
		Values:   []string{"b", "c", "d"},
		Duration: 300 * time.Millisecond,
	})
	out := n.String()
	if !strings.Contains(out, `values="a;b;c;d"`) {
		t.Errorf("unexpected values in %s", out)
	}
	if !strings.Contains(out, `keyTimes="0.0000;0.3333;0.6667;1.0000"`) {
		t.Errorf("unexpected keyTimes in %s", out)
	}
}
