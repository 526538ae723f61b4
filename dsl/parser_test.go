package dsl_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/M4cs/beetlegame-webp/dsl"
	"github.com/M4cs/beetlegame-webp/layout"
)

const sampleLayout = `
// 高对比度版本
canvas { size: 800 1100; background: "#101010" }

artwork {
  rect: 40 110 720 500
  placeholder: #333
}

/* 二维码贴在右下角 */
qr {
  rect: 690 1010 80
  field: Link
}

field lore {
  rect: 60 760 630 150
  align: bottom-center
  font: "Cinzel" 22
  color: "#fff"
  max-width: 610
  line-height: 1.5x
  padding: 10
  background: "rgba(0,0,0,0.4)"
  blur: 4
}

field Attack {
  rect: 40 940 140 80; align: bottom-left
  font: "Cinzel"; size: 42pt
  color: #ff6b4a
}
`

func TestReadLayout(t *testing.T) {
	got, err := dsl.Read("card.cardlayout", strings.NewReader(sampleLayout))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	o := got.Overrides
	if o.Width != 800 || o.Height != 1100 || o.Background != "#101010" {
		t.Fatalf("unexpected canvas overrides: %+v", o)
	}
	if o.Artwork == nil || *o.Artwork != (layout.Rect{X: 40, Y: 110, Width: 720, Height: 500}) {
		t.Fatalf("unexpected artwork rect: %+v", o.Artwork)
	}
	if o.Placeholder != "#333" {
		t.Fatalf("expected placeholder #333, got %q", o.Placeholder)
	}
	if got.QR == nil || got.QR.Field != "Link" || got.QR.Rect != (layout.Rect{X: 690, Y: 1010, Width: 80, Height: 80}) {
		t.Fatalf("unexpected qr: %+v", got.QR)
	}

	wantLore := layout.TextBlockSpec{
		Rect:           layout.Rect{X: 60, Y: 760, Width: 630, Height: 150},
		Align:          layout.BottomCenter,
		TextStyle:      layout.TextStyle{FontSize: 22, FontFamily: "Cinzel", Color: "#fff"},
		MaxWidth:       610,
		LineHeight:     33,
		Padding:        10,
		Background:     "rgba(0,0,0,0.4)",
		BackgroundBlur: 4,
	}
	if diff := cmp.Diff(wantLore, o.Fields[layout.FieldLore]); diff != "" {
		t.Fatalf("lore mismatch (-want +got):\n%s", diff)
	}

	attack, ok := o.Fields[layout.FieldAttack]
	if !ok {
		t.Fatalf("field names should be lower-cased, got %v", o.Fields.Fields())
	}
	if attack.Align != layout.BottomLeft || attack.Color != "#ff6b4a" {
		t.Fatalf("unexpected attack spec: %+v", attack)
	}
	if want := 42 * layout.PtToPx; math.Abs(attack.FontSize-want) > 1e-9 {
		t.Fatalf("expected 42pt = %gpx, got %g", want, attack.FontSize)
	}
}

func TestEmptyDocument(t *testing.T) {
	got, err := dsl.ParseString("\n// nothing here\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	l, err := got.Layout()
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if l.QR != nil || len(l.Overrides.Fields) != 0 || l.Overrides.Width != 0 {
		t.Fatalf("empty document should produce empty overrides: %+v", l)
	}
}

func TestLayoutErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		line    int
		message string
	}{
		{"unknown property", "field name {\n  rect: 0 0 10 10\n  size: 12\n  shadow: 2\n}", 4, "shadow"},
		{"unknown alignment", "field name {\n  rect: 0 0 10 10\n  size: 12\n  align: diagonal\n}", 4, "diagonal"},
		{"unknown section", "border {\n}", 1, "border"},
		{"missing rect", "field cost {\n  size: 12\n}", 1, "rect"},
		{"missing size", "field cost {\n  rect: 0 0 1 1\n}", 1, "字号"},
		{"wrong arity", "canvas {\n  size: 750\n}", 2, "size"},
		{"factor outside line-height", "field name {\n  rect: 0 0 10 10\n  size: 2x\n}", 3, "line-height"},
		{"qr without field", "qr {\n  rect: 1 2 3\n}", 1, "field"},
		{"syntax", "canvas {\n  size 750 1050\n}", 2, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dsl.Read("bad.cardlayout", strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			var derr *dsl.Error
			if !errors.As(err, &derr) {
				t.Fatalf("expected *dsl.Error, got %T: %v", err, err)
			}
			if derr.Pos.Line != tc.line {
				t.Fatalf("expected error on line %d, got %s", tc.line, derr.Pos)
			}
			if !strings.Contains(derr.Msg, tc.message) {
				t.Fatalf("expected message to mention %q, got %q", tc.message, derr.Msg)
			}
		})
	}
}

func TestLaterFieldReplacesEarlier(t *testing.T) {
	input := "field name {\n  rect: 0 0 10 10\n  size: 12\n  color: red\n}\nfield name {\n  rect: 1 1 5 5\n  size: 9\n}\n"
	l, err := dsl.Read("", strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	spec := l.Overrides.Fields[layout.FieldName]
	if spec.Color != "" || spec.FontSize != 9 {
		t.Fatalf("second block should replace the first entirely: %+v", spec)
	}
}

func TestAbsoluteLineHeight(t *testing.T) {
	input := "field lore { rect: 0 0 100 100; font: \"X\" 20; line-height: 28px }\n"
	l, err := dsl.Read("", strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got := l.Overrides.Fields[layout.FieldLore].LineHeight; got != 28 {
		t.Fatalf("expected line height 28, got %g", got)
	}
}
