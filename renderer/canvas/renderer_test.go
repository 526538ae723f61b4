package canvasrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
)

func newTestSurface(t *testing.T, w, h int) (*Surface, *FontBook) {
	t.Helper()
	book, err := NewFontBook()
	if err != nil {
		t.Fatalf("NewFontBook: %v", err)
	}
	return NewSurface(w, h, book), book
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

// inkIn 统计区域内非透明像素的数量。
func inkIn(img image.Image, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if alphaAt(img, x, y) > 0 {
				n++
			}
		}
	}
	return n
}

func TestFillRectCoversTopLeftOrigin(t *testing.T) {
	s, _ := newTestSurface(t, 100, 60)
	red := color.NRGBA{255, 0, 0, 255}
	s.FillRect(layout.Rect{X: 10, Y: 5, Width: 20, Height: 10}, red, 0)

	img := s.Image()
	r, g, b, a := img.At(20, 10).RGBA()
	if r>>8 < 250 || g>>8 > 5 || b>>8 > 5 || a>>8 < 250 {
		t.Fatalf("pixel inside rect = %v, want red", img.At(20, 10))
	}
	for _, p := range []image.Point{{5, 10}, {20, 2}, {20, 20}, {35, 10}, {20, 55}} {
		if alphaAt(img, p.X, p.Y) != 0 {
			t.Fatalf("pixel %v outside rect is painted", p)
		}
	}
}

func TestFillRectSkipsDegenerate(t *testing.T) {
	s, _ := newTestSurface(t, 40, 40)
	s.FillRect(layout.Rect{X: 10, Y: 10, Width: -5, Height: 10}, color.Black, 0)
	s.FillRect(layout.Rect{X: 10, Y: 10, Width: 5, Height: 0}, color.Black, 0)
	if n := inkIn(s.Image(), s.Image().Bounds()); n != 0 {
		t.Fatalf("degenerate rect painted %d pixels", n)
	}
}

func TestFillRectBlurBleedsOutsideRect(t *testing.T) {
	s, _ := newTestSurface(t, 80, 80)
	s.FillRect(layout.Rect{X: 20, Y: 20, Width: 40, Height: 40}, color.NRGBA{0, 0, 0, 255}, 4)
	img := s.Image()
	if alphaAt(img, 40, 40) == 0 {
		t.Fatalf("center of blurred rect should be painted")
	}
	if alphaAt(img, 17, 40) == 0 {
		t.Fatalf("blur should bleed past the rect edge")
	}
	if alphaAt(img, 2, 2) != 0 {
		t.Fatalf("blur should not reach the far corner")
	}

	// 模糊只作用于该次填充，后续填充保持锐利边缘。
	s.FillRect(layout.Rect{X: 0, Y: 70, Width: 10, Height: 10}, color.NRGBA{0, 0, 255, 255}, 0)
	if alphaAt(img, 12, 75) != 0 {
		t.Fatalf("second fill should not be blurred")
	}
}

func TestStrokeRectLeavesInteriorEmpty(t *testing.T) {
	s, _ := newTestSurface(t, 60, 60)
	s.StrokeRect(layout.Rect{X: 10, Y: 10, Width: 40, Height: 40}, color.Black, 2)
	img := s.Image()
	if alphaAt(img, 30, 30) != 0 {
		t.Fatalf("stroke must not fill the interior")
	}
	if alphaAt(img, 10, 30) == 0 {
		t.Fatalf("left edge should be stroked")
	}
}

func TestDrawImageScalesToRect(t *testing.T) {
	s, _ := newTestSurface(t, 100, 100)
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.NRGBA{0, 0, 255, 255})
		}
	}
	s.DrawImage(src, layout.Rect{X: 50, Y: 10, Width: 30, Height: 20})
	img := s.Image()
	if _, _, b, _ := img.At(65, 20).RGBA(); b>>8 < 250 {
		t.Fatalf("scaled image missing at (65,20): %v", img.At(65, 20))
	}
	if alphaAt(img, 65, 35) != 0 || alphaAt(img, 45, 20) != 0 {
		t.Fatalf("image drawn outside destination rect")
	}
}

func TestMeasureTextUsesFallbackForUnknownFamily(t *testing.T) {
	s, _ := newTestSurface(t, 10, 10)
	s.SetFont(fonts.DefaultFamily, 20)
	want := s.MeasureText("Hello world")
	s.SetFont("Never Registered", 20)
	if got := s.MeasureText("Hello world"); got != want {
		t.Fatalf("unknown family width = %g, want fallback width %g", got, want)
	}
	if want <= s.MeasureText("Hello") {
		t.Fatalf("longer text should measure wider")
	}
	s.SetFont("", 40)
	if got := s.MeasureText("Hello world"); got <= want*1.5 {
		t.Fatalf("doubling the size should roughly double the width: %g vs %g", got, want)
	}
	if got := s.MeasureText(""); got != 0 {
		t.Fatalf("empty string width = %g", got)
	}
}

func TestFillTextBaselineModes(t *testing.T) {
	cases := []struct {
		v         layout.VAlign
		ink, none image.Rectangle
	}{
		// top：文字在参考线下方
		{layout.VTop, image.Rect(0, 40, 200, 70), image.Rect(0, 0, 200, 38)},
		// bottom：文字在参考线上方
		{layout.VBottom, image.Rect(0, 10, 200, 40), image.Rect(0, 43, 200, 100)},
	}
	for _, c := range cases {
		t.Run(c.v.String(), func(t *testing.T) {
			s, _ := newTestSurface(t, 200, 100)
			s.SetFont("", 24)
			s.SetFillColor(color.Black)
			s.SetTextAlign(layout.HLeft)
			s.SetTextBaseline(c.v)
			s.FillText("HHH", 10, 40)
			img := s.Image()
			if inkIn(img, c.ink) == 0 {
				t.Fatalf("expected text in %v", c.ink)
			}
			if n := inkIn(img, c.none); n != 0 {
				t.Fatalf("unexpected %d painted pixels in %v", n, c.none)
			}
		})
	}
}

func TestFillTextAlignment(t *testing.T) {
	s, _ := newTestSurface(t, 200, 60)
	s.SetFont("", 20)
	s.SetFillColor(color.Black)
	s.SetTextBaseline(layout.VMiddle)

	s.SetTextAlign(layout.HRight)
	s.FillText("HH", 100, 30)
	img := s.Image()
	if inkIn(img, image.Rect(102, 0, 200, 60)) != 0 {
		t.Fatalf("right-aligned text must end at the anchor")
	}
	if inkIn(img, image.Rect(60, 0, 100, 60)) == 0 {
		t.Fatalf("right-aligned text should be left of the anchor")
	}
}

func TestFontBookRegister(t *testing.T) {
	book, err := NewFontBook()
	if err != nil {
		t.Fatalf("NewFontBook: %v", err)
	}
	if err := book.Register(fonts.Blob{Family: "Broken", Data: []byte("not a font")}); err == nil {
		t.Fatalf("expected error for invalid font data")
	}
	if err := book.Register(fonts.Blob{Family: "Go", Data: fonts.Fallback()}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	set := book.Set()
	if !set.Has("Go") || set.Has("Broken") {
		t.Fatalf("unexpected set %v", set.Families())
	}
	if set.Has(fonts.DefaultFamily) {
		t.Fatalf("default family should not be part of the registered set")
	}
}

func TestFactoryCreatesIndependentSurfaces(t *testing.T) {
	_, book := newTestSurface(t, 1, 1)
	f := book.Factory()
	a, b := f(20, 10), f(20, 10)
	a.FillRect(layout.Rect{Width: 20, Height: 10}, color.Black, 0)
	if inkIn(b.Image(), b.Image().Bounds()) != 0 {
		t.Fatalf("surfaces must not share pixels")
	}
	if a.Width() != 20 || a.Height() != 10 {
		t.Fatalf("unexpected size %dx%d", a.Width(), a.Height())
	}
}
