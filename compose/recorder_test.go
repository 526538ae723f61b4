package compose

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/renderer"
)

// op 是 recorder 记录下的一次绘制调用。
type op struct {
	Kind   string
	Rect   layout.Rect
	Color  color.Color
	Blur   float64
	Family string
	Size   float64
	Text   string
	X, Y   float64
	H      layout.HAlign
	V      layout.VAlign
}

// recorder 是记录绘制调用的 renderer.Surface。
// 每个字符的宽度为 size × advance[family]，未知字体族的 advance 为 0.5。
type recorder struct {
	w, h    int
	advance map[string]float64

	family string
	size   float64
	fill   color.Color
	halign layout.HAlign
	valign layout.VAlign

	ops      []op
	measured []string
}

var _ renderer.Surface = (*recorder)(nil)

func newRecorder(w, h int) *recorder {
	return &recorder{w: w, h: h, advance: map[string]float64{fonts.DefaultFamily: 0.5}}
}

func recorderFactory(out *[]*recorder) renderer.Factory {
	return func(w, h int) renderer.Surface {
		r := newRecorder(w, h)
		*out = append(*out, r)
		return r
	}
}

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }

func (r *recorder) FillRect(rect layout.Rect, c color.Color, blur float64) {
	r.ops = append(r.ops, op{Kind: "fill", Rect: rect, Color: c, Blur: blur})
}

func (r *recorder) StrokeRect(rect layout.Rect, c color.Color, lineWidth float64) {
	r.ops = append(r.ops, op{Kind: "stroke", Rect: rect, Color: c})
}

func (r *recorder) SetFont(family string, size float64) {
	r.family, r.size = family, size
}

func (r *recorder) SetFillColor(c color.Color) { r.fill = c }

func (r *recorder) SetTextAlign(h layout.HAlign) { r.halign = h }

func (r *recorder) SetTextBaseline(v layout.VAlign) { r.valign = v }

func (r *recorder) MeasureText(text string) float64 {
	r.measured = append(r.measured, r.family)
	adv, ok := r.advance[r.family]
	if !ok {
		adv = 0.5
	}
	return float64(utf8.RuneCountInString(text)) * r.size * adv
}

func (r *recorder) FillText(text string, x, y float64) {
	r.ops = append(r.ops, op{
		Kind: "text", Text: text, X: x, Y: y, Color: r.fill,
		Family: r.family, Size: r.size, H: r.halign, V: r.valign,
	})
}

func (r *recorder) DrawImage(img image.Image, dst layout.Rect) {
	r.ops = append(r.ops, op{Kind: "image", Rect: dst})
}

func (r *recorder) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, r.w, r.h))
}

func (r *recorder) texts() []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == "text" {
			out = append(out, o)
		}
	}
	return out
}
