package canvasrenderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/renderer"
)

// resolution 让 canvas 的 1mm 对应一个像素，布局中的像素值可直接当作 canvas 单位使用。
var resolution = canvas.DPMM(1.0)

var transparent = color.RGBA{0, 0, 0, 0}

// Surface 基于 github.com/tdewolff/canvas 的栅格化器实现 renderer.Surface。
// 绘制立即写入底层 *image.RGBA。canvas 使用 y 轴向上的坐标，这里在边界处翻转。
type Surface struct {
	img  *image.RGBA
	ctx  *canvas.Context
	book *FontBook

	family *canvas.FontFamily
	size   float64
	fill   color.Color
	halign layout.HAlign
	valign layout.VAlign
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface 创建 width×height 像素的透明画布。
func NewSurface(width, height int, book *FontBook) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	s := &Surface{
		img:    img,
		ctx:    newContext(img),
		book:   book,
		family: book.family(""),
		size:   16,
		fill:   color.Black,
		halign: layout.HLeft,
		valign: layout.VTop,
	}
	return s
}

// Factory 返回使用该 FontBook 的 renderer.Factory。
func (b *FontBook) Factory() renderer.Factory {
	return func(width, height int) renderer.Surface {
		return NewSurface(width, height, b)
	}
}

func newContext(img draw.Image) *canvas.Context {
	return canvas.NewContext(rasterizer.FromImage(img, resolution, canvas.LinearColorSpace{}))
}

func (s *Surface) Width() int  { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Image 返回底层图像，后续绘制会继续修改它。
func (s *Surface) Image() image.Image { return s.img }

// flipY 将左上原点的 y 转换为 canvas 的左下原点。
func (s *Surface) flipY(y float64) float64 { return float64(s.Height()) - y }

func (s *Surface) FillRect(r layout.Rect, c color.Color, blur float64) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	if blur <= 0 {
		s.fillRect(s.ctx, r, c)
		return
	}
	// 模糊只作用于这一次填充：先画到独立图层，模糊后再叠加。
	layer := image.NewRGBA(s.img.Bounds())
	s.fillRect(newContext(layer), r, c)
	blurred := imaging.Blur(layer, blur)
	draw.Draw(s.img, s.img.Bounds(), blurred, image.Point{}, draw.Over)
}

func (s *Surface) fillRect(ctx *canvas.Context, r layout.Rect, c color.Color) {
	ctx.SetFillColor(c)
	ctx.SetStrokeColor(transparent)
	ctx.DrawPath(r.X, s.flipY(r.Y+r.Height), canvas.Rectangle(r.Width, r.Height))
}

func (s *Surface) StrokeRect(r layout.Rect, c color.Color, lineWidth float64) {
	if r.Width <= 0 || r.Height <= 0 || lineWidth <= 0 {
		return
	}
	s.ctx.SetFillColor(transparent)
	s.ctx.SetStrokeColor(c)
	s.ctx.SetStrokeWidth(lineWidth)
	s.ctx.DrawPath(r.X, s.flipY(r.Y+r.Height), canvas.Rectangle(r.Width, r.Height))
}

// SetFont 设置当前字体，size 为像素。未注册的字体族由 FontBook 替换为默认字体。
func (s *Surface) SetFont(family string, size float64) {
	s.family = s.book.family(family)
	s.size = size
}

func (s *Surface) SetFillColor(c color.Color) { s.fill = c }

func (s *Surface) SetTextAlign(h layout.HAlign) { s.halign = h }

func (s *Surface) SetTextBaseline(v layout.VAlign) { s.valign = v }

// face 按当前字体状态创建字体面。canvas 的字号单位为 pt。
func (s *Surface) face() *canvas.FontFace {
	return s.family.Face(s.size*layout.MmToPt, s.fill, canvas.FontRegular, canvas.FontNormal)
}

// MeasureText 返回文本在当前字体下的像素宽度，每次调用都重新测量。
func (s *Surface) MeasureText(text string) float64 {
	return s.face().TextWidth(text)
}

// FillText 以 (x, y) 为参考点绘制单行文本，参考点含义由 text-align 与 text-baseline 决定。
func (s *Surface) FillText(text string, x, y float64) {
	face := s.face()
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent, math.Abs(metrics.Descent)

	var baseline float64
	switch s.valign {
	case layout.VTop:
		baseline = y + ascent
	case layout.VBottom:
		baseline = y - descent
	default:
		baseline = y + (ascent-descent)/2
	}
	line := canvas.NewTextLine(face, text, textAlign(s.halign))
	s.ctx.DrawText(x, s.flipY(baseline), line)
}

func textAlign(h layout.HAlign) canvas.TextAlign {
	switch h {
	case layout.HLeft:
		return canvas.Left
	case layout.HRight:
		return canvas.Right
	default:
		return canvas.Center
	}
}

// DrawImage 将图片缩放到目标矩形后叠加。
func (s *Surface) DrawImage(img image.Image, dst layout.Rect) {
	w, h := int(math.Round(dst.Width)), int(math.Round(dst.Height))
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)
	x, y := int(math.Round(dst.X)), int(math.Round(dst.Y))
	draw.Draw(s.img, image.Rect(x, y, x+w, y+h), scaled, image.Point{}, draw.Over)
}
