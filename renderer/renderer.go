package renderer

import (
	"image"
	"image/color"

	"github.com/M4cs/beetlegame-webp/layout"
)

// Surface 是单张卡面的绘制表面。每张卡使用独立的 Surface，不可跨 goroutine 共享。
//
// 字体、填充色、对齐与基线是可变状态，MeasureText 与 FillText 都基于当前状态；
// 调用方必须先 SetFont 再测量。未注册的字体族由实现静默替换为默认字体。
type Surface interface {
	layout.Measurer

	Width() int
	Height() int

	// FillRect 填充矩形。blur > 0 时仅对这一次填充施加高斯模糊。
	FillRect(r layout.Rect, c color.Color, blur float64)
	StrokeRect(r layout.Rect, c color.Color, lineWidth float64)

	SetFont(family string, size float64)
	SetFillColor(c color.Color)
	SetTextAlign(h layout.HAlign)
	SetTextBaseline(v layout.VAlign)
	FillText(text string, x, y float64)

	// DrawImage 将 img 缩放到 dst 后绘制。
	DrawImage(img image.Image, dst layout.Rect)

	// Image 返回当前画面。
	Image() image.Image
}

// Factory 为每张卡创建新的 Surface。
type Factory func(width, height int) Surface
