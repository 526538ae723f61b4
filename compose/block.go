package compose

import (
	"fmt"
	"image/color"

	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/renderer"
)

const debugCaptionSize = 12

var (
	debugFill   = color.NRGBA{255, 0, 0, 30}
	debugStroke = color.NRGBA{255, 0, 0, 200}
)

// BlockRenderer 在 Surface 上绘制单个文本块。
type BlockRenderer struct {
	// Fonts 是已注册的自定义字体族，未注册的字体族替换为 fonts.DefaultFamily。
	Fonts fonts.Set
	// Debug 为 true 时额外绘制区域边框与字段标签。
	Debug bool
}

// Render 依次绘制背景（原始区域，可选模糊）、调试框以及文本。
// 文本的锚点与换行基于扣除 padding 后的区域计算；测量与绘制使用同一个替换后的字体族。
// 颜色无法解析时返回错误，区域尺寸为零或负数时按退化区域绘制而不报错。
func (b *BlockRenderer) Render(s renderer.Surface, field, text string, spec layout.TextBlockSpec) error {
	fg, err := textColor(spec.Color)
	if err != nil {
		return fmt.Errorf("字段 %s 的文字颜色: %w", field, err)
	}
	var bg color.Color
	if spec.Background != "" {
		if bg, err = renderer.ParseColor(spec.Background); err != nil {
			return fmt.Errorf("字段 %s 的背景色: %w", field, err)
		}
	}

	if bg != nil {
		s.FillRect(spec.Rect, bg, spec.BackgroundBlur)
	}
	if b.Debug {
		b.drawDebug(s, field, spec)
	}

	family := b.Fonts.Resolve(spec.FontFamily)
	if family != spec.FontFamily {
		Logger().Debug("字体未注册，使用默认字体", "field", field, "family", spec.FontFamily, "fallback", family)
	}
	s.SetFont(family, spec.FontSize)
	s.SetFillColor(fg)

	plan := layout.PlanBlock(text, spec, s)
	s.SetTextAlign(plan.Anchor.H)
	s.SetTextBaseline(plan.Anchor.V)
	for _, line := range plan.Lines {
		s.FillText(line.Text, plan.Anchor.X, line.Y)
	}
	return nil
}

func textColor(c string) (color.Color, error) {
	if c == "" {
		return color.Black, nil
	}
	return renderer.ParseColor(c)
}

func (b *BlockRenderer) drawDebug(s renderer.Surface, field string, spec layout.TextBlockSpec) {
	s.FillRect(spec.Rect, debugFill, 0)
	s.StrokeRect(spec.Rect, debugStroke, 1)

	status := "ok"
	if !b.Fonts.Has(spec.FontFamily) {
		status = "fallback"
	}
	s.SetFont(fonts.DefaultFamily, debugCaptionSize)
	s.SetFillColor(debugStroke)
	s.SetTextAlign(layout.HLeft)
	s.SetTextBaseline(layout.VTop)
	s.FillText(fmt.Sprintf("%s (%s: %s)", field, spec.FontFamily, status), spec.X+2, spec.Y+2)
}
