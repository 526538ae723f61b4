package layout

// 该文件定义卡面布局使用的几何与样式类型，供排版、渲染与调试 JSON 共用。
// 所有坐标均以像素为单位，原点在左上角，y 轴向下。

// Rect 是一个轴对齐的矩形区域。
// 宽高在内边距扣减后可能为负数，此时文本退化为零面积区域，不做截断。
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Inset 返回四边各收缩 p 像素后的矩形。
func (r Rect) Inset(p float64) Rect {
	return Rect{
		X:      r.X + p,
		Y:      r.Y + p,
		Width:  r.Width - 2*p,
		Height: r.Height - 2*p,
	}
}

// Point 是画布上的一个像素坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextStyle 描述一个文本块的字体与颜色，渲染前一次性解析。
type TextStyle struct {
	FontSize   float64 `json:"fontSize" yaml:"font-size"`
	FontFamily string  `json:"fontFamily" yaml:"font-family"`
	Color      string  `json:"color" yaml:"color"`
}

// TextBlockSpec 描述卡面上一个文本块：区域、对齐、样式以及可选的换行/背景设置。
// 同一次生成中对所有记录共享，渲染期间只读。
type TextBlockSpec struct {
	Rect      `yaml:",inline"`
	Align     Alignment `json:"align" yaml:"align"`
	TextStyle `yaml:",inline"`

	MaxWidth       float64 `json:"maxWidth,omitempty" yaml:"max-width"`
	LineHeight     float64 `json:"lineHeight,omitempty" yaml:"line-height"`
	Padding        float64 `json:"padding,omitempty" yaml:"padding"`
	Background     string  `json:"backgroundColor,omitempty" yaml:"background"`
	BackgroundBlur float64 `json:"backgroundBlurRadius,omitempty" yaml:"background-blur"`
}

// TextRect 返回用于锚点与换行计算的区域：padding > 0 时为内缩矩形。
// 背景填充始终使用原始 Rect。
func (s TextBlockSpec) TextRect() Rect {
	if s.Padding > 0 {
		return s.Rect.Inset(s.Padding)
	}
	return s.Rect
}

// EffectiveLineHeight 返回显式行高，未设置时为字号的 DefaultLineHeightFactor 倍。
func (s TextBlockSpec) EffectiveLineHeight() float64 {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	return s.FontSize * DefaultLineHeightFactor
}

// RenderedLine 是换行后的一行文本及其绘制 y 坐标（相对于垂直对齐模式的参考线）。
type RenderedLine struct {
	Text string  `json:"text"`
	Y    float64 `json:"y"`
}
