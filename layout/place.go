package layout

// DefaultLineHeightFactor 是未设置行高时相对字号的倍数。
const DefaultLineHeightFactor = 1.2

// BlockPlan 是一个文本块的最终放置结果，BlockRenderer 按它发出绘制调用。
type BlockPlan struct {
	Background Rect           `json:"background"`
	TextRect   Rect           `json:"textRect"`
	Anchor     Anchor         `json:"anchor"`
	LineHeight float64        `json:"lineHeight"`
	Lines      []RenderedLine `json:"lines"`
}

// PlanBlock 计算文本块的锚点、换行与每行的 y 坐标。
// m 必须已经使用最终绘制所用的字体，否则换行结果与绘制不一致。
func PlanBlock(text string, spec TextBlockSpec, m Measurer) BlockPlan {
	textRect := spec.TextRect()
	anchor := Resolve(textRect, spec.Align)

	lines := []string{text}
	if NeedsWrap(text, spec) {
		maxWidth := spec.MaxWidth
		if maxWidth <= 0 {
			maxWidth = textRect.Width
		}
		lines = Wrap(text, maxWidth, m)
	}

	lineHeight := spec.EffectiveLineHeight()
	firstY := FirstLineY(anchor.Y, anchor.V, len(lines), lineHeight)
	rendered := make([]RenderedLine, len(lines))
	for i, line := range lines {
		rendered[i] = RenderedLine{Text: line, Y: firstY + float64(i)*lineHeight}
	}

	return BlockPlan{
		Background: spec.Rect,
		TextRect:   textRect,
		Anchor:     anchor,
		LineHeight: lineHeight,
		Lines:      rendered,
	}
}

// FirstLineY 根据垂直对齐把多行文本整体相对锚点偏移：
// 底部对齐时最后一行落在锚点，居中时整体居中，顶部对齐不偏移。
func FirstLineY(anchorY float64, v VAlign, lineCount int, lineHeight float64) float64 {
	total := float64(lineCount) * lineHeight
	switch v {
	case VTop:
		return anchorY
	case VBottom:
		return anchorY - total + lineHeight
	default:
		return anchorY - total/2 + lineHeight/2
	}
}
