package layout

import "strings"

// Measurer 返回文本在当前字体下的像素宽度。
// 实现通常依赖画布当前的字体状态，调用方需先设置字体。
type Measurer interface {
	MeasureText(text string) float64
}

// MeasureFunc 将普通函数适配为 Measurer。
type MeasureFunc func(text string) float64

func (f MeasureFunc) MeasureText(text string) float64 { return f(text) }

// Wrap 使用贪心算法按单个空格分词换行。
//
// 首个单词总是独占当前行（即使本身超宽，也不会在词内断开）；之后每个单词尝试以
// " "+word 追加，追加后的宽度严格小于 maxWidth 才接受，否则另起一行。
// 最后一行无条件输出，因此空字符串得到一个空行。
func Wrap(text string, maxWidth float64, m Measurer) []string {
	words := strings.Split(text, " ")
	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.MeasureText(candidate) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// NeedsWrap 判断一个文本块是否走换行流程：声明了最大宽度，或文本中含有空格。
// 不含空格且未声明最大宽度的文本按单行绘制，即使视觉上溢出。
func NeedsWrap(text string, spec TextBlockSpec) bool {
	return spec.MaxWidth > 0 || strings.Contains(text, " ")
}
