package layout

import (
	"fmt"
	"strings"
)

// HAlign 是水平对齐方式，同时作为画布的 text-align 设置。
type HAlign int

const (
	HCenter HAlign = iota
	HLeft
	HRight
)

func (h HAlign) String() string {
	switch h {
	case HLeft:
		return "left"
	case HRight:
		return "right"
	default:
		return "center"
	}
}

// VAlign 是垂直对齐方式，同时作为画布的 text-baseline 设置。
type VAlign int

const (
	VMiddle VAlign = iota
	VTop
	VBottom
)

func (v VAlign) String() string {
	switch v {
	case VTop:
		return "top"
	case VBottom:
		return "bottom"
	default:
		return "middle"
	}
}

// Alignment 由水平与垂直两个正交分量组成。零值为 center。
type Alignment struct {
	H HAlign
	V VAlign
}

// 九种对齐关键字对应的预定义值。
var (
	TopLeft      = Alignment{HLeft, VTop}
	TopCenter    = Alignment{HCenter, VTop}
	TopRight     = Alignment{HRight, VTop}
	Left         = Alignment{HLeft, VMiddle}
	Center       = Alignment{HCenter, VMiddle}
	Right        = Alignment{HRight, VMiddle}
	BottomLeft   = Alignment{HLeft, VBottom}
	BottomCenter = Alignment{HCenter, VBottom}
	BottomRight  = Alignment{HRight, VBottom}
)

var alignmentKeywords = map[string]Alignment{
	"top-left":      TopLeft,
	"top-center":    TopCenter,
	"top-right":     TopRight,
	"left":          Left,
	"center":        Center,
	"right":         Right,
	"bottom-left":   BottomLeft,
	"bottom-center": BottomCenter,
	"bottom-right":  BottomRight,
}

// ParseAlignment 解析九个对齐关键字之一。未知关键字返回 Center 与 false。
func ParseAlignment(s string) (Alignment, bool) {
	a, ok := alignmentKeywords[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Center, false
	}
	return a, true
}

// String 返回关键字形式；越界的分量按 center/middle 处理。
func (a Alignment) String() string {
	a = a.normalize()
	switch {
	case a.V == VMiddle && a.H == HCenter:
		return "center"
	case a.V == VMiddle:
		return a.H.String()
	default:
		return a.V.String() + "-" + a.H.String()
	}
}

func (a Alignment) normalize() Alignment {
	if a.H < HCenter || a.H > HRight {
		a.H = HCenter
	}
	if a.V < VMiddle || a.V > VBottom {
		a.V = VMiddle
	}
	return a
}

// MarshalText 让 Alignment 在 JSON/YAML 中以关键字出现。
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 接受九个关键字；无法识别的值回退为 center 而不报错。
func (a *Alignment) UnmarshalText(b []byte) error {
	*a, _ = ParseAlignment(string(b))
	return nil
}

// Anchor 是文本绘制的参考点以及对应的 text-align / text-baseline 模式。
type Anchor struct {
	Point
	H HAlign
	V VAlign
}

func (a Anchor) String() string {
	return fmt.Sprintf("(%g,%g) %s/%s", a.X, a.Y, a.H, a.V)
}

// Resolve 将矩形与对齐方式映射为锚点。水平、垂直分量分别查表。
func Resolve(r Rect, a Alignment) Anchor {
	a = a.normalize()
	anchor := Anchor{H: a.H, V: a.V}
	switch a.H {
	case HLeft:
		anchor.X = r.X
	case HRight:
		anchor.X = r.X + r.Width
	default:
		anchor.X = r.X + r.Width/2
	}
	switch a.V {
	case VTop:
		anchor.Y = r.Y
	case VBottom:
		anchor.Y = r.Y + r.Height
	default:
		anchor.Y = r.Y + r.Height/2
	}
	return anchor
}

// ResolveKeyword 与 Resolve 相同，但接受字符串关键字；未知关键字按 center 处理。
func ResolveKeyword(r Rect, keyword string) Anchor {
	a, _ := ParseAlignment(keyword)
	return Resolve(r, a)
}
