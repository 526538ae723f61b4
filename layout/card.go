package layout

import (
	"maps"
	"slices"
)

// 卡面文本字段，按此顺序绘制。
const (
	FieldName   = "name"
	FieldCost   = "cost"
	FieldType   = "type"
	FieldSkills = "skills"
	FieldLore   = "lore"
	FieldAttack = "attack"
	FieldArmor  = "armor"
)

// FieldOrder 是文本块的固定绘制顺序。
var FieldOrder = []string{FieldName, FieldCost, FieldType, FieldSkills, FieldLore, FieldAttack, FieldArmor}

// CardLayout 将逻辑字段名映射到文本块描述。
type CardLayout map[string]TextBlockSpec

// Merge 返回合并后的新布局：overrides 中出现的字段整体替换默认值，
// 不做子属性级别的合并（只覆盖 color 会丢掉该字段的其它默认设置）。
func (l CardLayout) Merge(overrides CardLayout) CardLayout {
	out := maps.Clone(l)
	if out == nil {
		out = CardLayout{}
	}
	maps.Copy(out, overrides)
	return out
}

// Fields 返回布局中定义的字段：先按 FieldOrder，再按字母序追加额外字段。
func (l CardLayout) Fields() []string {
	out := make([]string, 0, len(l))
	for _, f := range FieldOrder {
		if _, ok := l[f]; ok {
			out = append(out, f)
		}
	}
	var extra []string
	for f := range l {
		if !slices.Contains(FieldOrder, f) {
			extra = append(extra, f)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Canvas 描述画布尺寸、底色以及插画区域。
type Canvas struct {
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	Background         string `json:"background"`
	Artwork            Rect   `json:"artwork"`
	ArtworkPlaceholder string `json:"artworkPlaceholder"`
}

// Overrides 是调用方提供的部分配置，零值字段不覆盖默认值。
type Overrides struct {
	Width       int
	Height      int
	Background  string
	Artwork     *Rect
	Placeholder string // 插画缺失时的占位底色
	Fields      CardLayout
}

// Apply 把 o 中的非零画布设置覆盖到 c 上。
func (c Canvas) Apply(o Overrides) Canvas {
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Background != "" {
		c.Background = o.Background
	}
	if o.Artwork != nil {
		c.Artwork = *o.Artwork
	}
	if o.Placeholder != "" {
		c.ArtworkPlaceholder = o.Placeholder
	}
	return c
}

const (
	defaultTitleFamily = "Cinzel"
	defaultBodyFamily  = "Crimson Text"
	textColor          = "#f5efe0"
)

// DefaultCanvas 返回 750×1050 的标准卡面。
func DefaultCanvas() Canvas {
	return Canvas{
		Width:              750,
		Height:             1050,
		Background:         "#14110f",
		Artwork:            Rect{X: 50, Y: 120, Width: 650, Height: 480},
		ArtworkPlaceholder: "#2b2b2b",
	}
}

// DefaultCardLayout 返回内置的字段布局，每次调用返回新的 map。
func DefaultCardLayout() CardLayout {
	return CardLayout{
		FieldName: {
			Rect:      Rect{X: 40, Y: 30, Width: 540, Height: 70},
			Align:     Left,
			TextStyle: TextStyle{FontSize: 44, FontFamily: defaultTitleFamily, Color: textColor},
		},
		FieldCost: {
			Rect:      Rect{X: 610, Y: 25, Width: 100, Height: 80},
			Align:     Center,
			TextStyle: TextStyle{FontSize: 48, FontFamily: defaultTitleFamily, Color: "#ffd54a"},
		},
		FieldType: {
			Rect:      Rect{X: 50, Y: 610, Width: 650, Height: 40},
			Align:     Center,
			TextStyle: TextStyle{FontSize: 26, FontFamily: defaultTitleFamily, Color: "#d8c9a3"},
		},
		FieldSkills: {
			Rect:       Rect{X: 50, Y: 660, Width: 650, Height: 100},
			Align:      TopCenter,
			TextStyle:  TextStyle{FontSize: 24, FontFamily: defaultBodyFamily, Color: textColor},
			MaxWidth:   630,
			Padding:    8,
			Background: "rgba(0, 0, 0, 0.45)",
		},
		FieldLore: {
			Rect:           Rect{X: 60, Y: 770, Width: 630, Height: 150},
			Align:          Center,
			TextStyle:      TextStyle{FontSize: 22, FontFamily: defaultBodyFamily, Color: "#e0d6c2"},
			MaxWidth:       600,
			LineHeight:     28,
			Padding:        10,
			Background:     "rgba(0, 0, 0, 0.35)",
			BackgroundBlur: 4,
		},
		FieldAttack: {
			Rect:      Rect{X: 40, Y: 940, Width: 140, Height: 80},
			Align:     BottomLeft,
			TextStyle: TextStyle{FontSize: 56, FontFamily: defaultTitleFamily, Color: "#ff6b4a"},
		},
		FieldArmor: {
			Rect:      Rect{X: 570, Y: 940, Width: 140, Height: 80},
			Align:     BottomRight,
			TextStyle: TextStyle{FontSize: 56, FontFamily: defaultTitleFamily, Color: "#6bb8ff"},
		},
	}
}
