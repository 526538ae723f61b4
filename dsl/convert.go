package dsl

import (
	"io"
	"os"
	"strings"

	"github.com/M4cs/beetlegame-webp/layout"
)

// QR 描述二维码区域以及取值字段。
type QR struct {
	Rect  layout.Rect
	Field string
}

// Layout 是 .cardlayout 文件求值后的结果。
type Layout struct {
	Overrides layout.Overrides
	QR        *QR
}

// Load 读取并求值 .cardlayout 文件。
func Load(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(path, f)
}

// Read 解析并求值 r 中的 .cardlayout 文档。
func Read(filename string, r io.Reader) (*Layout, error) {
	file, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return file.Layout()
}

// Layout 将语法树转换为布局覆盖。未知的段、属性或对齐关键字都是错误。
// 同名 field 段后出现的整体替换先出现的。
func (f *File) Layout() (*Layout, error) {
	out := &Layout{Overrides: layout.Overrides{Fields: layout.CardLayout{}}}
	for _, sec := range f.Sections {
		var err error
		switch sec.Kind {
		case "canvas":
			err = sec.applyCanvas(&out.Overrides)
		case "artwork":
			err = sec.applyArtwork(&out.Overrides)
		case "qr":
			out.QR, err = sec.qr()
		case "field":
			if sec.Name == "" {
				return nil, errorf(sec.Pos, "field 段缺少字段名")
			}
			spec, ferr := sec.field()
			if ferr != nil {
				return nil, ferr
			}
			out.Overrides.Fields[strings.ToLower(sec.Name)] = spec
		default:
			return nil, errorf(sec.Pos, "未知的段 %q", sec.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Section) applyCanvas(o *layout.Overrides) error {
	for _, p := range s.Properties {
		switch p.Key {
		case "size":
			nums, err := p.numbers(2)
			if err != nil {
				return err
			}
			if nums[0] <= 0 || nums[1] <= 0 {
				return errorf(p.Pos, "画布尺寸必须为正数")
			}
			o.Width, o.Height = int(nums[0]), int(nums[1])
		case "background":
			v, err := p.text()
			if err != nil {
				return err
			}
			o.Background = v
		default:
			return p.unknown("canvas")
		}
	}
	return nil
}

func (s *Section) applyArtwork(o *layout.Overrides) error {
	for _, p := range s.Properties {
		switch p.Key {
		case "rect":
			r, err := p.rect()
			if err != nil {
				return err
			}
			o.Artwork = &r
		case "placeholder":
			v, err := p.text()
			if err != nil {
				return err
			}
			o.Placeholder = v
		default:
			return p.unknown("artwork")
		}
	}
	return nil
}

func (s *Section) qr() (*QR, error) {
	q := &QR{}
	hasRect := false
	for _, p := range s.Properties {
		switch p.Key {
		case "rect":
			r, err := p.rect()
			if err != nil {
				return nil, err
			}
			q.Rect, hasRect = r, true
		case "field":
			v, err := p.text()
			if err != nil {
				return nil, err
			}
			q.Field = v
		default:
			return nil, p.unknown("qr")
		}
	}
	if !hasRect || q.Field == "" {
		return nil, errorf(s.Pos, "qr 段需要 rect 与 field")
	}
	return q, nil
}

func (s *Section) field() (layout.TextBlockSpec, error) {
	var (
		spec       layout.TextBlockSpec
		lineHeight *layout.LineHeightSpec
		hasRect    bool
	)
	for _, p := range s.Properties {
		switch p.Key {
		case "rect":
			r, err := p.rect()
			if err != nil {
				return spec, err
			}
			spec.Rect, hasRect = r, true
		case "align":
			v, err := p.text()
			if err != nil {
				return spec, err
			}
			a, ok := layout.ParseAlignment(v)
			if !ok {
				return spec, errorf(p.Values[0].Pos, "未知的对齐方式 %q", v)
			}
			spec.Align = a
		case "font":
			for _, v := range p.Values {
				if v.Number != nil {
					size, err := v.length()
					if err != nil {
						return spec, err
					}
					spec.FontSize = size
					continue
				}
				spec.FontFamily = v.Text()
			}
		case "size", "font-size":
			n, err := p.length()
			if err != nil {
				return spec, err
			}
			spec.FontSize = n
		case "color":
			v, err := p.text()
			if err != nil {
				return spec, err
			}
			spec.Color = v
		case "max-width":
			n, err := p.length()
			if err != nil {
				return spec, err
			}
			spec.MaxWidth = n
		case "line-height":
			v, err := p.text()
			if err != nil {
				return spec, err
			}
			lh, err := layout.ParseLineHeight(v)
			if err != nil {
				return spec, errorf(p.Pos, "%v", err)
			}
			lineHeight = &lh
		case "padding":
			n, err := p.length()
			if err != nil {
				return spec, err
			}
			spec.Padding = n
		case "background":
			v, err := p.text()
			if err != nil {
				return spec, err
			}
			spec.Background = v
		case "blur":
			n, err := p.length()
			if err != nil {
				return spec, err
			}
			spec.BackgroundBlur = n
		default:
			return spec, p.unknown("field " + s.Name)
		}
	}
	if !hasRect {
		return spec, errorf(s.Pos, "field %s 缺少 rect", s.Name)
	}
	if spec.FontSize <= 0 {
		return spec, errorf(s.Pos, "field %s 缺少字号", s.Name)
	}
	// 倍数行高依赖字号，所有属性读完后再求值。
	if lineHeight != nil {
		spec.LineHeight = lineHeight.Resolve(spec.FontSize)
	}
	return spec, nil
}

func (p *Property) unknown(section string) *Error {
	return errorf(p.Pos, "%s 中未知的属性 %q", section, p.Key)
}

func (p *Property) text() (string, error) {
	if len(p.Values) != 1 {
		return "", errorf(p.Pos, "%s 需要 1 个值，得到 %d 个", p.Key, len(p.Values))
	}
	return p.Values[0].Text(), nil
}

func (p *Property) length() (float64, error) {
	nums, err := p.numbers(1)
	if err != nil {
		return 0, err
	}
	return nums[0], nil
}

func (p *Property) numbers(n int) ([]float64, error) {
	if len(p.Values) != n {
		return nil, errorf(p.Pos, "%s 需要 %d 个数值，得到 %d 个", p.Key, n, len(p.Values))
	}
	out := make([]float64, n)
	for i, v := range p.Values {
		f, err := v.length()
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// rect 接受 "x y w h"，或正方形区域的 "x y size"。
func (p *Property) rect() (layout.Rect, error) {
	n := 4
	if len(p.Values) == 3 {
		n = 3
	}
	nums, err := p.numbers(n)
	if err != nil {
		return layout.Rect{}, err
	}
	if n == 3 {
		return layout.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[2]}, nil
	}
	return layout.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, nil
}

func (v *Value) length() (float64, error) {
	if v.Number == nil {
		return 0, errorf(v.Pos, "需要数值，得到 %q", v.Text())
	}
	if strings.HasSuffix(*v.Number, "x") {
		return 0, errorf(v.Pos, "倍数 %q 只能用于 line-height", *v.Number)
	}
	l, err := layout.ParseLength(*v.Number)
	if err != nil {
		return 0, errorf(v.Pos, "%v", err)
	}
	return l.PX(), nil
}
