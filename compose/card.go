package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/record"
	"github.com/M4cs/beetlegame-webp/renderer"
)

// 记录中引用外部图片的默认列名。
const (
	DefaultArtworkField  = "image"
	DefaultTemplateField = "element"
)

const (
	placeholderCaption     = "Image not found"
	placeholderCaptionSize = 24
)

var placeholderCaptionColor = color.NRGBA{0x9a, 0x9a, 0x9a, 0xff}

// ImageResolver 根据引用（URL、路径或元素名）返回解码后的图片。
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (image.Image, error)
}

// Composer 把一条记录合成为一张卡面。
// 绘制顺序固定：底色 → 背景模板 → 插画 → 各文本字段 → 二维码。
type Composer struct {
	Canvas     layout.Canvas
	Layout     layout.CardLayout
	Fonts      fonts.Set
	NewSurface renderer.Factory

	Templates     ImageResolver
	Artwork       ImageResolver
	TemplateField string
	ArtworkField  string

	QR    *QRCode
	Debug bool
}

// Compose 在新的 Surface 上合成一张卡。
// 模板或插画不可用时记录警告并使用回退效果；颜色非法等错误返回给调用方。
func (c *Composer) Compose(ctx context.Context, rec record.Record) (renderer.Surface, error) {
	if c.NewSurface == nil {
		return nil, fmt.Errorf("compose: 缺少 Surface 工厂")
	}
	bg, err := renderer.ParseColor(c.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("画布底色: %w", err)
	}

	s := c.NewSurface(c.Canvas.Width, c.Canvas.Height)
	full := layout.Rect{Width: float64(c.Canvas.Width), Height: float64(c.Canvas.Height)}
	s.FillRect(full, bg, 0)

	c.drawTemplate(ctx, s, rec, full)
	if err := c.drawArtwork(ctx, s, rec); err != nil {
		return nil, err
	}

	blocks := BlockRenderer{Fonts: c.Fonts, Debug: c.Debug}
	for _, field := range c.Layout.Fields() {
		text := rec.Get(field)
		if text == "" {
			continue
		}
		if err := blocks.Render(s, field, text, c.Layout[field]); err != nil {
			return nil, err
		}
	}

	if c.QR != nil {
		if value := rec.Get(c.QR.Field); value != "" {
			if err := c.QR.Draw(s, value); err != nil {
				Logger().Warn("二维码生成失败", "card", rec.Label(), "error", err)
			}
		}
	}
	return s, nil
}

func (c *Composer) drawTemplate(ctx context.Context, s renderer.Surface, rec record.Record, full layout.Rect) {
	if c.Templates == nil {
		return
	}
	name := rec.Get(fieldOr(c.TemplateField, DefaultTemplateField))
	img, err := c.Templates.Resolve(ctx, name)
	if err != nil {
		Logger().Warn("背景模板不可用，使用纯色背景", "card", rec.Label(), "template", name, "error", err)
		return
	}
	s.DrawImage(img, full)
}

func (c *Composer) drawArtwork(ctx context.Context, s renderer.Surface, rec record.Record) error {
	ref := rec.Get(fieldOr(c.ArtworkField, DefaultArtworkField))
	var (
		img image.Image
		err error
	)
	if c.Artwork == nil {
		err = fmt.Errorf("未配置插画解析器")
	} else {
		img, err = c.Artwork.Resolve(ctx, ref)
	}
	if err == nil {
		s.DrawImage(img, c.Canvas.Artwork)
		return nil
	}

	Logger().Warn("插画不可用，绘制占位图", "card", rec.Label(), "artwork", ref, "error", err)
	placeholder, perr := renderer.ParseColor(fieldOr(c.Canvas.ArtworkPlaceholder, layout.DefaultCanvas().ArtworkPlaceholder))
	if perr != nil {
		return fmt.Errorf("插画占位色: %w", perr)
	}
	s.FillRect(c.Canvas.Artwork, placeholder, 0)
	anchor := layout.Resolve(c.Canvas.Artwork, layout.Center)
	s.SetFont(fonts.DefaultFamily, placeholderCaptionSize)
	s.SetFillColor(placeholderCaptionColor)
	s.SetTextAlign(anchor.H)
	s.SetTextBaseline(anchor.V)
	s.FillText(placeholderCaption, anchor.X, anchor.Y)
	return nil
}

func fieldOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
