package compose

import (
	"fmt"
	"math"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/M4cs/beetlegame-webp/layout"
	"github.com/M4cs/beetlegame-webp/renderer"
)

// QRCode 在卡面指定区域绘制记录字段内容的二维码。
type QRCode struct {
	Rect  layout.Rect
	Field string
}

// Draw 生成二维码并绘制到 Rect。
func (q *QRCode) Draw(s renderer.Surface, value string) error {
	size := int(math.Round(math.Min(q.Rect.Width, q.Rect.Height)))
	if size <= 0 {
		return fmt.Errorf("二维码区域过小: %+v", q.Rect)
	}
	code, err := qrcode.New(value, qrcode.Medium)
	if err != nil {
		return err
	}
	s.DrawImage(code.Image(size), layout.Rect{X: q.Rect.X, Y: q.Rect.Y, Width: float64(size), Height: float64(size)})
	return nil
}
