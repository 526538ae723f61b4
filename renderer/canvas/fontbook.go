package canvasrenderer

import (
	"fmt"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/M4cs/beetlegame-webp/fonts"
)

// FontBook 持有已注册的 canvas 字体族。注册只在批处理开始前进行，之后只读，
// 可以被多张卡的 Surface 并发读取。
type FontBook struct {
	mu       sync.RWMutex
	families map[string]*canvas.FontFamily
	fallback *canvas.FontFamily
}

// NewFontBook 创建只包含默认字体的 FontBook。
func NewFontBook() (*FontBook, error) {
	fallback := canvas.NewFontFamily(fonts.DefaultFamily)
	if err := fallback.LoadFont(fonts.Fallback(), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载默认字体失败: %w", err)
	}
	return &FontBook{
		families: map[string]*canvas.FontFamily{},
		fallback: fallback,
	}, nil
}

// Register 注册一个字体族；解析失败时不会加入集合。
func (b *FontBook) Register(blob fonts.Blob) error {
	family := canvas.NewFontFamily(blob.Family)
	if err := family.LoadFont(blob.Data, 0, canvas.FontRegular); err != nil {
		return fmt.Errorf("注册字体 %s 失败: %w", blob.Family, err)
	}
	b.mu.Lock()
	b.families[blob.Family] = family
	b.mu.Unlock()
	return nil
}

// Set 返回已注册字体族的不可变快照（不含默认字体）。
func (b *FontBook) Set() fonts.Set {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.families))
	for name := range b.families {
		names = append(names, name)
	}
	return fonts.NewSet(names...)
}

// family 返回字体族，未注册时静默回退到默认字体。
func (b *FontBook) family(name string) *canvas.FontFamily {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if f, ok := b.families[name]; ok {
		return f
	}
	return b.fallback
}
