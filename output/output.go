// Package output 把合成好的卡面编码后写入输出目录。
package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/M4cs/beetlegame-webp/binding"
	"github.com/M4cs/beetlegame-webp/compose"
	"github.com/M4cs/beetlegame-webp/record"
)

// DefaultPattern 是默认的文件名模板。
const DefaultPattern = "${name}.png"

// Writer 按文件名模板写出图片，格式由扩展名决定（png/jpg/gif/bmp/tif）。
// 同一次运行中文件名重复时，后写入的卡追加 -<行号> 后缀，不覆盖已有文件。
type Writer struct {
	Dir     string
	Pattern string

	mu      sync.Mutex
	written map[string]int
}

// New 创建输出目录。目录无法创建属于致命错误，应终止整个批处理。
func New(dir, pattern string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := imaging.FormatFromFilename(pattern); err != nil {
		return nil, fmt.Errorf("不支持的输出格式 %q: %w", filepath.Ext(pattern), err)
	}
	return &Writer{Dir: dir, Pattern: pattern}, nil
}

// Path 返回记录对应的输出路径。${index} 为从 1 开始的行号。
func (w *Writer) Path(rec record.Record, index int) string {
	lookup := func(name string) (string, bool) {
		if strings.EqualFold(name, "index") {
			return strconv.Itoa(index + 1), true
		}
		return binding.FromMap(rec)(name)
	}
	name := binding.Interpolate(w.Pattern, lookup)
	ext := filepath.Ext(name)
	base := sanitize(strings.TrimSuffix(name, ext))
	if base == "" {
		base = fmt.Sprintf("card-%03d", index+1)
	}
	return filepath.Join(w.Dir, base+ext)
}

// Write 实现 compose.Sink。
func (w *Writer) Write(rec record.Record, index int, img image.Image) error {
	path := w.claim(w.Path(rec, index), index)
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}

// claim 记录本次运行已使用的路径，冲突时改用带行号后缀的文件名。
func (w *Writer) claim(path string, index int) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written == nil {
		w.written = map[string]int{}
	}
	if prev, ok := w.written[path]; ok {
		ext := filepath.Ext(path)
		renamed := fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), index+1, ext)
		compose.Logger().Warn("输出文件名重复，追加行号", "path", path, "row", index+1, "first-row", prev+1, "renamed", renamed)
		path = renamed
	}
	w.written[path] = index
	return path
}

// sanitize 去掉文件名中的路径分隔符与控制字符，并将空白折叠为单个下划线。
func sanitize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|' || r < 0x20:
			continue
		case r == ' ' || r == '\t':
			if !space {
				b.WriteByte('_')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "._")
}
