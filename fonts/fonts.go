// Package fonts 管理自定义字体源以及“已成功注册”的字体族集合。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily 是未注册字体族的替代字体，始终可用，由 Go Regular 提供。
const DefaultFamily = "sans-serif"

// Fallback 返回默认字体的 TTF 数据。
func Fallback() []byte { return goregular.TTF }

// Set 是已成功注册的自定义字体族集合。构造后不可变，可在多个 goroutine 间只读共享。
type Set struct {
	families map[string]struct{}
}

// NewSet 创建包含给定字体族的集合。
func NewSet(families ...string) Set {
	m := make(map[string]struct{}, len(families))
	for _, f := range families {
		m[f] = struct{}{}
	}
	return Set{families: m}
}

// Has 报告字体族是否已注册。
func (s Set) Has(family string) bool {
	_, ok := s.families[family]
	return ok
}

// Resolve 返回实际用于测量与绘制的字体族：已注册则原样返回，否则为 DefaultFamily。
func (s Set) Resolve(family string) string {
	if s.Has(family) {
		return family
	}
	return DefaultFamily
}

// Families 返回排序后的字体族列表。
func (s Set) Families() []string {
	out := make([]string, 0, len(s.families))
	for f := range s.families {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Source 描述一个待注册的字体文件。
type Source struct {
	Family string `yaml:"family" json:"family"`
	Path   string `yaml:"path" json:"path"`
}

// Blob 是读入内存的字体数据。
type Blob struct {
	Family string
	Data   []byte
}

// Read 读取字体文件。相对路径基于 baseDir 解析。
func Read(src Source, baseDir string) (Blob, error) {
	if src.Family == "" {
		return Blob{}, fmt.Errorf("字体 %s 缺少 family", src.Path)
	}
	path := src.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, fmt.Errorf("读取字体 %s 失败: %w", src.Family, err)
	}
	return Blob{Family: src.Family, Data: data}, nil
}
