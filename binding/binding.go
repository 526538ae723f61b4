package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Lookup 按名称取值，找不到时返回 false。
type Lookup func(name string) (string, bool)

// Interpolate 将文本中的 ${name} 替换为 lookup 返回的值。
// lookup 为空或名称不存在时保留原占位符。
func Interpolate(text string, lookup Lookup) string {
	if lookup == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := strings.TrimSpace(groups[1])
		if name == "" {
			return match
		}
		if val, ok := lookup(name); ok {
			return val
		}
		return match
	})
}

// FromMap 返回按键忽略大小写查找 m 的 Lookup。
func FromMap(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		if v, ok := m[name]; ok {
			return v, true
		}
		for k, v := range m {
			if strings.EqualFold(k, name) {
				return v, true
			}
		}
		return "", false
	}
}
