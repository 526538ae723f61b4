// Package record 读取待渲染的卡牌记录。每个字段都是可选字符串，不做结构校验。
package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record 是一行扁平的字符串记录，键为表头原文。
type Record map[string]string

// Get 返回字段值：先精确匹配表头，再忽略大小写匹配。缺失时返回空字符串。
func (r Record) Get(field string) string {
	if v, ok := r[field]; ok {
		return v
	}
	for k, v := range r {
		if strings.EqualFold(k, field) {
			return v
		}
	}
	return ""
}

// Label 返回用于日志的标识：优先 id，其次 name。
func (r Record) Label() string {
	for _, f := range []string{"id", "name"} {
		if v := strings.TrimSpace(r.Get(f)); v != "" {
			return v
		}
	}
	return "<unnamed>"
}

// ReadCSV 读取带表头的 CSV。行长度不一致时缺失的列视为空。
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv 缺少表头")
	}
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadCSV 打开并读取 CSV 文件。文件不可读属于致命错误。
func LoadCSV(path string) ([]Record, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开记录文件 %s 失败: %w", path, err)
	}
	defer fp.Close()
	recs, err := ReadCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return recs, nil
}
