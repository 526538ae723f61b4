package layout

import (
	"encoding/json"
	"os"
)

// DebugDump 是调试 JSON 的根对象。
type DebugDump struct {
	Canvas Canvas     `json:"canvas"`
	Fields CardLayout `json:"fields"`
	Order  []string   `json:"order"`
}

// NewDebugDump 汇总生效的画布与字段布局，Order 为实际绘制顺序。
func NewDebugDump(canvas Canvas, fields CardLayout) DebugDump {
	return DebugDump{Canvas: canvas, Fields: fields, Order: fields.Fields()}
}

// WriteDebugJSON 将生效的布局输出为 JSON，便于调试或可视化。
func WriteDebugJSON(canvas Canvas, fields CardLayout, path string) error {
	data, err := json.MarshalIndent(NewDebugDump(canvas, fields), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
