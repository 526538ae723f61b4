// Package config 读取卡面生成器的 YAML 配置。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/M4cs/beetlegame-webp/assets"
	"github.com/M4cs/beetlegame-webp/dsl"
	"github.com/M4cs/beetlegame-webp/fonts"
	"github.com/M4cs/beetlegame-webp/layout"
)

// ErrConfigurationError 是所有配置校验错误的根。
var ErrConfigurationError = errors.New("configuration error")

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigurationError
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// CanvasConfig 覆盖画布尺寸与底色，零值表示沿用默认值。
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// ArtworkConfig 描述插画区域以及记录中的插画列。
type ArtworkConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Field       string  `yaml:"field"`
	Dir         string  `yaml:"dir"`
	Placeholder string  `yaml:"placeholder"`
}

func (a ArtworkConfig) rect() *layout.Rect {
	if a.Width <= 0 || a.Height <= 0 {
		return nil
	}
	return &layout.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// TemplatesConfig 描述按元素选择的背景模板目录。
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`
	Field string `yaml:"field"`
	Ext   string `yaml:"ext"`
}

// QRConfig 描述可选的二维码区域。
type QRConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Field string  `yaml:"field"`
}

// OutputConfig 描述输出目录与文件名模板。
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// Config 是完整的生成配置。
type Config struct {
	Canvas         CanvasConfig      `yaml:"canvas"`
	Artwork        ArtworkConfig     `yaml:"artwork"`
	Templates      TemplatesConfig   `yaml:"templates"`
	Fonts          []fonts.Source    `yaml:"fonts"`
	LayoutFile     string            `yaml:"layout-file"`
	Fields         layout.CardLayout `yaml:"fields"`
	QR             *QRConfig         `yaml:"qr"`
	Output         OutputConfig      `yaml:"output"`
	ArtworkTimeout time.Duration     `yaml:"artwork-timeout"`
	Debug          bool              `yaml:"debug"`

	// BaseDir 是配置文件所在目录，相对路径基于它解析。
	BaseDir string `yaml:"-"`
}

// Default 返回不依赖任何文件的默认配置。
func Default() *Config {
	return &Config{
		Artwork:        ArtworkConfig{Field: "Image"},
		Templates:      TemplatesConfig{Dir: "templates", Field: "Element", Ext: ".png"},
		Output:         OutputConfig{Dir: "out", Pattern: "${Name}.png"},
		ArtworkTimeout: assets.DefaultTimeout,
	}
}

// Load 读取并校验 YAML 配置文件，未出现的键保留默认值。
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = filepath.Dir(filename)
	return cfg, nil
}

// Parse 解析 YAML 数据。未知的键视为错误。
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置中的数值与必填项。
func (c *Config) Validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return NewConfigError("canvas", "width and height must not be negative")
	}
	if c.ArtworkTimeout < 0 {
		return NewConfigError("artwork-timeout", "must not be negative")
	}
	for i, src := range c.Fonts {
		if src.Family == "" || src.Path == "" {
			return NewConfigError(fmt.Sprintf("fonts[%d]", i), "family and path are required")
		}
	}
	for _, name := range c.Fields.Fields() {
		if c.Fields[name].FontSize <= 0 {
			return NewConfigError("fields."+name+".font-size", "must be positive")
		}
	}
	if c.QR != nil {
		if c.QR.Size <= 0 {
			return NewConfigError("qr.size", "must be positive")
		}
		if c.QR.Field == "" {
			return NewConfigError("qr.field", "required field is missing")
		}
	}
	if c.Output.Dir == "" {
		return NewConfigError("output.dir", "required field is missing")
	}
	return nil
}

// Path 将相对路径解析到配置文件所在目录。
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Layout 是合并后的最终卡面布局。
type Layout struct {
	Canvas layout.Canvas
	Fields layout.CardLayout
	QR     *dsl.QR
}

// Layout 按 默认值 ← layout-file ← YAML 的顺序合并布局，字段整体替换。
func (c *Config) Layout() (*Layout, error) {
	out := &Layout{
		Canvas: layout.DefaultCanvas(),
		Fields: layout.DefaultCardLayout(),
	}
	if c.LayoutFile != "" {
		l, err := dsl.Load(c.Path(c.LayoutFile))
		if err != nil {
			return nil, fmt.Errorf("加载布局文件失败: %w", err)
		}
		out.apply(l.Overrides)
		if l.QR != nil {
			out.QR = l.QR
		}
	}
	out.apply(layout.Overrides{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		Background:  c.Canvas.Background,
		Artwork:     c.Artwork.rect(),
		Placeholder: c.Artwork.Placeholder,
		Fields:      c.Fields,
	})
	if c.QR != nil {
		out.QR = &dsl.QR{
			Rect:  layout.Rect{X: c.QR.X, Y: c.QR.Y, Width: c.QR.Size, Height: c.QR.Size},
			Field: c.QR.Field,
		}
	}
	return out, nil
}

func (l *Layout) apply(o layout.Overrides) {
	l.Canvas = l.Canvas.Apply(o)
	l.Fields = l.Fields.Merge(o.Fields)
}
