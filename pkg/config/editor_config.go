package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/embedded"
	"github.com/decker502/hspedit/pkg/types"
)

// 嵌入的默认配置路径
const (
	EditorConfigPath = "data/config/editor.yaml"
	EventsConfigPath = "data/config/events.yaml"
)

// EditorConfig 编辑器配置
type EditorConfig struct {
	Page          PageConfig `yaml:"page"`
	TickRate      int        `yaml:"tick_rate"`      // 动画时钟频率（Hz）
	FileExtension string     `yaml:"file_extension"` // 保存时强制的扩展名
	ModsDir       string     `yaml:"mods_dir"`       // 相对于游戏根目录的 mod 目录
	Text          TextConfig `yaml:"text"`
	Gif           GifConfig  `yaml:"gif"`
}

// PageConfig 新建页面的默认值
type PageConfig struct {
	DefaultRows int `yaml:"default_rows"`
}

// TextConfig 新建文本元素的默认值
type TextConfig struct {
	String string `yaml:"string"`
	Color  int    `yaml:"color"`
	Family string `yaml:"family"`
	Style  string `yaml:"style"` // <size><b|n>，如 "0n"
	Align  int    `yaml:"align"`
	Width  int    `yaml:"width"`
}

// GifConfig 新建图片元素的默认值
type GifConfig struct {
	Saturation int     `yaml:"saturation"`
	Lightness  int     `yaml:"lightness"`
	Scale      float64 `yaml:"scale"`
}

// ParseEditorConfig 解析 YAML 配置并补全缺省值
func ParseEditorConfig(data []byte) (*EditorConfig, error) {
	var cfg EditorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML: %w", err)
	}
	applyEditorDefaults(&cfg)
	if err := validateEditorConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}
	return &cfg, nil
}

// LoadEditorConfig 从磁盘加载编辑器配置
func LoadEditorConfig(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config file %s: %w", path, err)
	}
	cfg, err := ParseEditorConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEmbeddedEditorConfig 加载嵌入的默认编辑器配置
func LoadEmbeddedEditorConfig() (*EditorConfig, error) {
	data, err := embedded.ReadFile(EditorConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded editor config: %w", err)
	}
	return ParseEditorConfig(data)
}

// applyEditorDefaults 为缺失的字段设置默认值，旧配置文件可以正常加载
func applyEditorDefaults(cfg *EditorConfig) {
	if cfg.Page.DefaultRows == 0 {
		cfg.Page.DefaultRows = elements.DefaultRowCount
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = int(elements.TickRate)
	}
	if cfg.FileExtension == "" {
		cfg.FileExtension = ".hsp"
	}
	if cfg.ModsDir == "" {
		cfg.ModsDir = "mods"
	}

	def := elements.DefaultTextSnapshot()
	if cfg.Text.String == "" {
		cfg.Text.String = def.String
	}
	if cfg.Text.Color == 0 {
		cfg.Text.Color = def.FontColor.Int()
	}
	if cfg.Text.Family == "" {
		cfg.Text.Family = def.FontFamily
	}
	if cfg.Text.Style == "" {
		cfg.Text.Style = "0n"
	}
	if cfg.Text.Width == 0 {
		cfg.Text.Width = def.Width
	}

	if cfg.Gif.Saturation == 0 {
		cfg.Gif.Saturation = 100
	}
	if cfg.Gif.Lightness == 0 {
		cfg.Gif.Lightness = 100
	}
	if cfg.Gif.Scale == 0 {
		cfg.Gif.Scale = 1
	}
}

func validateEditorConfig(cfg *EditorConfig) error {
	if cfg.TickRate < 1 {
		return fmt.Errorf("tick_rate must be positive, got %d", cfg.TickRate)
	}
	if cfg.Text.Width < 1 || cfg.Text.Width > 100 {
		return fmt.Errorf("text.width must be within 1..100, got %d", cfg.Text.Width)
	}
	if cfg.Text.Align < 0 || cfg.Text.Align > 2 {
		return fmt.Errorf("text.align must be 0, 1 or 2, got %d", cfg.Text.Align)
	}
	if !strings.HasSuffix(cfg.Text.Style, "n") && !strings.HasSuffix(cfg.Text.Style, "b") {
		return fmt.Errorf("text.style must end with 'n' or 'b', got %q", cfg.Text.Style)
	}
	if cfg.Gif.Scale <= 0 {
		return fmt.Errorf("gif.scale must be positive, got %v", cfg.Gif.Scale)
	}
	return nil
}

// TickSeconds 每个动画 tick 的时长（秒）
func (cfg *EditorConfig) TickSeconds() float64 {
	return 1 / float64(cfg.TickRate)
}

// TextSnapshot 把文本默认值转换为 DEFAULT 事件快照
func (cfg *EditorConfig) TextSnapshot() elements.TextSnapshot {
	s := elements.DefaultTextSnapshot()
	s.String = cfg.Text.String
	s.FontColor = types.ColorFromInt(cfg.Text.Color)
	s.FontFamily = cfg.Text.Family
	s.FontBold = strings.HasSuffix(cfg.Text.Style, "b")
	fmt.Sscanf(cfg.Text.Style, "%d", &s.FontSize)
	s.Align = types.ParseAlignment(cfg.Text.Align)
	s.Width = cfg.Text.Width
	return s
}

// GifSnapshot 把图片默认值转换为 DEFAULT 事件快照
func (cfg *EditorConfig) GifSnapshot() elements.GifSnapshot {
	s := elements.DefaultGifSnapshot()
	s.S = cfg.Gif.Saturation
	s.L = cfg.Gif.Lightness
	s.Scale = cfg.Gif.Scale
	return s
}
