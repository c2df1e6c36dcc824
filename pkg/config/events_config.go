package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/hspedit/pkg/embedded"
	"github.com/decker502/hspedit/pkg/event"
)

// EventsConfig 权威事件名列表
type EventsConfig struct {
	Events []string `yaml:"events"`
}

// ParseEventsConfig 解析事件列表 YAML
func ParseEventsConfig(data []byte) (*EventsConfig, error) {
	var cfg EventsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse events YAML: %w", err)
	}
	return &cfg, nil
}

// LoadEventsConfig 从磁盘加载事件列表
func LoadEventsConfig(path string) (*EventsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file %s: %w", path, err)
	}
	return ParseEventsConfig(data)
}

// LoadEmbeddedEventsConfig 加载嵌入的默认事件列表
func LoadEmbeddedEventsConfig() (*EventsConfig, error) {
	data, err := embedded.ReadFile(EventsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded events list: %w", err)
	}
	return ParseEventsConfig(data)
}

// Canonicalizer 根据列表构建事件名映射表
func (cfg *EventsConfig) Canonicalizer() *event.Canonicalizer {
	if cfg == nil {
		return event.NewCanonicalizer(nil)
	}
	return event.NewCanonicalizer(cfg.Events)
}
