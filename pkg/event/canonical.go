package event

import (
	"log"
)

// Canonicalizer 将文件中读到的事件名映射为权威列表中的拼写
//
// 权威列表由外部配置加载（config/events.yaml），DEFAULT 隐式包含在内。
type Canonicalizer struct {
	names map[string]string // Key(name) -> 权威拼写
	order []string
}

// NewCanonicalizer 根据权威事件列表创建映射表
func NewCanonicalizer(names []string) *Canonicalizer {
	c := &Canonicalizer{
		names: map[string]string{Default: Default},
		order: []string{Default},
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		key := Key(name)
		if _, exists := c.names[key]; exists {
			continue
		}
		c.names[key] = name
		c.order = append(c.order, name)
	}
	return c
}

// Canonical 返回权威拼写
// 未知事件名统一转为大写并记录日志，仍然被接受
func (c *Canonicalizer) Canonical(raw string) string {
	key := Key(raw)
	if c == nil {
		return key
	}
	if name, ok := c.names[key]; ok {
		return name
	}
	log.Printf("[Events] Unknown event name %q, keeping it as %q", raw, key)
	return key
}

// Known 事件名是否在权威列表中
func (c *Canonicalizer) Known(raw string) bool {
	if c == nil {
		return Key(raw) == Default
	}
	_, ok := c.names[Key(raw)]
	return ok
}

// Names 返回权威列表（DEFAULT 在首位）
func (c *Canonicalizer) Names() []string {
	if c == nil {
		return []string{Default}
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
