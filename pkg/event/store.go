// Package event 实现按“事件”划分的属性快照存储
//
// 每个页面元素针对若干命名事件（DEFAULT 以及游戏运行时可切换的其他状态）
// 各持有一份完整的属性快照。任一时刻只有一个事件处于激活状态，
// 元素的所有属性读写都落在激活事件的快照上。
package event

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default 默认事件名，永远存在且不可删除
const Default = "DEFAULT"

var upper = cases.Upper(language.Und)

// Key 返回事件名的规范化键（统一大写）
// 查找一律通过 Key 比较，实现大小写不敏感
func Key(name string) string {
	return upper.String(name)
}

// Snapshot 快照类型约束：必须能深拷贝自身
type Snapshot[T any] interface {
	Clone() T
}

type entry[T any] struct {
	name string // 首次创建时的拼写
	data *T
}

// Store 事件快照存储
//
// 快照按规范化键存放，另有一份 order 记录创建顺序（也是序列化顺序）。
type Store[T Snapshot[T]] struct {
	entries map[string]*entry[T]
	order   []string // 规范化键，按创建顺序
	active  string   // 激活事件的规范化键
}

// NewStore 创建只包含 DEFAULT 事件的存储
func NewStore[T Snapshot[T]](initial T) *Store[T] {
	s := &Store[T]{
		entries: make(map[string]*entry[T]),
	}
	data := initial
	s.entries[Default] = &entry[T]{name: Default, data: &data}
	s.order = []string{Default}
	s.active = Default
	return s
}

// SetActive 激活指定事件
//
// 事件不存在时以当前激活快照的深拷贝为起点创建它，并追加到顺序列表末尾。
// 已激活时调用为幂等操作。返回值表示是否新建了事件。
func (s *Store[T]) SetActive(name string) bool {
	if name == "" {
		return false
	}
	key := Key(name)
	if key == s.active {
		return false
	}

	created := false
	if _, ok := s.entries[key]; !ok {
		clone := (*s.entries[s.active].data).Clone()
		s.entries[key] = &entry[T]{name: name, data: &clone}
		s.order = append(s.order, key)
		created = true
	}
	s.active = key
	return created
}

// Clear 删除指定事件
//
// DEFAULT、不存在的事件以及最后一个事件都不会被删除（返回 false）。
// 若删除的是激活事件，激活指针回落到 DEFAULT。
func (s *Store[T]) Clear(name string) bool {
	key := Key(name)
	if key == Default || len(s.entries) <= 1 {
		return false
	}
	if _, ok := s.entries[key]; !ok {
		return false
	}

	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.active == key {
		s.active = Default
	}
	return true
}

// Move 调整事件顺序，只影响序列化与界面顺序，不影响查找
func (s *Store[T]) Move(from, to int) bool {
	if from < 0 || from >= len(s.order) || to < 0 || to >= len(s.order) || from == to {
		return false
	}
	key := s.order[from]
	s.order = append(s.order[:from], s.order[from+1:]...)
	s.order = append(s.order[:to], append([]string{key}, s.order[to:]...)...)
	return true
}

// Active 返回激活事件的快照指针
func (s *Store[T]) Active() *T {
	return s.entries[s.active].data
}

// ActiveName 返回激活事件的名称（首次创建时的拼写）
func (s *Store[T]) ActiveName() string {
	return s.entries[s.active].name
}

// Has 事件是否存在（大小写不敏感）
func (s *Store[T]) Has(name string) bool {
	_, ok := s.entries[Key(name)]
	return ok
}

// Get 返回指定事件的快照副本
// 只读访问，修改必须先 SetActive
func (s *Store[T]) Get(name string) (T, bool) {
	e, ok := s.entries[Key(name)]
	if !ok {
		var zero T
		return zero, false
	}
	return (*e.data).Clone(), true
}

// Events 按创建顺序返回事件名
func (s *Store[T]) Events() []string {
	names := make([]string, 0, len(s.order))
	for _, key := range s.order {
		names = append(names, s.entries[key].name)
	}
	return names
}

// Len 事件数量
func (s *Store[T]) Len() int {
	return len(s.order)
}

// Each 按顺序遍历所有快照，用于整页序列化
// 不改变激活指针
func (s *Store[T]) Each(fn func(name string, snap T)) {
	for _, key := range s.order {
		e := s.entries[key]
		fn(e.name, *e.data)
	}
}
