// Package registry 管理页面元素的 id 索引与绘制顺序（z-order）
//
// 顺序列表下标 0 为最前面的元素，z 值为 -index；
// id→元素映射与顺序列表始终同步更新。
package registry

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/types"
)

// IDStep 自动分配 id 的步长
const IDStep = 10

var (
	// ErrDuplicateID id 已被占用
	ErrDuplicateID = errors.New("duplicate element id")
	// ErrInvalidID id 必须为正数
	ErrInvalidID = errors.New("invalid element id")
	// ErrPageElement 页面本身不进入注册表
	ErrPageElement = errors.New("webpage element cannot be registered")
	// ErrNotFound 元素不存在
	ErrNotFound = errors.New("element not found")
)

// Registry 元素注册表
type Registry struct {
	byID      map[int]elements.Element
	order     []int
	highWater int // 已分配过的最大 id，删除后也不回退
	dirty     *types.Dirty
}

// New 创建空注册表
func New() *Registry {
	return &Registry{byID: make(map[int]elements.Element)}
}

// BindDirty 绑定页面修改标记，已注册和之后注册的元素都会共享该标记
func (r *Registry) BindDirty(d *types.Dirty) {
	r.dirty = d
	for _, el := range r.byID {
		el.BindDirty(d)
	}
}

// NextID 返回一个未被使用过的新 id：已分配的最大 id + 10
func (r *Registry) NextID() int {
	return r.highWater + IDStep
}

// Add 把元素放到最后面（离观察者最远）
func (r *Registry) Add(el elements.Element) error {
	return r.Insert(el, len(r.order))
}

// Insert 把元素插入到顺序列表的 index 位置（0 为最前），越界时夹到两端
func (r *Registry) Insert(el elements.Element, index int) error {
	if el.Kind() == types.KindWebpage {
		return ErrPageElement
	}
	id := el.ID()
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	index = max(0, min(index, len(r.order)))
	r.byID[id] = el
	r.order = slices.Insert(r.order, index, id)
	r.highWater = max(r.highWater, id)

	el.BindDirty(r.dirty)
	r.dirty.Mark()
	return nil
}

// Remove 删除元素及其拥有的全部事件快照
func (r *Registry) Remove(id int) (elements.Element, bool) {
	el, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v int) bool { return v == id })
	r.dirty.Mark()
	return el, true
}

// Get 按 id 查找
func (r *Registry) Get(id int) (elements.Element, bool) {
	el, ok := r.byID[id]
	return el, ok
}

// Len 元素数量
func (r *Registry) Len() int { return len(r.order) }

// Order 从前到后的 id 列表（副本）
func (r *Registry) Order() []int {
	return slices.Clone(r.order)
}

// Elements 从前到后的元素列表
func (r *Registry) Elements() []elements.Element {
	out := make([]elements.Element, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Index 元素在顺序列表中的位置，不存在时为 -1
func (r *Registry) Index(id int) int {
	return slices.Index(r.order, id)
}

// ZValue 元素的 z 值（-index）；不存在时返回 false
func (r *Registry) ZValue(id int) (int, bool) {
	i := r.Index(id)
	if i < 0 {
		return 0, false
	}
	return -i, true
}

// Move 把元素移动到 index 位置，越界时夹到两端
func (r *Registry) Move(id, index int) error {
	from := r.Index(id)
	if from < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	index = max(0, min(index, len(r.order)-1))
	if from == index {
		return nil
	}
	r.order = slices.Delete(r.order, from, from+1)
	r.order = slices.Insert(r.order, index, id)
	r.dirty.Mark()
	return nil
}

// MoveUp 向前移动一层
func (r *Registry) MoveUp(id int) error {
	return r.Move(id, r.Index(id)-1)
}

// MoveDown 向后移动一层
func (r *Registry) MoveDown(id int) error {
	i := r.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r.Move(id, i+1)
}

// MoveToTop 移到最前
func (r *Registry) MoveToTop(id int) error { return r.Move(id, 0) }

// MoveToBottom 移到最后
func (r *Registry) MoveToBottom(id int) error { return r.Move(id, len(r.order)-1) }

// Each 从前到后遍历
func (r *Registry) Each(fn func(el elements.Element)) {
	for _, id := range r.order {
		fn(r.byID[id])
	}
}

// Check 校验 id 映射与顺序列表是否同步
func (r *Registry) Check() error {
	if len(r.order) != len(r.byID) {
		return fmt.Errorf("registry out of sync: %d ordered, %d indexed", len(r.order), len(r.byID))
	}
	seen := make(map[int]bool, len(r.order))
	for _, id := range r.order {
		if seen[id] {
			return fmt.Errorf("registry out of sync: id %d ordered twice", id)
		}
		seen[id] = true
		el, ok := r.byID[id]
		if !ok {
			return fmt.Errorf("registry out of sync: id %d ordered but not indexed", id)
		}
		if el.ID() != id {
			return fmt.Errorf("registry out of sync: id %d indexes element %d", id, el.ID())
		}
	}
	return nil
}

// Clear 删除所有元素，id 高水位保留
func (r *Registry) Clear() {
	if len(r.order) == 0 {
		return
	}
	log.Printf("[Registry] Clearing %d elements", len(r.order))
	clear(r.byID)
	r.order = r.order[:0]
	r.dirty.Mark()
}
