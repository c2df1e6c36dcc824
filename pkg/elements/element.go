// Package elements 实现页面上的三类元素：Webpage（页面本身）、Text、Gif
//
// 元素只包含数据与逐帧行为（排版、动画状态机、变换组合），
// 不依赖任何渲染基类；绘制和点击测试由 pkg/render 中的适配器完成。
package elements

import (
	"github.com/decker502/hspedit/pkg/types"
)

// 页面几何常量
const (
	PageWidth  = 300  // 页面逻辑宽度（像素）
	LineHeight = 32   // 页面一“行”的高度（像素）
	TickRate   = 60.0 // 动画时钟频率（Hz）
)

// Element 页面元素的封闭和类型：*Webpage、*Text、*Gif
//
// sealed() 未导出，包外无法实现该接口；
// 调用方通过 type switch 对具体类型做模式匹配。
type Element interface {
	ID() int
	Kind() types.ElementKind
	Name() string
	SetName(name string)

	// SetEvent 激活事件，不存在时以当前快照为起点创建
	SetEvent(name string)
	// ClearEvent 删除事件，DEFAULT 与最后一个事件不可删除
	ClearEvent(name string) bool
	// Events 按创建顺序返回事件名
	Events() []string
	// ActiveEvent 当前激活的事件名
	ActiveEvent() string
	// MoveEvent 调整事件顺序
	MoveEvent(from, to int) bool

	// BindDirty 绑定页面的“未保存修改”标记
	BindDirty(d *types.Dirty)

	sealed()
}

// base 所有元素共享的、不属于任何事件快照的属性
type base struct {
	id      int
	name    string
	caseTag types.Optional[string]
	law     types.LawBroken
	script  types.Optional[string]
	dirty   *types.Dirty
}

func newBase(id int, name string) base {
	return base{id: id, name: name, law: types.LawNone}
}

func (b *base) sealed() {}

// ID 元素标识，在一个页面内唯一
func (b *base) ID() int { return b.id }

// Name 显示名称
func (b *base) Name() string { return b.name }

// SetName 修改显示名称
func (b *base) SetName(name string) {
	b.name = name
	b.dirty.Mark()
}

// BindDirty 绑定页面修改标记
func (b *base) BindDirty(d *types.Dirty) { b.dirty = d }

// CaseTag 案件标签（可缺省）
func (b *base) CaseTag() types.Optional[string] { return b.caseTag }

// SetCaseTag 设置案件标签
func (b *base) SetCaseTag(tag types.Optional[string]) {
	b.caseTag = tag
	b.dirty.Mark()
}

// Law 违反的法规
func (b *base) Law() types.LawBroken { return b.law }

// SetLaw 设置违反的法规
func (b *base) SetLaw(law types.LawBroken) {
	b.law = law
	b.dirty.Mark()
}

// Script 链接或脚本（可缺省）
func (b *base) Script() types.Optional[string] { return b.script }

// SetScript 设置链接或脚本
func (b *base) SetScript(script types.Optional[string]) {
	b.script = script
	b.dirty.Mark()
}
