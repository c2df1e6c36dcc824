package elements

import (
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/types"
)

// 页面默认值
const (
	DefaultRowCount = 10
	WebpageID       = 0
)

// PageSnapshot 页面在一个事件下的全部属性
type PageSnapshot struct {
	Title           string
	Owner           string
	RowCount        int // 页面高度（以 LineHeight 为单位）
	Music           string
	Background      string
	MouseFX         int
	BackgroundColor types.Color
	Description     string
	PageStyle       int
	OnLoadScript    string
}

// Clone 快照只包含值类型字段，直接复制即可
func (s PageSnapshot) Clone() PageSnapshot { return s }

// DefaultPageSnapshot 新建页面时的默认值
func DefaultPageSnapshot() PageSnapshot {
	return PageSnapshot{
		RowCount:        DefaultRowCount,
		BackgroundColor: types.NoColor,
	}
}

// Webpage 页面本身，作为其它元素的容器出现在第 0 行
type Webpage struct {
	base
	events *event.Store[PageSnapshot]
	isHome bool
}

// NewWebpage 以给定快照作为 DEFAULT 事件创建页面
func NewWebpage(id int, name string, initial PageSnapshot) *Webpage {
	return &Webpage{
		base:   newBase(id, name),
		events: event.NewStore(initial),
	}
}

// Kind 元素类型
func (w *Webpage) Kind() types.ElementKind { return types.KindWebpage }

func (w *Webpage) snap() *PageSnapshot { return w.events.Active() }

// Snapshot 返回当前事件快照的副本
func (w *Webpage) Snapshot() PageSnapshot { return *w.snap() }

// SnapshotOf 返回指定事件快照的副本
func (w *Webpage) SnapshotOf(name string) (PageSnapshot, bool) { return w.events.Get(name) }

// EachEvent 按顺序遍历所有事件快照
func (w *Webpage) EachEvent(fn func(name string, s PageSnapshot)) { w.events.Each(fn) }

// SetEvent 切换激活事件
func (w *Webpage) SetEvent(name string) {
	if w.events.SetActive(name) {
		w.dirty.Mark()
	}
}

// ClearEvent 删除事件
func (w *Webpage) ClearEvent(name string) bool {
	if !w.events.Clear(name) {
		return false
	}
	w.dirty.Mark()
	return true
}

// Events 按创建顺序返回事件名
func (w *Webpage) Events() []string { return w.events.Events() }

// ActiveEvent 当前激活的事件名
func (w *Webpage) ActiveEvent() string { return w.events.ActiveName() }

// MoveEvent 调整事件顺序
func (w *Webpage) MoveEvent(from, to int) bool {
	if !w.events.Move(from, to) {
		return false
	}
	w.dirty.Mark()
	return true
}

// IsHome 是否为用户主页（不随事件变化）
func (w *Webpage) IsHome() bool { return w.isHome }

// SetHome 设置主页标记
func (w *Webpage) SetHome(b bool) {
	w.isHome = b
	w.dirty.Mark()
}

// Update 就地修改当前事件的快照
func (w *Webpage) Update(fn func(s *PageSnapshot)) {
	fn(w.snap())
	w.dirty.Mark()
}

// Title 页面标题
func (w *Webpage) Title() string { return w.snap().Title }

// SetTitle 设置页面标题
func (w *Webpage) SetTitle(title string) { w.Update(func(s *PageSnapshot) { s.Title = title }) }

// Owner 页面作者
func (w *Webpage) Owner() string { return w.snap().Owner }

// SetOwner 设置页面作者
func (w *Webpage) SetOwner(owner string) { w.Update(func(s *PageSnapshot) { s.Owner = owner }) }

// RowCount 页面行数
func (w *Webpage) RowCount() int { return w.snap().RowCount }

// SetRowCount 设置页面行数，最少 1 行
func (w *Webpage) SetRowCount(n int) {
	if n < 1 {
		n = 1
	}
	w.Update(func(s *PageSnapshot) { s.RowCount = n })
}

// Height 页面像素高度
func (w *Webpage) Height() int { return w.snap().RowCount * LineHeight }

// Background 背景图片名
func (w *Webpage) Background() string { return w.snap().Background }

// SetBackground 设置背景图片名
func (w *Webpage) SetBackground(name string) { w.Update(func(s *PageSnapshot) { s.Background = name }) }

// BackgroundColor 背景色
func (w *Webpage) BackgroundColor() types.Color { return w.snap().BackgroundColor }

// SetBackgroundColor 设置背景色
func (w *Webpage) SetBackgroundColor(c types.Color) {
	w.Update(func(s *PageSnapshot) { s.BackgroundColor = c })
}

// Music 背景音乐路径
func (w *Webpage) Music() string { return w.snap().Music }

// SetMusic 设置背景音乐路径
func (w *Webpage) SetMusic(path string) { w.Update(func(s *PageSnapshot) { s.Music = path }) }
