package elements

import (
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/types"
)

// Animation 文本动画模式（互斥）
type Animation int

const (
	AnimNone Animation = iota
	AnimTypeWriter
	AnimFloating
	AnimMarquee
)

// ParseAnimation 将文件中的整数转换为动画模式，未知值视为 AnimNone
func ParseAnimation(v int) Animation {
	if v < int(AnimNone) || v > int(AnimMarquee) {
		return AnimNone
	}
	return Animation(v)
}

func (a Animation) String() string {
	switch a {
	case AnimTypeWriter:
		return "TypeWriter"
	case AnimFloating:
		return "Floating"
	case AnimMarquee:
		return "Marquee"
	default:
		return "None"
	}
}

// TextSnapshot Text 元素在一个事件下的全部属性
type TextSnapshot struct {
	XOffset        int // 水平偏移，-50..50（页面宽度百分比，0 为居中）
	Y              int
	Width          int // 页面宽度百分比
	String         string
	FontColor      types.Color
	FontFamily     string
	FontSize       int
	FontBold       bool
	Align          types.Alignment
	Animation      Animation
	AnimationSpeed int
	FadeColor      types.Color
	FadeSpeed      int
	NoContent      bool
}

// Clone 快照只包含值类型字段，直接复制即可
func (s TextSnapshot) Clone() TextSnapshot { return s }

// DefaultTextSnapshot 新建文本元素时的默认值
func DefaultTextSnapshot() TextSnapshot {
	return TextSnapshot{
		Width:      100,
		String:     "Hypnospace",
		FontColor:  types.ColorFromInt(1741311),
		FontFamily: "HypnoFont",
		Align:      types.AlignCentre,
		FadeColor:  types.NoColor,
	}
}

// Text 文本块元素
type Text struct {
	base
	events *event.Store[TextSnapshot]
	fonts  fonts.Source

	// 以下为运行时状态，不属于任何快照
	lines               []TextLine
	layoutDirty         bool
	layoutPasses        int
	typewriterProgress  float64
	typewriterDirection int
	typewriterTimer     float64
	floating            float64
	marquee             float64
	fade                ColorFade
}

// NewText 以给定快照作为 DEFAULT 事件创建文本元素
func NewText(id int, name string, initial TextSnapshot) *Text {
	t := &Text{
		base:   newBase(id, name),
		events: event.NewStore(initial),
	}
	t.resetRuntime()
	return t
}

// Kind 元素类型
func (t *Text) Kind() types.ElementKind { return types.KindText }

// BindFonts 设置字体来源，字体变化后需要重新排版
func (t *Text) BindFonts(src fonts.Source) {
	t.fonts = src
	t.layoutDirty = true
}

func (t *Text) snap() *TextSnapshot { return t.events.Active() }

// Snapshot 返回当前事件快照的副本
func (t *Text) Snapshot() TextSnapshot { return *t.snap() }

// SnapshotOf 返回指定事件快照的副本
func (t *Text) SnapshotOf(name string) (TextSnapshot, bool) { return t.events.Get(name) }

// EachEvent 按顺序遍历所有事件快照（整页序列化使用）
func (t *Text) EachEvent(fn func(name string, s TextSnapshot)) { t.events.Each(fn) }

// SetEvent 切换激活事件
func (t *Text) SetEvent(name string) {
	if t.events.SetActive(name) {
		t.dirty.Mark()
	}
	t.resetRuntime()
}

// ClearEvent 删除事件
func (t *Text) ClearEvent(name string) bool {
	wasActive := event.Key(name) == event.Key(t.events.ActiveName())
	if !t.events.Clear(name) {
		return false
	}
	if wasActive {
		t.resetRuntime()
	}
	t.dirty.Mark()
	return true
}

// Events 按创建顺序返回事件名
func (t *Text) Events() []string { return t.events.Events() }

// ActiveEvent 当前激活的事件名
func (t *Text) ActiveEvent() string { return t.events.ActiveName() }

// MoveEvent 调整事件顺序
func (t *Text) MoveEvent(from, to int) bool {
	if !t.events.Move(from, to) {
		return false
	}
	t.dirty.Mark()
	return true
}

// resetRuntime 激活事件变化后，从新快照重建所有运行时状态
func (t *Text) resetRuntime() {
	s := t.snap()
	t.typewriterProgress = 0
	t.typewriterDirection = 1
	t.typewriterTimer = typewriterStep
	t.floating = 0
	t.marquee = 0
	t.fade = NewColorFade(s.FontColor, s.FadeColor, s.FadeSpeed)
	t.layoutDirty = true
}

// ========== 属性读写（作用于当前激活事件） ==========

// SetPosition 设置水平偏移（百分比）与纵坐标
func (t *Text) SetPosition(xOffset, y int) {
	s := t.snap()
	s.XOffset = xOffset
	s.Y = y
	t.dirty.Mark()
}

// XOffset 水平偏移
func (t *Text) XOffset() int { return t.snap().XOffset }

// Y 纵坐标
func (t *Text) Y() int { return t.snap().Y }

// XOffsetLimit 当前宽度下水平偏移允许的最大绝对值
// 界面据此把偏移限制在 ±(100-width)/2 内
func (t *Text) XOffsetLimit() int {
	limit := (100 - t.snap().Width) / 2
	if limit < 0 {
		return 0
	}
	return limit
}

// SetWidth 设置宽度（页面宽度百分比）
func (t *Text) SetWidth(w int) {
	t.snap().Width = w
	t.layoutDirty = true
	t.dirty.Mark()
}

// Width 宽度百分比
func (t *Text) Width() int { return t.snap().Width }

// RenderedWidth 宽度对应的像素值
func (t *Text) RenderedWidth() int { return t.snap().Width * PageWidth / 100 }

// SetString 设置文本内容
func (t *Text) SetString(str string) {
	t.snap().String = str
	t.layoutDirty = true
	t.dirty.Mark()
}

// String 文本内容
func (t *Text) String() string { return t.snap().String }

// SetFont 设置字体族
func (t *Text) SetFont(family string) {
	t.snap().FontFamily = family
	t.layoutDirty = true
	t.dirty.Mark()
}

// FontFamily 字体族
func (t *Text) FontFamily() string { return t.snap().FontFamily }

// SetFontSize 设置字号（0/1/2）
func (t *Text) SetFontSize(size int) {
	t.snap().FontSize = size
	t.layoutDirty = true
	t.dirty.Mark()
}

// FontSize 字号
func (t *Text) FontSize() int { return t.snap().FontSize }

// SetFontBold 设置粗体
func (t *Text) SetFontBold(bold bool) {
	t.snap().FontBold = bold
	t.layoutDirty = true
	t.dirty.Mark()
}

// FontBold 是否粗体
func (t *Text) FontBold() bool { return t.snap().FontBold }

// FontID 当前字体标识 <family><size><b|n>
func (t *Text) FontID() string {
	s := t.snap()
	return fonts.FontID(s.FontFamily, s.FontSize, s.FontBold)
}

// SetFontColor 设置字体颜色；渐变运行中时以新颜色为基础色重启渐变
func (t *Text) SetFontColor(c types.Color) {
	s := t.snap()
	s.FontColor = c
	t.fade = NewColorFade(s.FontColor, s.FadeColor, s.FadeSpeed)
	t.dirty.Mark()
}

// FontColor 字体颜色
func (t *Text) FontColor() types.Color { return t.snap().FontColor }

// SetFade 设置渐变目标色与速度，速度为 0 时取消渐变
func (t *Text) SetFade(c types.Color, speed int) {
	s := t.snap()
	s.FadeColor = c
	s.FadeSpeed = speed
	t.fade = NewColorFade(s.FontColor, s.FadeColor, s.FadeSpeed)
	t.dirty.Mark()
}

// FadeColor 渐变目标色
func (t *Text) FadeColor() types.Color { return t.snap().FadeColor }

// FadeSpeed 渐变速度
func (t *Text) FadeSpeed() int { return t.snap().FadeSpeed }

// CurrentColor 当前帧的显示颜色（考虑渐变）
func (t *Text) CurrentColor() types.Color { return t.fade.Color() }

// SetAlign 设置对齐方式
func (t *Text) SetAlign(align types.Alignment) {
	t.snap().Align = align
	t.layoutDirty = true
	t.dirty.Mark()
}

// Align 对齐方式
func (t *Text) Align() types.Alignment { return t.snap().Align }

// SetAnimation 切换动画模式，只重置新模式自己的进度
func (t *Text) SetAnimation(anim Animation) {
	t.snap().Animation = anim
	switch anim {
	case AnimTypeWriter:
		t.typewriterProgress = 0
		t.typewriterDirection = 1
		t.typewriterTimer = typewriterStep
	case AnimFloating:
		t.floating = 0
	case AnimMarquee:
		t.marquee = 0
	}
	t.layoutDirty = true
	t.dirty.Mark()
}

// Animation 动画模式
func (t *Text) Animation() Animation { return t.snap().Animation }

// SetAnimationSpeed 设置动画速度
func (t *Text) SetAnimationSpeed(speed int) {
	t.snap().AnimationSpeed = speed
	t.dirty.Mark()
}

// AnimationSpeed 动画速度
func (t *Text) AnimationSpeed() int { return t.snap().AnimationSpeed }

// SetNoContent 设置“无内容”标记
func (t *Text) SetNoContent(b bool) {
	t.snap().NoContent = b
	t.dirty.Mark()
}

// NoContent “无内容”标记
func (t *Text) NoContent() bool { return t.snap().NoContent }

// Position 元素锚点在页面上的坐标（文本块水平居中于该点）
func (t *Text) Position() (float64, float64) {
	s := t.snap()
	return float64((s.XOffset + 50) * (PageWidth / 100)), float64(s.Y)
}
