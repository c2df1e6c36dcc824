// Package page 把页面元素、元素注册表和修改标记组合成一个可编辑的页面
package page

import (
	"fmt"
	"log"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/registry"
	"github.com/decker502/hspedit/pkg/types"
)

// DefaultName 新页面的名称
const DefaultName = "Webpage"

// Input 一帧的鼠标输入（页面坐标）
type Input struct {
	X, Y    float64
	Inside  bool // 光标是否在页面区域内
	Pressed bool // 左键按下
}

// Page 一个页面：Webpage 本身 + 其余元素
type Page struct {
	Webpage  *elements.Webpage
	Registry *registry.Registry

	dirty  types.Dirty
	fonts  fonts.Source
	loader elements.FrameLoader
	path   string

	textDefaults *elements.TextSnapshot
	gifDefaults  *elements.GifSnapshot
}

// New 创建只有默认 Webpage 的空页面
func New() *Page {
	return FromParts(elements.NewWebpage(elements.WebpageID, DefaultName, elements.DefaultPageSnapshot()), registry.New())
}

// FromParts 用已有的 Webpage 和注册表组装页面（解码使用），页面初始为未修改状态
func FromParts(web *elements.Webpage, reg *registry.Registry) *Page {
	p := &Page{Webpage: web, Registry: reg}
	web.BindDirty(&p.dirty)
	reg.BindDirty(&p.dirty)
	return p
}

// Bind 绑定字体库与帧加载器，对现有元素和之后添加的元素都生效
func (p *Page) Bind(src fonts.Source, loader elements.FrameLoader) {
	p.fonts = src
	p.loader = loader
	p.Registry.Each(p.attach)
}

func (p *Page) attach(el elements.Element) {
	switch e := el.(type) {
	case *elements.Text:
		if p.fonts != nil {
			e.BindFonts(p.fonts)
		}
	case *elements.Gif:
		if p.loader != nil {
			e.BindLoader(p.loader)
		}
	}
}

// Dirty 是否有未保存的修改
func (p *Page) Dirty() bool { return p.dirty.IsDirty() }

// MarkClean 保存或加载完成后清除修改标记
func (p *Page) MarkClean() { p.dirty.Clear() }

// MarkDirty 标记页面已修改
func (p *Page) MarkDirty() { p.dirty.Mark() }

// DirtyFlag 页面共享的修改标记
func (p *Page) DirtyFlag() *types.Dirty { return &p.dirty }

// Path 关联的文件路径，未保存过时为空
func (p *Page) Path() string { return p.path }

// SetPath 关联文件路径
func (p *Page) SetPath(path string) { p.path = path }

// SetTextDefaults 覆盖之后新建文本元素的初始属性
func (p *Page) SetTextDefaults(s elements.TextSnapshot) { p.textDefaults = &s }

// SetGifDefaults 覆盖之后新建 Gif 元素的初始属性（图片名除外）
func (p *Page) SetGifDefaults(s elements.GifSnapshot) { p.gifDefaults = &s }

// AddText 以默认属性添加文本元素，放在最前面
func (p *Page) AddText() *elements.Text {
	snap := elements.DefaultTextSnapshot()
	if p.textDefaults != nil {
		snap = p.textDefaults.Clone()
	}
	id := p.Registry.NextID()
	txt := elements.NewText(id, fmt.Sprintf("Text %d", id), snap)
	p.insertTop(txt)
	return txt
}

// AddGif 添加图片元素，放在最前面
func (p *Page) AddGif(imageName string) *elements.Gif {
	id := p.Registry.NextID()
	snap := elements.DefaultGifSnapshot()
	if p.gifDefaults != nil {
		snap = p.gifDefaults.Clone()
	}
	snap.ImageName = imageName
	g := elements.NewGif(id, fmt.Sprintf("Gif %d", id), snap)
	p.insertTop(g)
	return g
}

func (p *Page) insertTop(el elements.Element) {
	if err := p.Registry.Insert(el, 0); err != nil {
		// NextID 保证不会冲突
		log.Printf("[Page] Failed to add element %d: %v", el.ID(), err)
		return
	}
	el.SetEvent(p.Webpage.ActiveEvent())
	p.attach(el)
}

// Remove 删除元素
func (p *Page) Remove(id int) bool {
	_, ok := p.Registry.Remove(id)
	return ok
}

// Element 按 id 查找元素
func (p *Page) Element(id int) (elements.Element, bool) {
	return p.Registry.Get(id)
}

// SetEvent 把页面和所有元素切换到同一事件
func (p *Page) SetEvent(name string) {
	p.Webpage.SetEvent(name)
	p.Registry.Each(func(el elements.Element) { el.SetEvent(name) })
}

// ActiveEvent 页面当前事件
func (p *Page) ActiveEvent() string { return p.Webpage.ActiveEvent() }

// Events 页面和所有元素上出现过的事件名（按首次出现的顺序，不区分大小写去重）
func (p *Page) Events() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(names []string) {
		for _, n := range names {
			k := event.Key(n)
			if !seen[k] {
				seen[k] = true
				out = append(out, n)
			}
		}
	}
	add(p.Webpage.Events())
	p.Registry.Each(func(el elements.Element) { add(el.Events()) })
	return out
}

// Tick 推进所有元素一帧
func (p *Page) Tick(dt float64, in Input) {
	p.Registry.Each(func(el elements.Element) {
		switch e := el.(type) {
		case *elements.Text:
			e.Tick(dt)
		case *elements.Gif:
			hovered := in.Inside && e.Contains(in.X, in.Y)
			e.Tick(dt, elements.Pointer{Hovered: hovered, Pressed: hovered && in.Pressed})
		}
	})
}

// ElementAt 返回包含该点的最前面的元素
func (p *Page) ElementAt(x, y float64) (elements.Element, bool) {
	for _, el := range p.Registry.Elements() {
		if Bounds(el).Contains(x, y) {
			return el, true
		}
	}
	return nil, false
}

// Bounds 元素在页面上的包围盒
func Bounds(el elements.Element) elements.Rect {
	switch e := el.(type) {
	case *elements.Text:
		return e.Bounds()
	case *elements.Gif:
		return e.Bounds()
	case *elements.Webpage:
		return elements.Rect{W: elements.PageWidth, H: float64(e.Height())}
	}
	return elements.Rect{}
}
