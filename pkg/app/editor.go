package app

import (
	"fmt"
	"log"

	"github.com/decker502/hspedit/pkg/codec"
	"github.com/decker502/hspedit/pkg/config"
	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/page"
)

// Editor 编辑会话：当前页面、选中的元素以及与文件和设置的交互
//
// Editor 不依赖 ebiten，窗口层只把输入翻译成对它的调用。
type Editor struct {
	cfg      *config.EditorConfig
	canon    *event.Canonicalizer
	settings *config.SettingsManager

	fonts  fonts.Source
	loader elements.FrameLoader

	page     *page.Page
	selected int

	onMedia func(music, background string)
}

// OnMediaChange 注册页面媒体（音乐、背景图）可能变化时的回调
//
// 新建、打开页面和切换事件后调用，渲染循环本身不做文件读取。注册时立即以当前页面调用一次。
func (e *Editor) OnMediaChange(fn func(music, background string)) {
	e.onMedia = fn
	e.notifyMedia()
}

func (e *Editor) notifyMedia() {
	if e.onMedia == nil {
		return
	}
	w := e.page.Webpage
	e.onMedia(w.Music(), w.Background())
}

// NewEditor 创建编辑会话，初始为一个空页面
//
// events 与 settings 可为 nil。
func NewEditor(cfg *config.EditorConfig, events *config.EventsConfig, settings *config.SettingsManager) *Editor {
	if settings == nil {
		settings = config.NewSettingsManager(nil)
	}
	e := &Editor{
		cfg:      cfg,
		canon:    events.Canonicalizer(),
		settings: settings,
	}
	e.NewPage()
	return e
}

// BindAssets 绑定字体库与帧加载器，当前页面和之后打开的页面都会使用
func (e *Editor) BindAssets(src fonts.Source, loader elements.FrameLoader) {
	e.fonts = src
	e.loader = loader
	e.page.Bind(src, loader)
}

func (e *Editor) setPage(p *page.Page) {
	p.SetTextDefaults(e.cfg.TextSnapshot())
	p.SetGifDefaults(e.cfg.GifSnapshot())
	p.Bind(e.fonts, e.loader)
	e.page = p
	e.selected = 0
	e.notifyMedia()
}

// NewPage 丢弃当前页面，新建空页面
func (e *Editor) NewPage() {
	p := page.New()
	p.Webpage.SetRowCount(e.cfg.Page.DefaultRows)
	p.MarkClean()
	e.setPage(p)
}

// Page 当前页面
func (e *Editor) Page() *page.Page { return e.page }

// Open 打开页面文件，成功后记入最近文件列表
func (e *Editor) Open(path string) error {
	p, err := codec.Load(path, codec.Options{
		Canon:  e.canon,
		Strict: e.settings.Settings().Strict,
	})
	if err != nil {
		return err
	}
	e.setPage(p)
	e.remember(path)
	log.Printf("[Editor] Opened %s (%d elements)", path, p.Registry.Len())
	return nil
}

// Save 保存到当前路径
func (e *Editor) Save() error {
	if e.page.Path() == "" {
		return fmt.Errorf("page has never been saved: %w", codec.ErrNoPath)
	}
	return e.SaveAs(e.page.Path())
}

// SaveAs 保存到指定路径（自动补全扩展名）
func (e *Editor) SaveAs(path string) error {
	written, err := codec.Save(path, e.page, e.cfg.FileExtension)
	if err != nil {
		return err
	}
	e.remember(written)
	log.Printf("[Editor] Saved %s", written)
	return nil
}

func (e *Editor) remember(path string) {
	e.settings.AddRecentFile(path)
	if err := e.settings.Save(); err != nil {
		log.Printf("[Editor] Warning: failed to save settings: %v", err)
	}
}

// EventNames 可切换的事件：DEFAULT、已知事件、页面中出现的其它事件
func (e *Editor) EventNames() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if k := event.Key(name); !seen[k] {
			seen[k] = true
			out = append(out, name)
		}
	}

	add(event.Default)
	if e.canon != nil {
		for _, n := range e.canon.Names() {
			add(n)
		}
	}
	for _, n := range e.page.Events() {
		add(n)
	}
	return out
}

// CycleEvent 切换到下一个（step<0 时上一个）事件，返回新的事件名
func (e *Editor) CycleEvent(step int) string {
	names := e.EventNames()
	cur := 0
	active := event.Key(e.page.ActiveEvent())
	for i, n := range names {
		if event.Key(n) == active {
			cur = i
			break
		}
	}
	next := ((cur+step)%len(names) + len(names)) % len(names)
	e.page.SetEvent(names[next])
	e.notifyMedia()
	log.Printf("[Editor] Event: %s", names[next])
	return names[next]
}

// SelectAt 选中该点最前面的元素，没有元素时取消选中
func (e *Editor) SelectAt(x, y float64) (elements.Element, bool) {
	el, ok := e.page.ElementAt(x, y)
	if !ok {
		e.selected = 0
		return nil, false
	}
	e.selected = el.ID()
	return el, true
}

// Selected 当前选中的元素
func (e *Editor) Selected() (elements.Element, bool) {
	if e.selected == 0 {
		return nil, false
	}
	return e.page.Element(e.selected)
}

// SelectedID 当前选中元素的 id，未选中时为 0
func (e *Editor) SelectedID() int { return e.selected }

// RaiseSelected 把选中元素上移一层
func (e *Editor) RaiseSelected() error {
	if e.selected == 0 {
		return nil
	}
	return e.page.Registry.MoveUp(e.selected)
}

// LowerSelected 把选中元素下移一层
func (e *Editor) LowerSelected() error {
	if e.selected == 0 {
		return nil
	}
	return e.page.Registry.MoveDown(e.selected)
}

// DeleteSelected 删除选中元素
func (e *Editor) DeleteSelected() bool {
	if e.selected == 0 {
		return false
	}
	ok := e.page.Remove(e.selected)
	e.selected = 0
	return ok
}

// AddText 添加文本元素并选中
func (e *Editor) AddText() *elements.Text {
	t := e.page.AddText()
	e.selected = t.ID()
	return t
}

// AddGif 添加图片元素并选中
func (e *Editor) AddGif(name string) *elements.Gif {
	g := e.page.AddGif(name)
	e.selected = g.ID()
	return g
}

// Tick 推进一个动画 tick
func (e *Editor) Tick(in page.Input) {
	e.page.Tick(e.cfg.TickSeconds(), in)
}
