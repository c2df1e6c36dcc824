// Package app 提供页面编辑器的应用包装器
//
// 该包把配置、设置、资源查找和编辑会话组装起来，并实现 ebiten.Game 作为预览窗口。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/hspedit/pkg/assets"
	"github.com/decker502/hspedit/pkg/config"
	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/embedded"
	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/page"
	"github.com/decker502/hspedit/pkg/render"
)

// AppName gdata 存储使用的应用名
const AppName = "hspedit"

// ViewHeight 预览窗口的逻辑高度
const ViewHeight = 15 * elements.LineHeight

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Path 启动时打开的页面文件，为空则新建页面
	Path string
	// Root 覆盖设置中的游戏根目录
	Root string
	// Strict 解码遇到格式错误立即失败
	Strict bool
	// Labels 在元素上标注 id 与名称
	Labels bool
}

// App 是编辑器预览窗口，实现 ebiten.Game 接口
type App struct {
	editor   *Editor
	renderer *render.Renderer
	music    *MusicPlayer
	resolver *assets.Resolver
	canvas   *ebiten.Image

	background string
	scroll     int
	title      string
}

// NewApp 创建并初始化编辑器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}

	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	edCfg, err := config.LoadEmbeddedEditorConfig()
	if err != nil {
		return nil, fmt.Errorf("编辑器配置加载失败: %w", err)
	}
	evCfg, err := config.LoadEmbeddedEventsConfig()
	if err != nil {
		log.Printf("[App] Warning: events config unavailable: %v", err)
	}

	settings := config.OpenSettingsManager(AppName)
	if cfg.Root != "" {
		settings.SetRootPath(cfg.Root)
	}
	if cfg.Strict {
		settings.SetStrict(true)
	}

	a := &App{
		editor:   NewEditor(edCfg, evCfg, settings),
		renderer: render.NewRenderer(),
	}
	a.renderer.Labels = cfg.Labels

	resolver, err := settings.Resolver(edCfg.ModsDir)
	if err != nil {
		log.Printf("[App] Warning: %v, fonts and images are disabled", err)
	} else {
		db := fonts.NewDatabase()
		if err := db.Load(resolver); err != nil {
			log.Printf("[App] Warning: font loading failed: %v", err)
		}
		a.resolver = resolver
		a.editor.BindAssets(db, resolver)
	}

	// 初始化音频上下文
	a.music = NewMusicPlayer(audio.NewContext(SampleRate), a.resolver, settings.Settings().MuteMusic)
	a.editor.OnMediaChange(a.syncMedia)

	if cfg.Path != "" {
		if err := a.editor.Open(cfg.Path); err != nil {
			return nil, fmt.Errorf("页面打开失败: %w", err)
		}
	}

	ebiten.SetTPS(edCfg.TickRate)
	log.Printf("[App] Editor ready (tick rate %d)", edCfg.TickRate)
	return a, nil
}

// Editor 返回编辑会话
func (a *App) Editor() *Editor { return a.editor }

// Update 处理输入并推进动画
func (a *App) Update() error {
	p := a.editor.Page()

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	_, wy := ebiten.Wheel()
	a.scroll -= int(wy * elements.LineHeight)
	a.scroll = max(0, min(a.scroll, p.Webpage.Height()-ViewHeight))

	cx, cy := ebiten.CursorPosition()
	in := page.Input{
		X:       float64(cx),
		Y:       float64(cy + a.scroll),
		Inside:  cx >= 0 && cx < elements.PageWidth && cy >= 0 && cy < ViewHeight,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	if in.Inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.editor.SelectAt(in.X, in.Y)
	}

	a.handleKeys()
	a.editor.Tick(in)
	a.updateTitle()
	return nil
}

func (a *App) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.editor.Save(); err != nil {
			log.Printf("[App] Save failed: %v", err)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.editor.NewPage()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		step := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			step = -1
		}
		a.editor.CycleEvent(step)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		a.editor.AddText()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.logErr(a.editor.RaiseSelected())
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.logErr(a.editor.LowerSelected())
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		a.editor.DeleteSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		a.renderer.Labels = !a.renderer.Labels
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.music.SetMuted(!a.music.Muted())
		a.editor.settings.SetMuteMusic(a.music.Muted())
		a.logErr(a.editor.settings.Save())
	}
}

func (a *App) logErr(err error) {
	if err != nil {
		log.Printf("[App] %v", err)
	}
}

func (a *App) updateTitle() {
	p := a.editor.Page()
	title := p.Webpage.Title()
	if title == "" {
		title = "untitled"
	}
	title = fmt.Sprintf("%s [%s]", title, p.ActiveEvent())
	if p.Dirty() {
		title = "*" + title
	}
	if title != a.title {
		ebiten.SetWindowTitle(title)
		a.title = title
	}
}

// syncMedia 切换页面或事件后加载音乐与背景图
func (a *App) syncMedia(music, background string) {
	a.music.Sync(music)
	a.loadBackground(background)
}

// loadBackground 背景图名变化时重新加载
func (a *App) loadBackground(name string) {
	if name == a.background {
		return
	}
	a.background = name
	a.renderer.Background = nil
	if name == "" || a.resolver == nil {
		return
	}
	img, err := a.resolver.LoadBackground(name)
	if err != nil {
		log.Printf("[App] Background %s unavailable: %v", name, err)
		return
	}
	a.renderer.Background = img
}

// Draw 绘制页面，超出窗口的部分通过滚轮查看
func (a *App) Draw(screen *ebiten.Image) {
	p := a.editor.Page()

	h := max(p.Webpage.Height(), elements.LineHeight)
	if a.canvas == nil || a.canvas.Bounds().Dy() != h {
		if a.canvas != nil {
			a.canvas.Deallocate()
		}
		a.canvas = ebiten.NewImageWithOptions(image.Rect(0, 0, elements.PageWidth, h), nil)
	}
	a.canvas.Clear()
	a.renderer.Selected = a.editor.SelectedID()
	a.renderer.Draw(a.canvas, p)

	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(-a.scroll))
	screen.DrawImage(a.canvas, op)
}

// Layout 返回逻辑屏幕尺寸，与页面宽度一致
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return elements.PageWidth, ViewHeight
}
