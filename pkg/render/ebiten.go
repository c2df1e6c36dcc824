package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/page"
)

var selectionColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Renderer 用 ebiten 绘制页面预览
//
// 元素的帧是标准库图像，首次绘制时上传为 ebiten.Image 并缓存；
// 一帧内未被使用的缓存会被释放（Gif 重新着色后旧帧即失效）。
// 字体图集由 fonts.Atlas 自己持有上传后的图像。
type Renderer struct {
	cache map[image.Image]*ebiten.Image
	used  map[image.Image]bool

	Background image.Image // 页面背景图，nil 表示只用背景色
	Selected   int         // 高亮的元素 id，0 表示不高亮
	Labels     bool
}

// NewRenderer 创建预览渲染器
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[image.Image]*ebiten.Image),
		used:  make(map[image.Image]bool),
	}
}

func (r *Renderer) upload(img image.Image) *ebiten.Image {
	r.used[img] = true
	if e, ok := r.cache[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	r.cache[img] = e
	return e
}

func (r *Renderer) prune() {
	for img, e := range r.cache {
		if !r.used[img] {
			e.Deallocate()
			delete(r.cache, img)
		}
	}
	clear(r.used)
}

// Draw 把页面绘制到 screen，元素从后往前绘制
func (r *Renderer) Draw(screen *ebiten.Image, p *page.Page) {
	if c := p.Webpage.BackgroundColor(); c.Valid {
		screen.Fill(c.RGBA())
	}
	if r.Background != nil {
		r.drawBackground(screen, p.Webpage.Height())
	}

	els := p.Registry.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		switch e := els[i].(type) {
		case *elements.Gif:
			r.drawGif(screen, e)
		case *elements.Text:
			r.drawText(screen, e)
		}
	}

	for _, el := range els {
		b := page.Bounds(el)
		if r.Labels {
			ebitenutil.DebugPrintAt(screen, strconv.Itoa(el.ID())+" "+el.Name(), int(b.X), int(b.Y))
		}
		if el.ID() == r.Selected && !b.Empty() {
			vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, selectionColor, false)
		}
	}

	r.prune()
}

func (r *Renderer) drawBackground(screen *ebiten.Image, height int) {
	bg := r.upload(r.Background)
	w, h := bg.Bounds().Dx(), bg.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < height; y += h {
		for x := 0; x < elements.PageWidth; x += w {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(bg, op)
		}
	}
}

func (r *Renderer) drawGif(screen *ebiten.Image, g *elements.Gif) {
	frame, ok := g.CurrentFrame()
	if !ok {
		return
	}

	m := g.WorldTransform().Aff3()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(0, 1, m[1])
	op.GeoM.SetElement(0, 2, m[2])
	op.GeoM.SetElement(1, 0, m[3])
	op.GeoM.SetElement(1, 1, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	op.ColorScale.ScaleAlpha(float32(g.Alpha()))
	if m[1] != 0 || m[3] != 0 {
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(r.upload(frame), op)
}

func (r *Renderer) drawText(screen *ebiten.Image, t *elements.Text) {
	f := t.Font()
	if f == nil || f.Atlas.EbitenImage() == nil {
		return
	}
	ink := t.CurrentColor().RGBA()

	px, py := t.Position()
	for i, line := range t.Layout() {
		lx, ly := t.LineOrigin(i)
		x := px + lx
		for _, c := range line.Text {
			if glyph, ok := f.Atlas.EbitenGlyph(c); ok {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(x, py+ly)
				op.ColorScale.ScaleWithColor(ink)
				screen.DrawImage(glyph, op)
			}
			x += float64(f.Advance(c))
		}
	}
}
