// Package render 把页面绘制到屏幕或图片上
//
// 元素本身不依赖任何渲染基类；本包根据元素的几何信息（变换、排版结果、当前帧）
// 完成绘制与点击测试。ebiten 适配器用于预览窗口，Snapshot 用于无窗口环境。
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/page"
)

// SnapshotOptions 离屏绘制选项
type SnapshotOptions struct {
	Background image.Image // 页面背景图，沿纵向平铺；nil 表示只用背景色
	Labels     bool        // 在每个元素左上角标注 id 与名称
}

// Snapshot 把页面当前事件的状态绘制成一张图片
//
// 元素从后往前绘制，前面的元素覆盖后面的元素。
func Snapshot(p *page.Page, opts SnapshotOptions) *image.NRGBA {
	w := elements.PageWidth
	h := p.Webpage.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if c := p.Webpage.BackgroundColor(); c.Valid {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
	}
	if opts.Background != nil {
		tileBackground(dst, opts.Background)
	}

	els := p.Registry.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		switch e := els[i].(type) {
		case *elements.Gif:
			drawGif(dst, e)
		case *elements.Text:
			drawText(dst, e)
		}
	}

	if opts.Labels {
		for _, el := range els {
			b := page.Bounds(el)
			drawLabel(dst, int(b.X), int(b.Y), el.Name())
		}
	}
	return dst
}

func tileBackground(dst draw.Image, bg image.Image) {
	bb := bg.Bounds()
	if bb.Empty() {
		return
	}
	db := dst.Bounds()
	for y := db.Min.Y; y < db.Max.Y; y += bb.Dy() {
		for x := db.Min.X; x < db.Max.X; x += bb.Dx() {
			draw.Draw(dst, image.Rect(x, y, x+bb.Dx(), y+bb.Dy()), bg, bb.Min, draw.Over)
		}
	}
}

func drawGif(dst draw.Image, g *elements.Gif) {
	frame, ok := g.CurrentFrame()
	if !ok {
		return
	}

	var opts *draw.Options
	if a := g.Alpha(); a < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(a * 255)})}
	}

	m := g.WorldTransform().Aff3()
	b := frame.Bounds()
	// 变换以帧的局部坐标为原点
	s2d := f64.Aff3{m[0], m[1], m[2] - m[0]*float64(b.Min.X) - m[1]*float64(b.Min.Y),
		m[3], m[4], m[5] - m[3]*float64(b.Min.X) - m[4]*float64(b.Min.Y)}
	if isAxisAligned(s2d) {
		draw.NearestNeighbor.Transform(dst, s2d, frame, b, draw.Over, opts)
		return
	}
	draw.BiLinear.Transform(dst, s2d, frame, b, draw.Over, opts)
}

func isAxisAligned(m f64.Aff3) bool {
	return m[1] == 0 && m[3] == 0
}

func drawText(dst draw.Image, t *elements.Text) {
	f := t.Font()
	if f == nil || f.Atlas == nil || f.Atlas.Image == nil {
		return
	}
	lines := t.Layout()

	px, py := t.Position()
	ink := image.NewUniform(t.CurrentColor().RGBA())
	for i, line := range lines {
		lx, ly := t.LineOrigin(i)
		x := int(px + lx)
		y := int(py + ly)
		for _, c := range line.Text {
			if r, ok := f.Atlas.Glyph(c); ok {
				target := image.Rect(x, y, x+r.Dx(), y+r.Dy())
				draw.DrawMask(dst, target, ink, image.Point{}, f.Atlas.Image, r.Min, draw.Over)
			}
			x += f.Advance(c)
		}
	}
}

func drawLabel(dst draw.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 0, B: 255, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+1, y+basicfont.Face7x13.Ascent+1),
	}
	d.DrawString(text)
}
