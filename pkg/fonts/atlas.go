package fonts

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// 图集网格尺寸
const (
	AtlasColumns = 8
	AtlasRows    = 12
)

// Alphabet 图集中字符的排列顺序（共 94 个，最后一个是空格）
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,;:?!-_~#\"'&()[]|`\\/@°+=*€$$<> "

// FontID 返回字体标识 <family><size><b|n>
func FontID(family string, size int, bold bool) string {
	flag := 'n'
	if bold {
		flag = 'b'
	}
	return fmt.Sprintf("%s%d%c", strings.ToLower(family), size, flag)
}

// Atlas 固定网格的字形图集
type Atlas struct {
	Image      image.Image
	CellWidth  int
	CellHeight int
	glyphs     map[rune]image.Rectangle

	ebitenImage *ebiten.Image // 首次绘制时上传
}

// NewAtlas 按 8×12 网格切分图集
// 格子尺寸 = 图集尺寸 / (8, 12)
func NewAtlas(img image.Image) *Atlas {
	a := &Atlas{
		Image:  img,
		glyphs: make(map[rune]image.Rectangle),
	}
	if img == nil {
		return a
	}

	bounds := img.Bounds()
	a.CellWidth = bounds.Dx() / AtlasColumns
	a.CellHeight = bounds.Dy() / AtlasRows

	col, row := 0, 0
	for _, c := range Alphabet {
		// 重复出现的字符（$）以最后一个格子为准
		x := bounds.Min.X + col*a.CellWidth
		y := bounds.Min.Y + row*a.CellHeight
		a.glyphs[c] = image.Rect(x, y, x+a.CellWidth, y+a.CellHeight)
		col++
		if col >= AtlasColumns {
			col = 0
			row++
		}
	}
	return a
}

// Glyph 返回字符在图集中的矩形
func (a *Atlas) Glyph(c rune) (image.Rectangle, bool) {
	if a == nil {
		return image.Rectangle{}, false
	}
	r, ok := a.glyphs[c]
	return r, ok
}

// EbitenImage 返回图集的 ebiten 图像，首次调用时上传
//
// 只能在 ebiten 的绘制协程中调用；没有图集图片时返回 nil。
func (a *Atlas) EbitenImage() *ebiten.Image {
	if a == nil || a.Image == nil {
		return nil
	}
	if a.ebitenImage == nil {
		a.ebitenImage = ebiten.NewImageFromImage(a.Image)
	}
	return a.ebitenImage
}

// EbitenGlyph 返回字符在图集上的子图像
func (a *Atlas) EbitenGlyph(c rune) (*ebiten.Image, bool) {
	rect, ok := a.Glyph(c)
	if !ok || a.Image == nil {
		return nil, false
	}
	return a.EbitenImage().SubImage(rect).(*ebiten.Image), true
}
