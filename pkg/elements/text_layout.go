package elements

import (
	"math"
	"strings"

	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/types"
)

// TextLine 排版后的一行
type TextLine struct {
	Text  string
	Width int // 像素宽度（各字符步进之和）
}

// Advancer 字符步进宽度查询
type Advancer interface {
	Advance(c rune) int
}

// WrapText 按像素宽度预算对文本自动换行
//
// 从左到右累加字符步进；当累计宽度达到预算时，回退到该字符之前最近的空格，
// 输出空格之前的部分作为一行，剩余部分去掉首尾空白后继续。
// 找不到空格时继续累加，因此超长单词会整词独占一行，不会在词中断开。
func WrapText(str string, budget int, font Advancer) []string {
	var lines []string
	runes := []rune(str)

	xx := 0
	for index := 0; index < len(runes); {
		xx += font.Advance(runes[index])
		index++

		if xx >= budget {
			if space := lastSpace(runes, index); space != -1 {
				lines = append(lines, strings.TrimSpace(string(runes[:space])))
				runes = []rune(strings.TrimSpace(string(runes[space:])))
				xx = 0
				index = 0
			}
		}
	}
	return append(lines, string(runes))
}

// lastSpace 从 from 位置（含）向前查找空格
func lastSpace(runes []rune, from int) int {
	if from >= len(runes) {
		from = len(runes) - 1
	}
	for i := from; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

type fontAdvancer struct {
	font *fonts.Font
}

func (a fontAdvancer) Advance(c rune) int {
	return a.font.Advance(c)
}

func (t *Text) font() *fonts.Font {
	if t.fonts == nil {
		return nil
	}
	f, _ := t.fonts.Font(t.FontID())
	return f
}

// Layout 在需要时重新排版，返回排版后的行
//
// 排版开销最大，仅在文本、宽度、对齐、字体或打字机进度变化后执行。
func (t *Text) Layout() []TextLine {
	if !t.layoutDirty && t.lines != nil {
		return t.lines
	}

	s := t.snap()
	font := t.font()
	adv := fontAdvancer{font: font}

	var raw []string
	switch s.Animation {
	case AnimMarquee:
		raw = []string{s.String}
	case AnimTypeWriter:
		runes := []rune(s.String)
		n := int(math.Floor(t.typewriterProgress))
		if n > len(runes) {
			n = len(runes)
		}
		raw = WrapText(string(runes[:n]), t.RenderedWidth(), adv)
	default:
		raw = WrapText(s.String, t.RenderedWidth(), adv)
	}

	t.lines = t.lines[:0]
	for _, line := range raw {
		if line == "" {
			// 保证至少一行的高度，选中框不会塌缩
			line = " "
		}
		width := 0
		for _, c := range line {
			width += adv.Advance(c)
		}
		t.lines = append(t.lines, TextLine{Text: line, Width: width})
	}

	t.layoutDirty = false
	t.layoutPasses++
	return t.lines
}

// Lines 当前排版结果（必要时先排版）
func (t *Text) Lines() []string {
	lines := t.Layout()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// LayoutPasses 已执行的排版次数
func (t *Text) LayoutPasses() int { return t.layoutPasses }

// LineHeight 行高
func (t *Text) LineHeight() int {
	return t.font().LineHeight()
}

// FloatingOffset 漂浮动画的纵向偏移
func (t *Text) FloatingOffset() float64 {
	if t.snap().Animation != AnimFloating {
		return 0
	}
	lines := len(t.Layout())
	return math.Sin(t.floating*math.Pi/180) * float64(lines*t.LineHeight()) * 0.25
}

// LocalBounds 元素本地坐标系下的包围盒（锚点在顶部中心）
func (t *Text) LocalBounds() Rect {
	rw := float64(t.RenderedWidth())
	lines := len(t.Layout())
	return Rect{
		X: -rw / 2,
		Y: t.FloatingOffset(),
		W: rw,
		H: float64(lines * t.LineHeight()),
	}
}

// Bounds 页面坐标系下的包围盒
func (t *Text) Bounds() Rect {
	r := t.LocalBounds()
	x, y := t.Position()
	r.X += x
	r.Y += y
	return r
}

// LineOrigin 第 i 行左上角在本地坐标系中的位置（考虑对齐与跑马灯）
func (t *Text) LineOrigin(i int) (float64, float64) {
	lines := t.Layout()
	r := t.LocalBounds()
	if i < 0 || i >= len(lines) {
		return r.X, r.Y
	}

	if t.snap().Animation == AnimMarquee {
		return t.marquee, r.Y
	}

	y := r.Y + float64(i*t.LineHeight())
	w := float64(lines[i].Width)
	switch t.snap().Align {
	case types.AlignCentre:
		return r.X + (r.W-w)/2, y
	case types.AlignRight:
		return r.X + r.W - w, y
	default:
		return r.X, y
	}
}

// Font 当前字体（可能为 nil）
func (t *Text) Font() *fonts.Font { return t.font() }
