package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/page"
	"github.com/decker502/hspedit/pkg/types"
)

// Encode 把页面编码为紧凑的 JSON 文档
func Encode(p *page.Page) ([]byte, error) {
	doc, err := BuildDocument(p)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page: %w", err)
	}
	return data, nil
}

// BuildDocument 把页面转换为文件结构
//
// 第 0 行是 Webpage，其后按 z-order 从前到后每个元素一行；
// 每个元素按事件顺序每个事件一行。
func BuildDocument(p *page.Page) (*Document, error) {
	if p == nil || p.Webpage == nil {
		return nil, fmt.Errorf("encode: nil page")
	}

	rows := make([][]Cell, 0, p.Registry.Len()+1)

	row, err := encodeElement(p.Webpage)
	if err != nil {
		return nil, err
	}
	rows = append(rows, row)

	for _, el := range p.Registry.Elements() {
		row, err := encodeElement(el)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Document{
		Flag: true,
		Size: [3]int{len(rows), RowWidth, RowWidth},
		Data: rows,
	}, nil
}

func encodeElement(el elements.Element) ([]Cell, error) {
	row := make([]Cell, 0, RowWidth)
	row = append(row, Cell{el.Kind().String(), itoa(el.ID()), el.Name()})

	switch e := el.(type) {
	case *elements.Webpage:
		e.EachEvent(func(name string, s elements.PageSnapshot) {
			row = append(row, encodePageLine(name, s, e.IsHome()))
		})
	case *elements.Text:
		e.EachEvent(func(name string, s elements.TextSnapshot) {
			row = append(row, encodeTextLine(name, s, e))
		})
	case *elements.Gif:
		e.EachEvent(func(name string, s elements.GifSnapshot) {
			row = append(row, encodeGifLine(name, s, e))
		})
	}

	if len(row) > RowWidth {
		return nil, fmt.Errorf("element %d has %d events, at most %d fit in a row", el.ID(), len(row)-1, RowWidth-1)
	}
	for len(row) < RowWidth {
		row = append(row, nil)
	}
	return row, nil
}

// 跨事件属性（case tag、脚本、法规）写入每一个事件行
type crossEvent interface {
	CaseTag() types.Optional[string]
	Script() types.Optional[string]
	Law() types.LawBroken
}

func optional(o types.Optional[string]) string {
	if v, ok := o.Get(); ok && v != "" {
		return v
	}
	return absent
}

func law(l types.LawBroken) string {
	if l.IsNone() {
		return absent
	}
	return itoa(int(l))
}

func eventName(name string) string {
	return event.Key(name)
}

func encodePageLine(name string, s elements.PageSnapshot, isHome bool) Cell {
	line := make(Cell, pageColumns)
	line[pageEvent] = eventName(name)
	line[pageTitle] = s.Title
	line[pageOwner] = s.Owner
	line[pageRowCount] = itoa(s.RowCount)
	line[pageMusic] = s.Music
	line[pageBackground] = s.Background
	line[pageMouseFX] = itoa(s.MouseFX)
	line[pageBackgroundColor] = itoa(s.BackgroundColor.Int())
	line[pageDescription] = s.Description
	line[pageStyle] = itoa(s.PageStyle)
	line[pageIsHome] = btoa(isHome)
	line[pageOnLoadScript] = s.OnLoadScript
	return line
}

func fontStyle(size int, bold bool) string {
	flag := "n"
	if bold {
		flag = "b"
	}
	return itoa(size) + flag
}

func encodeTextLine(name string, s elements.TextSnapshot, x crossEvent) Cell {
	line := make(Cell, textColumns)
	line[textEvent] = eventName(name)
	line[textXOffset] = itoa(s.XOffset)
	line[textY] = itoa(s.Y)
	line[textWidth] = itoa(s.Width)
	line[textCaseTag] = optional(x.CaseTag())
	line[textString] = s.String
	line[textFontColor] = itoa(s.FontColor.Int())
	line[textFontFamily] = s.FontFamily
	line[textFontStyle] = fontStyle(s.FontSize, s.FontBold)
	line[textAlign] = itoa(int(s.Align))
	line[textScript] = optional(x.Script())
	line[textLaw] = law(x.Law())
	line[textAnimation] = itoa(int(s.Animation))
	line[textAnimationSpeed] = itoa(s.AnimationSpeed)
	line[textFadeColor] = itoa(s.FadeColor.Int())
	line[textFadeSpeed] = itoa(s.FadeSpeed)
	line[textNoContent] = btoa(s.NoContent)
	return line
}

func secondary(a elements.SecondaryAnim) string {
	if !a.Enabled {
		return absent
	}
	return itoa(a.Speed)
}

func encodeGifLine(name string, s elements.GifSnapshot, x crossEvent) Cell {
	line := make(Cell, gifColumns)
	line[gifEvent] = eventName(name)
	line[gifX] = itoa(s.X)
	line[gifY] = itoa(s.Y)
	line[gifHSL] = strings.Join([]string{itoa(s.H), itoa(s.S), itoa(s.L)}, ",")
	line[gifCaseTag] = optional(x.CaseTag())
	line[gifImage] = s.ImageName
	line[gifScale] = strconv.FormatFloat(s.Scale, 'f', 2, 64)
	line[gifRotation] = itoa(s.Rotation)
	line[gifMirror] = btoa(s.Mirrored)
	line[gifFlip] = btoa(s.Flipped)
	line[gifScript] = optional(x.Script())
	line[gifLaw] = law(x.Law())
	line[gifFlip3DX] = secondary(s.Flip3DX)
	line[gifFlip3DY] = secondary(s.Flip3DY)
	line[gifFade] = secondary(s.Fade)
	line[gifTurn] = itoa(int(s.Turn))
	line[gifTurnSpeed] = itoa(s.TurnSpeed)
	line[gifFPS] = "0"
	line[gifFrameOffset] = itoa(s.FrameOffset)
	line[gifSync] = btoa(s.Sync)
	line[gifPlayback] = itoa(int(s.Playback))
	return line
}
