package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/page"
	"github.com/decker502/hspedit/pkg/registry"
	"github.com/decker502/hspedit/pkg/types"
)

var (
	// ErrMalformedRow 行结构不符合格式（单元格不足、未知类型、列数不足、重复 id）
	ErrMalformedRow = errors.New("malformed row")
	// ErrEmptyDocument 文档没有任何行
	ErrEmptyDocument = errors.New("document has no rows")
)

// Options 解码选项
type Options struct {
	// Canon 权威事件名表；为 nil 时事件名只做大写规范化
	Canon *event.Canonicalizer
	// Strict 遇到格式错误的行立即返回错误（开发模式）；否则跳过该行并记录日志
	Strict bool
}

// Decode 解析 JSON 文档并构建页面
//
// 返回的页面处于“未修改”状态，所有元素的激活事件为 DEFAULT。
// 字体与帧加载器需要调用方通过 page.Bind 另行绑定。
func Decode(data []byte, opts Options) (*page.Page, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse page document: %w", err)
	}
	return FromDocument(&doc, opts)
}

// FromDocument 由已解析的文档构建页面
func FromDocument(doc *Document, opts Options) (*page.Page, error) {
	if len(doc.Data) == 0 {
		return nil, ErrEmptyDocument
	}

	d := &decoder{opts: opts, reg: registry.New()}
	d.nextID = maxHeaderID(doc.Data) + registry.IDStep

	web, err := d.decodeWebpage(doc.Data[0])
	if err != nil {
		if opts.Strict {
			return nil, fmt.Errorf("row 0: %w", err)
		}
		log.Printf("[Codec] Row 0 skipped, using an empty webpage: %v", err)
		web = elements.NewWebpage(elements.WebpageID, page.DefaultName, elements.DefaultPageSnapshot())
	}

	for i, row := range doc.Data[1:] {
		el, err := d.decodeRow(row)
		if err == nil {
			err = d.reg.Add(el)
			if err != nil {
				err = fmt.Errorf("%w: %v", ErrMalformedRow, err)
			}
		}
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			log.Printf("[Codec] Row %d skipped: %v", i+1, err)
		}
	}

	if err := d.reg.Check(); err != nil {
		return nil, err
	}
	log.Printf("[Codec] Decoded page with %d elements", d.reg.Len())
	return page.FromParts(web, d.reg), nil
}

type decoder struct {
	opts   Options
	reg    *registry.Registry
	nextID int
}

// maxHeaderID 预扫描所有定义头中的 id，新分配的 id 不会与后面的行冲突
func maxHeaderID(rows [][]Cell) int {
	highest := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		highest = max(highest, atoi(row[0].col(headerID)))
	}
	return highest
}

func (d *decoder) canonical(name string) string {
	if d.opts.Canon != nil {
		return d.opts.Canon.Canonical(name)
	}
	return event.Key(name)
}

// header 校验行结构并返回类型与事件行
func header(row []Cell) (types.ElementKind, Cell, []Cell, error) {
	if len(row) < RowWidth {
		return 0, nil, nil, fmt.Errorf("%w: %d cells, want %d", ErrMalformedRow, len(row), RowWidth)
	}
	head := row[0]
	if len(head) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: missing header", ErrMalformedRow)
	}
	kind, ok := types.ParseElementKind(head[headerType])
	if !ok {
		return 0, nil, nil, fmt.Errorf("%w: unknown type %q", ErrMalformedRow, head[headerType])
	}

	var lines []Cell
	for _, c := range row[1:] {
		if c.blank() {
			break
		}
		lines = append(lines, c)
	}
	if len(lines) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: no event lines", ErrMalformedRow)
	}
	return kind, head, lines, nil
}

func checkWidth(lines []Cell, want int) error {
	for i, l := range lines {
		if len(l) < want {
			return fmt.Errorf("%w: event line %d has %d columns, want %d", ErrMalformedRow, i, len(l), want)
		}
	}
	return nil
}

func (d *decoder) decodeWebpage(row []Cell) (*elements.Webpage, error) {
	kind, head, lines, err := header(row)
	if err != nil {
		return nil, err
	}
	if kind != types.KindWebpage {
		return nil, fmt.Errorf("%w: row 0 is %s, want %s", ErrMalformedRow, kind, types.TagWebpage)
	}
	if err := checkWidth(lines, pageColumns); err != nil {
		return nil, err
	}

	name := head.col(headerName)
	if name == "" {
		name = page.DefaultName
	}
	web := elements.NewWebpage(elements.WebpageID, name, elements.DefaultPageSnapshot())
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		ev := d.canonical(l[pageEvent])
		order = append(order, ev)
		web.SetEvent(ev)
		web.Update(func(s *elements.PageSnapshot) {
			s.Title = l[pageTitle]
			s.Owner = l[pageOwner]
			s.Music = l[pageMusic]
			s.Background = l[pageBackground]
			s.MouseFX = atoi(l[pageMouseFX])
			s.BackgroundColor = types.ColorFromInt(atoiOr(l[pageBackgroundColor], -1))
			s.Description = l[pageDescription]
			s.PageStyle = atoi(l[pageStyle])
			s.OnLoadScript = l[pageOnLoadScript]
		})
		web.SetRowCount(atoiOr(l[pageRowCount], elements.DefaultRowCount))
		web.SetHome(atob(l[pageIsHome]))
	}
	restoreOrder(web, order)
	return web, nil
}

func (d *decoder) decodeRow(row []Cell) (elements.Element, error) {
	kind, head, lines, err := header(row)
	if err != nil {
		return nil, err
	}

	id := atoi(head.col(headerID))
	if id <= 0 {
		id = d.nextID
		d.nextID += registry.IDStep
		log.Printf("[Codec] Assigned id %d to %s %q", id, kind, head.col(headerName))
	}
	name := head.col(headerName)

	var el elements.Element
	var order []string
	switch kind {
	case types.KindText:
		if err := checkWidth(lines, textColumns); err != nil {
			return nil, err
		}
		el, order = d.decodeText(id, name, lines)
	case types.KindGif:
		if err := checkWidth(lines, gifColumns); err != nil {
			return nil, err
		}
		el, order = d.decodeGif(id, name, lines)
	default:
		return nil, fmt.Errorf("%w: %s is only allowed in row 0", ErrMalformedRow, kind)
	}

	restoreOrder(el, order)
	return el, nil
}

// restoreOrder 按文件中的顺序排列事件，并回到 DEFAULT
func restoreOrder(el elements.Element, order []string) {
	for want, name := range order {
		key := event.Key(name)
		for cur, have := range el.Events() {
			if event.Key(have) == key {
				el.MoveEvent(cur, want)
				break
			}
		}
	}
	el.SetEvent(event.Default)
}

func optionalFrom(s string) types.Optional[string] {
	if isAbsent(s) {
		return types.None[string]()
	}
	return types.Some(s)
}

func parseFontStyle(s string) (int, bool) {
	bold := strings.HasSuffix(s, "b")
	return atoi(strings.TrimRight(s, "bn")), bold
}

func (d *decoder) decodeText(id int, name string, lines []Cell) (*elements.Text, []string) {
	txt := elements.NewText(id, name, elements.DefaultTextSnapshot())
	order := make([]string, 0, len(lines))

	for _, l := range lines {
		ev := d.canonical(l[textEvent])
		order = append(order, ev)
		txt.SetEvent(ev)

		size, bold := parseFontStyle(l[textFontStyle])
		txt.SetPosition(atoi(l[textXOffset]), atoi(l[textY]))
		txt.SetWidth(atoi(l[textWidth]))
		txt.SetCaseTag(optionalFrom(l[textCaseTag]))
		txt.SetString(l[textString])
		txt.SetFontColor(types.ColorFromInt(atoiOr(l[textFontColor], -1)))
		txt.SetFont(l[textFontFamily])
		txt.SetFontSize(size)
		txt.SetFontBold(bold)
		txt.SetAlign(types.ParseAlignment(atoi(l[textAlign])))
		txt.SetScript(optionalFrom(l[textScript]))
		txt.SetLaw(types.ParseLawBroken(atoi(l[textLaw])))
		txt.SetAnimationSpeed(atoi(l[textAnimationSpeed]))
		txt.SetAnimation(elements.ParseAnimation(atoi(l[textAnimation])))
		txt.SetFade(types.ColorFromInt(atoiOr(l[textFadeColor], -1)), atoi(l[textFadeSpeed]))
		txt.SetNoContent(atob(l[textNoContent]))
	}
	return txt, order
}

func parseHSL(s string) (int, int, int) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 100, 100
	}
	return atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
}

func parseSecondary(s string) elements.SecondaryAnim {
	v := atoiOr(s, -1)
	if v < 0 {
		return elements.SecondaryAnim{}
	}
	return elements.SecondaryAnim{Enabled: true, Speed: v}
}

func (d *decoder) decodeGif(id int, name string, lines []Cell) (*elements.Gif, []string) {
	g := elements.NewGif(id, name, elements.DefaultGifSnapshot())
	order := make([]string, 0, len(lines))

	for _, l := range lines {
		ev := d.canonical(l[gifEvent])
		order = append(order, ev)
		g.SetEvent(ev)

		h, s, lum := parseHSL(l[gifHSL])
		flipX := parseSecondary(l[gifFlip3DX])
		flipY := parseSecondary(l[gifFlip3DY])
		fade := parseSecondary(l[gifFade])

		g.SetPosition(atoi(l[gifX]), atoi(l[gifY]))
		g.SetHSL(h, s, lum)
		g.SetCaseTag(optionalFrom(l[gifCaseTag]))
		g.SetImageName(l[gifImage])
		g.SetScale(atof(l[gifScale]))
		g.SetRotation(atoi(l[gifRotation]))
		g.SetMirrored(atob(l[gifMirror]))
		g.SetFlipped(atob(l[gifFlip]))
		g.SetScript(optionalFrom(l[gifScript]))
		g.SetLaw(types.ParseLawBroken(atoi(l[gifLaw])))
		g.SetFlip3DXSpeed(flipX.Speed)
		g.SetFlip3DX(flipX.Enabled)
		g.SetFlip3DYSpeed(flipY.Speed)
		g.SetFlip3DY(flipY.Enabled)
		g.SetFadeSpeed(fade.Speed)
		g.SetFade(fade.Enabled)
		g.SetTurn(elements.ParseTurn(atoi(l[gifTurn])))
		g.SetTurnSpeed(atoi(l[gifTurnSpeed]))
		g.SetFrameOffset(atoi(l[gifFrameOffset]))
		g.SetSync(atob(l[gifSync]))
		g.SetPlayback(elements.ParsePlayback(atoi(l[gifPlayback])))
	}
	return g, order
}
