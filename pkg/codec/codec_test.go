package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/page"
	"github.com/decker502/hspedit/pkg/types"
)

// buildSamplePage 1 个 Webpage、2 个 Text（分别 2 个和 1 个事件）、1 个 Gif（3 个事件）
func buildSamplePage(t *testing.T) *page.Page {
	t.Helper()
	p := page.New()
	p.Webpage.SetTitle("Coolpage")
	p.Webpage.SetOwner("Zane")
	p.Webpage.SetBackground("stars")
	p.Webpage.SetBackgroundColor(types.RGB(10, 20, 30))
	p.Webpage.SetHome(true)
	p.Webpage.SetEvent("NIGHT")
	p.Webpage.SetRowCount(14)
	p.Webpage.SetEvent(event.Default)

	t1 := p.AddText()
	t1.SetString("HELLO WORLD")
	t1.SetPosition(-10, 40)
	t1.SetWidth(80)
	t1.SetFontBold(true)
	t1.SetFontSize(2)
	t1.SetCaseTag(types.Some("CASE-7"))
	t1.SetLaw(types.LawHarass)
	t1.SetEvent("NIGHT")
	t1.SetString("GOOD NIGHT")
	t1.SetFade(types.RGB(255, 0, 0), 30)
	t1.SetEvent(event.Default)

	t2 := p.AddText()
	t2.SetString("scrolling news")
	t2.SetAnimationSpeed(15)
	t2.SetAnimation(elements.AnimMarquee)
	t2.SetScript(types.Some("http://hypnospace/zane"))

	g := p.AddGif("cat")
	g.SetPosition(120, 64)
	g.SetHSL(30, 80, 110)
	g.SetScale(1.5)
	g.SetRotation(45)
	g.SetMirrored(true)
	g.SetEvent("NIGHT")
	g.SetFlip3DXSpeed(5)
	g.SetFlip3DX(true)
	g.SetPlayback(elements.PlaybackSimulateButton)
	g.SetFrameOffset(2)
	g.SetEvent("RAIN")
	g.SetTurn(elements.TurnSwing)
	g.SetTurnSpeed(3)
	g.SetFadeSpeed(7)
	g.SetFade(true)
	g.SetSync(true)
	g.SetEvent(event.Default)

	if !g.MoveEvent(2, 1) {
		t.Fatal("MoveEvent(2, 1) failed")
	}
	return p
}

func textSnapshots(el *elements.Text) map[string]elements.TextSnapshot {
	out := map[string]elements.TextSnapshot{}
	el.EachEvent(func(name string, s elements.TextSnapshot) { out[name] = s })
	return out
}

func gifSnapshots(el *elements.Gif) map[string]elements.GifSnapshot {
	out := map[string]elements.GifSnapshot{}
	el.EachEvent(func(name string, s elements.GifSnapshot) { out[name] = s })
	return out
}

func TestRoundTrip(t *testing.T) {
	orig := buildSamplePage(t)

	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(data, Options{Strict: true})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !reflect.DeepEqual(got.Registry.Order(), orig.Registry.Order()) {
		t.Errorf("z-order = %v, want %v", got.Registry.Order(), orig.Registry.Order())
	}
	if got.Webpage.Events()[1] != "NIGHT" || !got.Webpage.IsHome() {
		t.Errorf("webpage events = %v, home = %v", got.Webpage.Events(), got.Webpage.IsHome())
	}
	if s, _ := got.Webpage.SnapshotOf("NIGHT"); s.RowCount != 14 || s.Title != "Coolpage" {
		t.Errorf("webpage NIGHT = %+v", s)
	}

	for _, want := range orig.Registry.Elements() {
		el, ok := got.Registry.Get(want.ID())
		if !ok {
			t.Fatalf("element %d missing", want.ID())
		}
		if el.Name() != want.Name() {
			t.Errorf("element %d name = %q, want %q", want.ID(), el.Name(), want.Name())
		}
		if !reflect.DeepEqual(el.Events(), want.Events()) {
			t.Errorf("element %d events = %v, want %v", want.ID(), el.Events(), want.Events())
		}
		if el.ActiveEvent() != event.Default {
			t.Errorf("element %d active = %q", want.ID(), el.ActiveEvent())
		}

		switch w := want.(type) {
		case *elements.Text:
			g := el.(*elements.Text)
			if !reflect.DeepEqual(textSnapshots(g), textSnapshots(w)) {
				t.Errorf("text %d snapshots differ:\n got %+v\nwant %+v", w.ID(), textSnapshots(g), textSnapshots(w))
			}
			if g.CaseTag() != w.CaseTag() || g.Script() != w.Script() || g.Law() != w.Law() {
				t.Errorf("text %d cross-event fields differ", w.ID())
			}
		case *elements.Gif:
			g := el.(*elements.Gif)
			if !reflect.DeepEqual(gifSnapshots(g), gifSnapshots(w)) {
				t.Errorf("gif %d snapshots differ:\n got %+v\nwant %+v", w.ID(), gifSnapshots(g), gifSnapshots(w))
			}
		}
	}

	again, err := Encode(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, data) {
		t.Errorf("re-encoding differs:\n%s\n%s", again, data)
	}
	if got.Dirty() {
		t.Error("decoded page should be clean")
	}
}

func TestDocumentShape(t *testing.T) {
	doc, err := BuildDocument(buildSamplePage(t))
	if err != nil {
		t.Fatal(err)
	}

	if !doc.Flag || doc.Size != [3]int{4, RowWidth, RowWidth} {
		t.Errorf("flag = %v, size = %v", doc.Flag, doc.Size)
	}
	for i, row := range doc.Data {
		if len(row) != RowWidth {
			t.Errorf("row %d has %d cells", i, len(row))
		}
	}

	widths := map[string]int{types.TagWebpage: pageColumns, types.TagText: textColumns, types.TagGif: gifColumns}
	for i, row := range doc.Data {
		want := widths[row[0][headerType]]
		for j, line := range row[1:] {
			if line != nil && len(line) != want {
				t.Errorf("row %d line %d has %d columns, want %d", i, j, len(line), want)
			}
		}
	}
	if pageColumns != 12 || textColumns != 17 || gifColumns != 21 {
		t.Errorf("schema widths = %d/%d/%d", pageColumns, textColumns, gifColumns)
	}

	gifRow := doc.Data[1]
	line := gifRow[1]
	if line[gifHSL] != "30,80,110" || line[gifScale] != "1.50" || line[gifFPS] != "0" {
		t.Errorf("gif DEFAULT line = %q", line)
	}
	if line[gifFlip3DX] != "-1" || line[gifCaseTag] != "-1" || line[gifLaw] != "-1" {
		t.Errorf("absent values should be written as -1: %q", line)
	}

	data, _ := json.Marshal(doc)
	if !strings.Contains(string(data), ",0,0]") {
		t.Error("placeholders should be written as 0")
	}
}

func textLine(event string, extra map[int]string) []any {
	line := []any{event, "0", "0", "100", "-1", "Hypnospace", "1741311", "HypnoFont", "0n", "1", "-1", "-1", "0", "0", "-1", "0", "0"}
	for k, v := range extra {
		line[k] = v
	}
	return line
}

func rowOf(cells ...any) []any {
	row := make([]any, RowWidth)
	for i := range row {
		row[i] = 0
	}
	copy(row, cells)
	return row
}

func webpageRow() []any {
	return rowOf(
		[]any{"Webpage", 0, "page"},
		[]any{"DEFAULT", "Title", "Owner", "10", "", "", "0", "-1", "", "0", "0", ""},
	)
}

func mustJSON(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{"flag": true, "size": []int{len(rows), 21, 21}, "data": rows})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecodeLegacySentinelsAndNumbers(t *testing.T) {
	data := mustJSON(t,
		webpageRow(),
		rowOf(
			[]any{"Text", 30, "legacy"},
			textLine("default", map[int]string{textCaseTag: "0", textScript: "0", textLaw: "0", textWidth: "abc"}),
			nil,
			textLine("IGNORED", nil),
		),
	)

	p, err := Decode(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	el, ok := p.Registry.Get(30)
	if !ok {
		t.Fatal("numeric header id should be accepted")
	}
	txt := el.(*elements.Text)
	if txt.CaseTag().IsSet() || txt.Script().IsSet() || !txt.Law().IsNone() {
		t.Error("\"0\" sentinels should decode as absent")
	}
	if txt.Width() != 0 {
		t.Errorf("invalid number should decode as 0, got %d", txt.Width())
	}
	if got := txt.Events(); !reflect.DeepEqual(got, []string{"DEFAULT"}) {
		t.Errorf("a null cell ends the event list, got %v", got)
	}
}

func TestDecodeClampsRowCount(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want int
	}{
		{"零行", "0", 1},
		{"负数", "-5", 1},
		{"非数字回退默认值", "x", elements.DefaultRowCount},
		{"正常值", "14", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			web := webpageRow()
			web[1].([]any)[pageRowCount] = tt.cell
			data := mustJSON(t, web)

			for _, strict := range []bool{false, true} {
				p, err := Decode(data, Options{Strict: strict})
				if err != nil {
					t.Fatalf("Decode(strict=%v) error = %v", strict, err)
				}
				if got := p.Webpage.RowCount(); got != tt.want {
					t.Errorf("strict=%v: RowCount() = %d, want %d", strict, got, tt.want)
				}
				if p.Webpage.Height() <= 0 {
					t.Errorf("strict=%v: Height() = %d, want positive", strict, p.Webpage.Height())
				}
			}
		})
	}
}

func TestDecodeAssignsMissingIDs(t *testing.T) {
	data := mustJSON(t,
		webpageRow(),
		rowOf([]any{"Text", "0", "first"}, textLine("DEFAULT", nil)),
		rowOf([]any{"Text", "40", "second"}, textLine("DEFAULT", nil)),
	)

	p, err := Decode(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Registry.Order(); !reflect.DeepEqual(got, []int{50, 40}) {
		t.Errorf("Order() = %v, want [50 40]", got)
	}
}

func TestDecodeMalformedRows(t *testing.T) {
	short := []any{[]any{"Text", "10", "short"}, textLine("DEFAULT", nil)}
	tests := []struct {
		name string
		row  []any
	}{
		{"单元格不足", short},
		{"未知类型", rowOf([]any{"Button", "10", "x"}, textLine("DEFAULT", nil))},
		{"列数不足", rowOf([]any{"Text", "10", "x"}, []any{"DEFAULT", "0"})},
		{"没有事件行", rowOf([]any{"Text", "10", "x"})},
		{"重复的页面行", webpageRow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := rowOf([]any{"Text", "20", "good"}, textLine("DEFAULT", nil))
			data := mustJSON(t, webpageRow(), tt.row, good)

			p, err := Decode(data, Options{})
			if err != nil {
				t.Fatalf("lenient Decode() error = %v", err)
			}
			if got := p.Registry.Order(); !reflect.DeepEqual(got, []int{20}) {
				t.Errorf("Order() = %v, want [20]", got)
			}

			_, err = Decode(data, Options{Strict: true})
			if !errors.Is(err, ErrMalformedRow) {
				t.Errorf("strict Decode() error = %v, want ErrMalformedRow", err)
			}
		})
	}
}

func TestDecodeDuplicateIDs(t *testing.T) {
	data := mustJSON(t,
		webpageRow(),
		rowOf([]any{"Text", "10", "a"}, textLine("DEFAULT", nil)),
		rowOf([]any{"Text", "10", "b"}, textLine("DEFAULT", nil)),
	)
	p, err := Decode(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Registry.Len() != 1 {
		t.Errorf("duplicate row should be skipped, Len() = %d", p.Registry.Len())
	}
	if _, err := Decode(data, Options{Strict: true}); !errors.Is(err, ErrMalformedRow) {
		t.Errorf("strict Decode() error = %v", err)
	}
}

func TestDecodeCanonicalEventNames(t *testing.T) {
	data := mustJSON(t,
		webpageRow(),
		rowOf([]any{"Text", "10", "a"}, textLine("DEFAULT", nil), textLine("ZANEWAKE", nil), textLine("unknown", nil)),
	)
	canon := event.NewCanonicalizer([]string{"ZaneWake"})

	p, err := Decode(data, Options{Canon: canon})
	if err != nil {
		t.Fatal(err)
	}
	el, _ := p.Registry.Get(10)
	if got := el.Events(); !reflect.DeepEqual(got, []string{"DEFAULT", "ZaneWake", "UNKNOWN"}) {
		t.Errorf("Events() = %v", got)
	}
}

func TestDecodeInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"不是 JSON", "not json"},
		{"没有行", `{"flag":true,"size":[0,21,21],"data":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, err := Decode([]byte(tt.data), Options{}); err == nil || p != nil {
				t.Errorf("Decode() = %v, %v, want error", p, err)
			}
		})
	}
}

func TestCellJSON(t *testing.T) {
	var cells []Cell
	if err := json.Unmarshal([]byte(`[0, null, ["a", 5, 1.5, true]]`), &cells); err != nil {
		t.Fatal(err)
	}
	if cells[0] != nil || cells[1] != nil {
		t.Error("0 and null should decode as placeholders")
	}
	if want := (Cell{"a", "5", "1.5", "1"}); !reflect.DeepEqual(cells[2], want) {
		t.Errorf("cell = %q, want %q", cells[2], want)
	}

	out, err := json.Marshal([]Cell{nil, {"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `[0,["x"]]` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestWithExtension(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"page", "", "page.hsp"},
		{"page.hsp", "", "page.hsp"},
		{"page.HSP", ".hsp", "page.HSP"},
		{"page.json", "hsp", "page.json.hsp"},
	}
	for _, tt := range tests {
		if got := WithExtension(tt.path, tt.ext); got != tt.want {
			t.Errorf("WithExtension(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := buildSamplePage(t)

	path, err := Save(filepath.Join(dir, "zane"), p, "")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, "zane.hsp") {
		t.Errorf("Save() path = %q", path)
	}
	if p.Dirty() || p.Path() != path {
		t.Error("saved page should be clean and associated with the file")
	}

	loaded, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Registry.Len() != 3 || loaded.Path() != path {
		t.Errorf("loaded %d elements from %q", loaded.Registry.Len(), loaded.Path())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestSaveFailureKeepsPageDirty(t *testing.T) {
	p := page.New()
	p.AddText()

	_, err := Save(filepath.Join(t.TempDir(), "missing", "page"), p, "")
	if err == nil {
		t.Fatal("Save() into a missing directory should fail")
	}
	if !p.Dirty() || p.Path() != "" {
		t.Error("failed save must not touch page state")
	}
}

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.hsp"), Options{})
	if err == nil || p != nil {
		t.Errorf("Load() = %v, %v, want error", p, err)
	}
}
