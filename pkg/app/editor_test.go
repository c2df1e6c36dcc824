package app

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/decker502/hspedit/pkg/codec"
	"github.com/decker502/hspedit/pkg/config"
	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/page"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	cfg, err := config.ParseEditorConfig([]byte("text:\n  string: HELLO\npage:\n  default_rows: 4\n"))
	if err != nil {
		t.Fatalf("ParseEditorConfig() error = %v", err)
	}
	events, err := config.ParseEventsConfig([]byte("events: [Night, Rain]\n"))
	if err != nil {
		t.Fatalf("ParseEventsConfig() error = %v", err)
	}
	return NewEditor(cfg, events, nil)
}

func TestEditorNewPage(t *testing.T) {
	e := newTestEditor(t)
	p := e.Page()
	if p.Dirty() {
		t.Error("new page should be clean")
	}
	if p.Webpage.RowCount() != 4 {
		t.Errorf("RowCount() = %d, want 4", p.Webpage.RowCount())
	}
	if txt := e.AddText(); txt.String() != "HELLO" {
		t.Errorf("configured text default not applied: %q", txt.String())
	}
	if e.SelectedID() != 10 {
		t.Errorf("new element should be selected, got %d", e.SelectedID())
	}
}

func TestEditorEventCycle(t *testing.T) {
	e := newTestEditor(t)
	e.Page().AddText().SetEvent("Custom")

	want := []string{"DEFAULT", "Night", "Rain", "Custom"}
	if got := e.EventNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("EventNames() = %v, want %v", got, want)
	}

	e.Page().SetEvent("DEFAULT")
	steps := []struct {
		name string
		step int
		want string
	}{
		{"下一个", 1, "Night"},
		{"再下一个", 1, "Rain"},
		{"回到上一个", -1, "Night"},
		{"向前越过开头", -2, "Custom"},
		{"向后越过结尾", 1, "DEFAULT"},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if got := e.CycleEvent(s.step); got != s.want {
				t.Errorf("CycleEvent(%d) = %q, want %q", s.step, got, s.want)
			}
		})
	}
}

func TestEditorSelection(t *testing.T) {
	e := newTestEditor(t)
	back := e.AddGif("back")
	back.SetFrames([]image.Image{image.NewNRGBA(image.Rect(0, 0, 10, 10))}, 0)
	front := e.AddGif("front")
	front.SetFrames([]image.Image{image.NewNRGBA(image.Rect(0, 0, 10, 10))}, 0)

	if el, ok := e.SelectAt(5, 5); !ok || el.ID() != front.ID() {
		t.Fatalf("SelectAt should pick the front element")
	}
	if err := e.LowerSelected(); err != nil {
		t.Fatalf("LowerSelected() error = %v", err)
	}
	if el, _ := e.SelectAt(5, 5); el.ID() != back.ID() {
		t.Errorf("after lowering, SelectAt = %d, want %d", el.ID(), back.ID())
	}

	if !e.DeleteSelected() {
		t.Fatal("DeleteSelected() = false")
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection should be cleared after delete")
	}
	if _, ok := e.SelectAt(500, 500); ok {
		t.Error("SelectAt outside every element should select nothing")
	}
	if e.DeleteSelected() {
		t.Error("DeleteSelected without selection should be false")
	}
}

func TestEditorSaveAndOpen(t *testing.T) {
	e := newTestEditor(t)

	if err := e.Save(); !errors.Is(err, codec.ErrNoPath) {
		t.Errorf("Save() on an unsaved page = %v, want ErrNoPath", err)
	}

	txt := e.AddText()
	txt.SetEvent("NIGHT")
	txt.SetString("DARK")

	path := filepath.Join(t.TempDir(), "home")
	if err := e.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	written := path + ".hsp"
	if _, err := os.Stat(written); err != nil {
		t.Fatalf("expected %s to exist: %v", written, err)
	}
	if e.Page().Dirty() {
		t.Error("page should be clean after save")
	}
	if got := e.settings.RecentFiles(); len(got) == 0 || got[0] != written {
		t.Errorf("RecentFiles() = %v", got)
	}

	e.NewPage()
	if err := e.Open(written); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	el, ok := e.Page().Element(txt.ID())
	if !ok {
		t.Fatal("opened page lost the text element")
	}
	got := el.(*elements.Text)
	if s, _ := got.SnapshotOf("Night"); s.String != "DARK" {
		t.Errorf("NIGHT snapshot string = %q, want DARK", s.String)
	}
	if err := e.Open(filepath.Join(t.TempDir(), "missing.hsp")); err == nil {
		t.Error("Open() on a missing file should fail")
	}
	if e.Page().Path() != written {
		t.Error("a failed open should keep the current page")
	}
}

func TestEditorMediaChange(t *testing.T) {
	type media struct{ music, background string }
	e := newTestEditor(t)
	var got []media
	e.OnMediaChange(func(music, background string) {
		got = append(got, media{music, background})
	})

	w := e.Page().Webpage
	w.SetMusic("day.ogg")
	w.SetBackground("sky")
	e.Page().SetEvent("Night")
	w.SetMusic("night.ogg")
	e.Page().SetEvent("DEFAULT")
	path := filepath.Join(t.TempDir(), "media.hsp")
	if err := e.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}

	steps := []struct {
		name   string
		action func()
		want   []media
	}{
		{"动画 tick 不触发", func() {
			for i := 0; i < 10; i++ {
				e.Tick(page.Input{})
			}
		}, nil},
		{"切换到 Night", func() { e.CycleEvent(1) }, []media{{"night.ogg", "sky"}}},
		{"切换回 DEFAULT", func() { e.CycleEvent(-1) }, []media{{"day.ogg", "sky"}}},
		{"新建页面", func() { e.NewPage() }, []media{{"", ""}}},
		{"打开页面", func() {
			if err := e.Open(path); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
		}, []media{{"day.ogg", "sky"}}},
	}

	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			got = nil
			s.action()
			if !reflect.DeepEqual(got, s.want) {
				t.Errorf("media callbacks = %v, want %v", got, s.want)
			}
		})
	}
}

func TestEditorTick(t *testing.T) {
	e := newTestEditor(t)
	g := e.AddGif("anim")
	frame := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	g.SetFrames([]image.Image{frame, frame, frame}, 60)

	e.Tick(page.Input{})
	if g.CurrentFrameIndex() != 1 {
		t.Errorf("CurrentFrameIndex() = %d after one tick at 60 fps", g.CurrentFrameIndex())
	}
}
