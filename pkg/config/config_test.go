package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/hspedit/pkg/embedded"
	"github.com/decker502/hspedit/pkg/types"
)

func TestParseEditorConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *EditorConfig)
	}{
		{
			name: "空配置使用默认值",
			yaml: "{}",
			check: func(t *testing.T, cfg *EditorConfig) {
				if cfg.TickRate != 60 || cfg.FileExtension != ".hsp" || cfg.Page.DefaultRows != 10 {
					t.Errorf("defaults = %+v", cfg)
				}
				if cfg.Text.String != "Hypnospace" || cfg.Text.Color != 1741311 || cfg.Text.Style != "0n" {
					t.Errorf("text defaults = %+v", cfg.Text)
				}
			},
		},
		{
			name: "自定义文本默认值",
			yaml: "text:\n  string: Hello\n  style: 2b\n  align: 2\n  width: 50\n",
			check: func(t *testing.T, cfg *EditorConfig) {
				s := cfg.TextSnapshot()
				if s.String != "Hello" || s.FontSize != 2 || !s.FontBold || s.Align != types.AlignRight || s.Width != 50 {
					t.Errorf("TextSnapshot() = %+v", s)
				}
			},
		},
		{
			name: "图片默认值",
			yaml: "gif:\n  scale: 2.5\n",
			check: func(t *testing.T, cfg *EditorConfig) {
				s := cfg.GifSnapshot()
				if s.Scale != 2.5 || s.S != 100 || s.L != 100 {
					t.Errorf("GifSnapshot() = %+v", s)
				}
			},
		},
		{name: "宽度越界", yaml: "text:\n  width: 150\n", wantErr: true},
		{name: "非法对齐", yaml: "text:\n  align: 5\n", wantErr: true},
		{name: "非法样式", yaml: "text:\n  style: big\n", wantErr: true},
		{name: "非法时钟", yaml: "tick_rate: -5\n", wantErr: true},
		{name: "YAML 语法错误", yaml: "page: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseEditorConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEditorConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestShippedConfigFiles(t *testing.T) {
	root := filepath.Join("..", "..", "data", "config")

	cfg, err := LoadEditorConfig(filepath.Join(root, "editor.yaml"))
	if err != nil {
		t.Fatalf("LoadEditorConfig() error = %v", err)
	}
	if cfg.TickSeconds() != 1.0/60 {
		t.Errorf("TickSeconds() = %v", cfg.TickSeconds())
	}

	events, err := LoadEventsConfig(filepath.Join(root, "events.yaml"))
	if err != nil {
		t.Fatalf("LoadEventsConfig() error = %v", err)
	}
	if len(events.Events) == 0 {
		t.Error("shipped events list is empty")
	}
}

func TestEmbeddedConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{
		EditorConfigPath: {Data: []byte("tick_rate: 30\n")},
		EventsConfigPath: {Data: []byte("events: [ZaneWake, Night]\n")},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, err := LoadEmbeddedEditorConfig()
	if err != nil || cfg.TickRate != 30 {
		t.Fatalf("LoadEmbeddedEditorConfig() = %+v, %v", cfg, err)
	}

	events, err := LoadEmbeddedEventsConfig()
	if err != nil {
		t.Fatal(err)
	}
	canon := events.Canonicalizer()
	if got := canon.Canonical("zanewake"); got != "ZaneWake" {
		t.Errorf("Canonical(zanewake) = %q", got)
	}
	if got := canon.Names(); !reflect.DeepEqual(got, []string{"DEFAULT", "ZaneWake", "Night"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestSettingsManagerDegradedMode(t *testing.T) {
	sm := NewSettingsManager(nil)

	if _, err := sm.RootPath(); !errors.Is(err, ErrNoRootPath) {
		t.Errorf("RootPath() error = %v, want ErrNoRootPath", err)
	}
	if _, err := sm.Resolver("mods"); !errors.Is(err, ErrNoRootPath) {
		t.Errorf("Resolver() error = %v, want ErrNoRootPath", err)
	}

	sm.SetRootPath("/games/hypnospace/data")
	sm.SetEnabledMods([]string{"modA", "modB"})
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}

	r, err := sm.Resolver("mods")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join("/games/hypnospace/data", "mods", "modA"),
		filepath.Join("/games/hypnospace/data", "mods", "modB"),
		"/games/hypnospace/data",
	}
	if got := r.Roots(); !reflect.DeepEqual(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
}

func TestRecentFiles(t *testing.T) {
	sm := NewSettingsManager(nil)
	for i := 0; i < MaxRecentFiles+3; i++ {
		sm.AddRecentFile(filepath.Join("pages", string(rune('a'+i))+".hsp"))
	}
	sm.AddRecentFile(filepath.Join("pages", "e.hsp"))

	recent := sm.RecentFiles()
	if len(recent) != MaxRecentFiles {
		t.Fatalf("len(RecentFiles()) = %d", len(recent))
	}
	if recent[0] != filepath.Join("pages", "e.hsp") {
		t.Errorf("most recent = %q", recent[0])
	}
	seen := map[string]bool{}
	for _, r := range recent {
		if seen[r] {
			t.Errorf("duplicate entry %q", r)
		}
		seen[r] = true
	}
}

func TestSettingsPersistence(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	open := func() *SettingsManager {
		m, err := gdata.Open(gdata.Config{AppName: "hspedit_settings_test"})
		if err != nil {
			t.Skipf("Cannot create gdata manager for testing: %v", err)
		}
		return NewSettingsManager(m)
	}

	sm := open()
	sm.SetRootPath("/games/hypnospace/data")
	sm.AddRecentFile("zane.hsp")
	sm.SetStrict(true)
	sm.SetMuteMusic(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := open()
	got := reloaded.Settings()
	if got.RootPath != "/games/hypnospace/data" || !got.Strict || !got.MuteMusic || !reflect.DeepEqual(got.RecentFiles, []string{"zane.hsp"}) {
		t.Errorf("reloaded settings = %+v", got)
	}
}
