package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/config/editor.yaml": {Data: []byte("tick_rate: 60\n")},
		"data/config/events.yaml": {Data: []byte("events: []\n")},
	}
}

func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("IsInitialized() = true before Init")
	}

	if _, err := ReadFile("data/config/editor.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v", err)
	}
}

func TestReadEmbedded(t *testing.T) {
	Init(testFS())
	t.Cleanup(func() { Init(nil) })

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"正常读取", "data/config/editor.yaml", "tick_rate: 60\n", false},
		{"去掉 ./ 前缀", "./data/config/events.yaml", "events: []\n", false},
		{"未知前缀", "assets/x.png", "", true},
		{"文件不存在", "data/config/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
