package fonts

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/hspedit/pkg/assets"
)

// Font 一个可用于排版的字体：宽度表 + 图集
type Font struct {
	ID      string
	Metrics *Metrics
	Atlas   *Atlas
}

// NewFont 由宽度表和图集图片构造字体
func NewFont(id string, metrics *Metrics, atlasImage image.Image) *Font {
	return &Font{ID: id, Metrics: metrics, Atlas: NewAtlas(atlasImage)}
}

// CellWidth 字形格子宽度，图集缺失时为 0
func (f *Font) CellWidth() int {
	if f == nil || f.Atlas == nil {
		return 0
	}
	return f.Atlas.CellWidth
}

// CellHeight 字形格子高度，图集缺失时为 0
func (f *Font) CellHeight() int {
	if f == nil || f.Atlas == nil {
		return 0
	}
	return f.Atlas.CellHeight
}

// LineHeight 行高：有图集时为格子高度，否则取 fontdata.ini 中的 lineheight
func (f *Font) LineHeight() int {
	if f == nil {
		return 0
	}
	if f.Atlas != nil {
		return f.CellHeight()
	}
	if f.Metrics == nil {
		return 0
	}
	return f.Metrics.LineHeight
}

// Advance 字符步进宽度
func (f *Font) Advance(c rune) int {
	if f == nil {
		return 0
	}
	return f.Metrics.Advance(c, f.CellWidth())
}

// Source 按标识查找字体，文本元素通过它获取排版数据
type Source interface {
	Font(id string) (*Font, bool)
}

// Database 字体数据库
type Database struct {
	fonts map[string]*Font
}

// NewDatabase 创建空的字体数据库
func NewDatabase() *Database {
	return &Database{fonts: make(map[string]*Font)}
}

// Add 注册字体（测试与命令行工具使用）
func (db *Database) Add(f *Font) {
	db.fonts[f.ID] = f
}

// Load 从资源目录加载 fontdata.ini 以及所有字体图集
//
// 图集解码在多个 goroutine 中并行进行，Load 返回前全部完成。
// 缺失的图集只记录日志：该字体保留宽度表，但格子尺寸为 0，不渲染任何字形。
func (db *Database) Load(resolver *assets.Resolver) error {
	metricsPath, err := resolver.FindFile(filepath.Join(assets.DirFonts, MetricsFile))
	if err != nil {
		return fmt.Errorf("failed to locate font metrics: %w", err)
	}

	file, err := os.Open(metricsPath)
	if err != nil {
		return fmt.Errorf("failed to open font metrics: %w", err)
	}
	defer file.Close()

	metrics, err := ParseMetrics(file)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	loaded := make(map[string]*Font, len(metrics))

	var g errgroup.Group
	g.SetLimit(8)
	for id, m := range metrics {
		g.Go(func() error {
			var img image.Image
			path, err := resolver.FindFile(filepath.Join(assets.DirFonts, id+".png"))
			if err == nil {
				img, err = assets.DecodeImage(path)
			}
			if err != nil {
				log.Printf("[FontDatabase] Atlas for %s unavailable: %v", id, err)
			}

			mu.Lock()
			loaded[id] = NewFont(id, m, img)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for id, f := range loaded {
		db.fonts[id] = f
	}
	log.Printf("[FontDatabase] Loaded %d fonts from %s", len(loaded), metricsPath)
	return nil
}

// Font 按标识查找字体
func (db *Database) Font(id string) (*Font, bool) {
	if db == nil {
		return nil, false
	}
	f, ok := db.fonts[strings.ToLower(id)]
	return f, ok
}

// IDs 返回所有字体标识（排序）
func (db *Database) IDs() []string {
	ids := make([]string, 0, len(db.fonts))
	for id := range db.fonts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Families 返回去掉 <size><b|n> 后缀的字体族名（去重、排序）
func (db *Database) Families() []string {
	seen := make(map[string]bool)
	var families []string
	for id := range db.fonts {
		family := strings.TrimRight(strings.TrimRight(id, "bn"), "0123456789")
		if family != "" && !seen[family] {
			seen[family] = true
			families = append(families, family)
		}
	}
	sort.Strings(families)
	return families
}
