// render_page - 离屏渲染页面为 PNG
// 可指定事件与动画 tick 数，用于检查页面在某个事件下的外观
//
// 用法（在项目根目录运行）：
//
//	go run ./cmd/render_page -root /path/to/game -event NIGHT -ticks 30 -o night.png page.hsp
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/decker502/hspedit/pkg/assets"
	"github.com/decker502/hspedit/pkg/codec"
	"github.com/decker502/hspedit/pkg/config"
	"github.com/decker502/hspedit/pkg/fonts"
	"github.com/decker502/hspedit/pkg/page"
	"github.com/decker502/hspedit/pkg/render"
)

func main() {
	root := flag.String("root", "", "游戏根目录（字体与图片）")
	configPath := flag.String("config", config.EditorConfigPath, "编辑器配置 YAML")
	eventsPath := flag.String("events", config.EventsConfigPath, "事件列表 YAML")
	eventName := flag.String("event", "", "渲染前切换到的事件")
	ticks := flag.Int("ticks", 0, "渲染前推进的动画 tick 数")
	labels := flag.Bool("labels", false, "标注元素 id 与名称")
	out := flag.String("o", "page.png", "输出 PNG 路径")
	verbose := flag.Bool("verbose", false, "输出加载日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *root, *configPath, *eventsPath, *eventName, *ticks, *labels, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in, root, configPath, eventsPath, eventName string, ticks int, labels bool, out string) error {
	cfg, err := config.LoadEditorConfig(configPath)
	if err != nil {
		return err
	}

	opts := codec.Options{}
	if events, err := config.LoadEventsConfig(eventsPath); err == nil {
		opts.Canon = events.Canonicalizer()
	}

	p, err := codec.Load(in, opts)
	if err != nil {
		return err
	}

	snapOpts := render.SnapshotOptions{Labels: labels}
	if root != "" {
		resolver := assets.NewResolverFromRoots(root)
		db := fonts.NewDatabase()
		if err := db.Load(resolver); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		p.Bind(db, resolver)
		if bg := p.Webpage.Background(); bg != "" {
			if img, err := resolver.LoadBackground(bg); err == nil {
				snapOpts.Background = img
			} else {
				fmt.Fprintf(os.Stderr, "warning: background %s: %v\n", bg, err)
			}
		}
	}

	if eventName != "" {
		p.SetEvent(eventName)
	}
	for i := 0; i < ticks; i++ {
		p.Tick(cfg.TickSeconds(), page.Input{})
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, render.Snapshot(p, snapOpts)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
