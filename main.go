package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/hspedit/pkg/app"
	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	root := flag.String("root", "", "游戏根目录（覆盖已保存的设置）")
	strict := flag.Bool("strict", false, "解码遇到格式错误立即失败")
	labels := flag.Bool("labels", false, "在元素上标注 id 与名称")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: %s [选项] [页面文件.hsp]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	embedded.Init(dataFS)

	editor, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Path:    flag.Arg(0),
		Root:    *root,
		Strict:  *strict,
		Labels:  *labels,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(elements.PageWidth*2, app.ViewHeight*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Hypnospace Page Editor")

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
	if editor.Editor().Page().Dirty() {
		fmt.Fprintln(os.Stderr, "warning: unsaved changes were discarded")
	}
}
