// verify_page - 页面文件校验工具
// 解码每个页面文件，重新编码后再次解码，检查两次编码结果完全一致
//
// 用法（在项目根目录运行）：
//
//	go run ./cmd/verify_page -strict pages/*.hsp
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/hspedit/pkg/codec"
	"github.com/decker502/hspedit/pkg/config"
	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/page"
)

type report struct {
	file    string
	passed  bool
	message string
}

var reports []report

func addReport(file string, passed bool, message string) {
	reports = append(reports, report{file: file, passed: passed, message: message})
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	fmt.Printf("%s | %-40s | %s\n", status, file, message)
}

func summary(p *page.Page) string {
	texts, gifs := 0, 0
	for _, el := range p.Registry.Elements() {
		switch el.(type) {
		case *elements.Text:
			texts++
		case *elements.Gif:
			gifs++
		}
	}
	return fmt.Sprintf("%q: %d text, %d gif, events %v", p.Webpage.Title(), texts, gifs, p.Events())
}

func verify(path string, opts codec.Options) {
	p, err := codec.Load(path, opts)
	if err != nil {
		addReport(path, false, err.Error())
		return
	}

	first, err := codec.Encode(p)
	if err != nil {
		addReport(path, false, fmt.Sprintf("encode: %v", err))
		return
	}
	again, err := codec.Decode(first, opts)
	if err != nil {
		addReport(path, false, fmt.Sprintf("decode re-encoded: %v", err))
		return
	}
	second, err := codec.Encode(again)
	if err != nil {
		addReport(path, false, fmt.Sprintf("encode again: %v", err))
		return
	}
	if !bytes.Equal(first, second) {
		addReport(path, false, "re-encoding is not stable")
		return
	}
	addReport(path, true, summary(p))
}

func main() {
	strict := flag.Bool("strict", false, "遇到格式错误的行立即失败")
	eventsPath := flag.String("events", config.EventsConfigPath, "事件列表 YAML")
	verbose := flag.Bool("verbose", false, "输出解码日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := codec.Options{Strict: *strict}
	if events, err := config.LoadEventsConfig(*eventsPath); err == nil {
		opts.Canon = events.Canonicalizer()
	} else {
		fmt.Fprintf(os.Stderr, "warning: %v (event names are only upper-cased)\n", err)
	}

	for _, path := range flag.Args() {
		verify(path, opts)
	}

	failed := 0
	for _, r := range reports {
		if !r.passed {
			failed++
		}
	}
	fmt.Printf("\n%d/%d passed\n", len(reports)-failed, len(reports))
	if failed > 0 {
		os.Exit(1)
	}
}
