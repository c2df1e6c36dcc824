// Package fonts 提供位图字体图集与字符宽度表的查询服务
//
// 字体由 <family><size><b|n> 标识，例如 "hypnofont0n"。
// 每个字体对应一张 8 列 × 12 行的图集（images/fonts/<id>.png），
// 字符宽度来自同目录下的 fontdata.ini。
package fonts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MetricsFile 字符宽度表文件名
const MetricsFile = "fontdata.ini"

// Metrics 单个字体的排版参数
type Metrics struct {
	Spacing    int          // 字间距（像素）
	LineHeight int          // 行高（像素）
	Widths     map[rune]int // 稀疏的字符宽度表
}

// Advance 返回字符的步进宽度
// 表中存在时为 宽度+字间距，否则为 defaultWidth+字间距
func (m *Metrics) Advance(c rune, defaultWidth int) int {
	if m == nil {
		return defaultWidth
	}
	if w, ok := m.Widths[c]; ok {
		return w + m.Spacing
	}
	return defaultWidth + m.Spacing
}

// ParseMetrics 解析 fontdata.ini
//
// 文件由若干 4 行一组的块组成（空行忽略）：
//
//	[hypnofont0n]
//	spacing=1
//	lineheight=10
//	charwidths=il^2^mw^7
//
// charwidths 以 ^ 分隔，字符组与宽度交替出现。
func ParseMetrics(r io.Reader) (map[string]*Metrics, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read font metrics: %w", err)
	}
	if len(lines)%4 != 0 {
		return nil, fmt.Errorf("malformed font metrics: %d lines is not a multiple of 4", len(lines))
	}

	fonts := make(map[string]*Metrics, len(lines)/4)
	for i := 0; i < len(lines); i += 4 {
		name := strings.ToLower(strings.NewReplacer("[", "", "]", "").Replace(lines[i]))

		m := &Metrics{
			Spacing:    atoiAfter(lines[i+1], "spacing="),
			LineHeight: atoiAfter(lines[i+2], "lineheight="),
			Widths:     make(map[rune]int),
		}

		var chars []rune
		processChars := true
		for _, part := range strings.Split(valueAfter(lines[i+3], "charwidths="), "^") {
			if processChars {
				chars = []rune(part)
			} else {
				width, _ := strconv.Atoi(strings.TrimSpace(part))
				for _, c := range chars {
					m.Widths[c] = width
				}
				chars = nil
			}
			processChars = !processChars
		}

		fonts[name] = m
	}
	return fonts, nil
}

func valueAfter(line, key string) string {
	if len(line) >= len(key) && strings.EqualFold(line[:len(key)], key) {
		return line[len(key):]
	}
	if idx := strings.IndexByte(line, '='); idx >= 0 {
		return line[idx+1:]
	}
	return ""
}

func atoiAfter(line, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(valueAfter(line, key)))
	if err != nil {
		return 0
	}
	return v
}
