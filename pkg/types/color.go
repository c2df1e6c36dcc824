package types

import (
	"fmt"
	"image/color"
)

// Color 页面颜色
// 文件中编码为 r | g<<8 | b<<16，-1 表示“无颜色”
type Color struct {
	R, G, B uint8
	Valid   bool
}

// NoColor 无颜色（编码为 -1）
var NoColor = Color{}

// RGB 构造一个有效颜色
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// ColorFromInt 解码文件中的整数颜色
// 负数永远不会构造出有效颜色
func ColorFromInt(v int) Color {
	if v < 0 {
		return NoColor
	}
	return Color{
		R:     uint8(v & 0xFF),
		G:     uint8((v >> 8) & 0xFF),
		B:     uint8((v >> 16) & 0xFF),
		Valid: true,
	}
}

// Int 编码为文件中的整数，无效颜色返回 -1
func (c Color) Int() int {
	if !c.Valid {
		return -1
	}
	return int(c.R) | int(c.G)<<8 | int(c.B)<<16
}

// RGBA 转换为标准库颜色，无效颜色返回完全透明
func (c Color) RGBA() color.RGBA {
	if !c.Valid {
		return color.RGBA{}
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

func (c Color) String() string {
	if !c.Valid {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
