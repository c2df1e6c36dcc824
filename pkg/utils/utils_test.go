package utils

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, 10, 0, 0},
		{"中点", 0, 10, 0.5, 5},
		{"终点", 0, 10, 1, 10},
		{"反向", 10, 0, 0.25, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

func TestLerpByte(t *testing.T) {
	if got := LerpByte(0, 255, 0.5); got != 128 {
		t.Errorf("LerpByte(0,255,0.5) = %d, 期望 128", got)
	}
	if got := LerpByte(200, 100, 1.5); got != 50 {
		t.Errorf("LerpByte overshoot = %d, 期望 50", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp 结果错误")
	}
	if ClampInt(7, -5, 5) != 5 || ClampInt(-7, -5, 5) != -5 {
		t.Error("ClampInt 结果错误")
	}
}

func newSolid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, c)
	img.SetNRGBA(1, 0, color.NRGBA{}) // 完全透明
	return img
}

// TestChangeHSLIdentity 默认参数不应改变颜色
func TestChangeHSLIdentity(t *testing.T) {
	src := newSolid(color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	out := ChangeHSL(src, 0, 1, 1)

	got := out.NRGBAAt(0, 0)
	if got.R != 255 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("identity adjustment changed colour: %+v", got)
	}
}

func TestChangeHSLHueRotation(t *testing.T) {
	src := newSolid(color.NRGBA{R: 255, A: 255})
	// 旋转三分之一圈：红 -> 绿
	out := ChangeHSL(src, 1.0/3, 1, 1)

	got := out.NRGBAAt(0, 0)
	if got.G < 250 || got.R > 5 || got.B > 5 {
		t.Errorf("expected green after hue rotation, got %+v", got)
	}
}

func TestChangeHSLDesaturateAndDarken(t *testing.T) {
	src := newSolid(color.NRGBA{R: 255, A: 255})

	grey := ChangeHSL(src, 0, 0, 1).NRGBAAt(0, 0)
	if grey.R != grey.G || grey.G != grey.B {
		t.Errorf("zero saturation should be grey, got %+v", grey)
	}

	black := ChangeHSL(src, 0, 1, 0).NRGBAAt(0, 0)
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("lightness 0 on opaque pixel should be black, got %+v", black)
	}
}

func TestChangeHSLKeepsTransparentPixels(t *testing.T) {
	src := newSolid(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 99, G: 98, B: 97, A: 0})

	out := ChangeHSL(src, 0.5, 2, 0.3)
	got := out.NRGBAAt(1, 0)
	if got != (color.NRGBA{R: 99, G: 98, B: 97, A: 0}) {
		t.Errorf("transparent pixel modified: %+v", got)
	}
	if ChangeHSL(nil, 0, 1, 1) != nil {
		t.Error("nil source should yield nil")
	}
}

// TestChangeHSLSourceBounds 结果总是从 (0,0) 开始，大小与源图一致
func TestChangeHSLSourceBounds(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	offset := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	paletted := image.NewPaletted(image.Rect(-1, -1, 2, 1), color.Palette{red})
	for y := 3; y < 5; y++ {
		for x := 2; x < 6; x++ {
			offset.SetNRGBA(x, y, red)
		}
	}

	tests := []struct {
		name string
		src  image.Image
		want image.Rectangle
	}{
		{"非零原点的 NRGBA", offset, image.Rect(0, 0, 4, 2)},
		{"调色板图像", paletted, image.Rect(0, 0, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ChangeHSL(tt.src, 0, 1, 1)
			if out.Bounds() != tt.want {
				t.Fatalf("Bounds() = %v, want %v", out.Bounds(), tt.want)
			}
			last := tt.want.Max.Sub(image.Pt(1, 1))
			if got := out.NRGBAAt(last.X, last.Y); got != red {
				t.Errorf("pixel at %v = %+v, want %+v", last, got, red)
			}
		})
	}
}
