package utils

import (
	"image"
	"image/color"
	"math"
)

// ChangeHSL 对图像做色相/饱和度/亮度调整，返回新图像
//
// 参数（均为 “百分比/100” 的比例值）：
//   - hueRotate: 色相旋转量，1.0 为一整圈
//   - satAdjust: 饱和度乘数，1.0 表示不变
//   - lumAdjust: 亮度，1.0 表示不变；增量 (lumAdjust-1) 按像素自身 alpha 缩放
//
// 完全透明的像素保持不变。每个通道结果限制在 [0,1]。
// 像素级操作，只应在属性变化时调用，不要逐帧调用。
func ChangeHSL(src image.Image, hueRotate, satAdjust, lumAdjust float64) *image.NRGBA {
	if src == nil {
		return nil
	}

	dst := toNRGBA(src)

	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			c := dst.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}

			alpha := float64(c.A) / 255
			h, s, l := rgbToHSL(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			h += hueRotate
			l += (lumAdjust - 1) * alpha
			s *= satAdjust
			r, g, b := hslToRGB(h, s, l)

			dst.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r * 255),
				G: uint8(g * 255),
				B: uint8(b * 255),
				A: c.A,
			})
		}
	}
	return dst
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	fmin := math.Min(math.Min(r, g), b)
	fmax := math.Max(math.Max(r, g), b)
	delta := fmax - fmin

	l = (fmax + fmin) / 2
	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (fmax + fmin)
	} else {
		s = delta / (2 - fmax - fmin)
	}

	dR := ((fmax-r)/6 + delta/2) / delta
	dG := ((fmax-g)/6 + delta/2) / delta
	dB := ((fmax-b)/6 + delta/2) / delta

	switch fmax {
	case r:
		h = dB - dG
	case g:
		h = 1.0/3 + dR - dB
	default:
		h = 2.0/3 + dG - dR
	}

	if h < 0 {
		h++
	} else if h > 1 {
		h--
	}
	return h, s, l
}

func hueToRGB(f1, f2, hue float64) float64 {
	if hue < 0 {
		hue++
	} else if hue > 1 {
		hue--
	}

	switch {
	case 6*hue < 1:
		return f1 + (f2-f1)*6*hue
	case 2*hue < 1:
		return f2
	case 3*hue < 2:
		return f1 + (f2-f1)*(2.0/3-hue)*6
	default:
		return f1
	}
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	r, g, b = l, l, l

	if s != 0 {
		var f2 float64
		if l < 0.5 {
			f2 = l * (1 + s)
		} else {
			f2 = (l + s) - s*l
		}
		f1 := 2*l - f2

		r = hueToRGB(f1, f2, h+1.0/3)
		g = hueToRGB(f1, f2, h)
		b = hueToRGB(f1, f2, h-1.0/3)
	}

	return Clamp(r, 0, 1), Clamp(g, 0, 1), Clamp(b, 0, 1)
}

// toNRGBA 复制为非预乘格式，保留透明像素原有的 RGB 值
func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < bounds.Dy(); y++ {
			srcOff := n.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+bounds.Dx()*4], n.Pix[srcOff:srcOff+bounds.Dx()*4])
		}
		return dst
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.Set(x, y, color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return dst
}
