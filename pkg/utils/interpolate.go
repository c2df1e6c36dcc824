// Package utils 提供与具体元素无关的数学与图像辅助函数
package utils

import "math"

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpByte 在两个 8 位通道值之间插值（四舍五入）
func LerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(Clamp(Lerp(float64(a), float64(b), t), 0, 255)))
}

// Clamp 将 v 限制在 [lo, hi] 内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt 将 v 限制在 [lo, hi] 内
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DegToRad 角度转弧度
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
