package elements

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform 二维仿射变换
//
// 以 f64.Aff3 行优先存储：
//
//	| A B C |
//	| D E F |
//
// 点 (x, y) 映射为 (A*x + B*y + C, D*x + E*y + F)。
// Scale/Rotate/Translate 都在已有变换“之后”施加，即按调用顺序作用于点。
type Transform struct {
	m f64.Aff3
}

// Identity 单位变换
func Identity() Transform {
	return Transform{m: f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// Aff3 返回底层矩阵（供 x/image/draw 与 ebiten.GeoM 使用）
func (t Transform) Aff3() f64.Aff3 {
	if t.m == (f64.Aff3{}) {
		return Identity().m
	}
	return t.m
}

func (t Transform) then(o f64.Aff3) Transform {
	a := t.Aff3()
	return Transform{m: f64.Aff3{
		o[0]*a[0] + o[1]*a[3], o[0]*a[1] + o[1]*a[4], o[0]*a[2] + o[1]*a[5] + o[2],
		o[3]*a[0] + o[4]*a[3], o[3]*a[1] + o[4]*a[4], o[3]*a[2] + o[4]*a[5] + o[5],
	}}
}

// Scale 缩放
func (t Transform) Scale(sx, sy float64) Transform {
	return t.then(f64.Aff3{sx, 0, 0, 0, sy, 0})
}

// Rotate 旋转（弧度，顺时针为正，与屏幕坐标一致）
func (t Transform) Rotate(rad float64) Transform {
	sin, cos := math.Sincos(rad)
	return t.then(f64.Aff3{cos, -sin, 0, sin, cos, 0})
}

// Translate 平移
func (t Transform) Translate(dx, dy float64) Transform {
	return t.then(f64.Aff3{1, 0, dx, 0, 1, dy})
}

// Concat 先施加 t，再施加 o
func (t Transform) Concat(o Transform) Transform {
	return t.then(o.Aff3())
}

// Apply 变换一个点
func (t Transform) Apply(x, y float64) (float64, float64) {
	m := t.Aff3()
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Rect 浮点矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty 面积是否为零
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// BoundsOf 返回 w×h 矩形经变换后的轴对齐包围盒
func (t Transform) BoundsOf(w, h float64) Rect {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = t.Apply(0, 0)
	xs[1], ys[1] = t.Apply(w, 0)
	xs[2], ys[2] = t.Apply(0, h)
	xs[3], ys[3] = t.Apply(w, h)

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
