package elements

import (
	"math"

	"github.com/decker502/hspedit/pkg/types"
	"github.com/decker502/hspedit/pkg/utils"
)

// ColorFade 循环往复的两段式颜色渐变
//
// 先用 speed/2 帧从基础色渐变到目标色，再用同样时长渐变回来，无限循环。
// speed 为 0 或任一颜色无效时，颜色固定为基础色。
type ColorFade struct {
	base    types.Color
	target  types.Color
	speed   int
	elapsed float64 // 已经过的帧数
}

// NewColorFade 创建颜色渐变
func NewColorFade(base, target types.Color, speed int) ColorFade {
	return ColorFade{base: base, target: target, speed: speed}
}

// Active 渐变是否在运行
func (f *ColorFade) Active() bool {
	return f.speed > 0 && f.base.Valid && f.target.Valid
}

// Tick 推进若干帧
func (f *ColorFade) Tick(frames float64) {
	if !f.Active() {
		f.elapsed = 0
		return
	}
	f.elapsed = math.Mod(f.elapsed+frames, float64(f.speed))
}

// Color 当前颜色
func (f *ColorFade) Color() types.Color {
	if !f.Active() {
		return f.base
	}

	half := float64(f.speed) / 2
	from, to := f.base, f.target
	p := f.elapsed / half
	if f.elapsed >= half {
		from, to = f.target, f.base
		p = (f.elapsed - half) / half
	}
	return types.RGB(
		utils.LerpByte(from.R, to.R, p),
		utils.LerpByte(from.G, to.G, p),
		utils.LerpByte(from.B, to.B, p),
	)
}
