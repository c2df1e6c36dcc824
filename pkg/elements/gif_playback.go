package elements

import (
	"math"

	"github.com/decker502/hspedit/pkg/utils"
)

// 附加动画的相位系数（每秒）
const (
	flip3DFactor = 0.1
	swingFactor  = 0.25
	swingDegrees = 20.0
	spinFactor   = 0.1
	fadeFactor   = 0.1
)

// Pointer 本帧的鼠标状态（由渲染适配器根据点击测试给出）
type Pointer struct {
	Hovered bool
	Pressed bool // 左键按下
}

// Tick 推进一帧：先按播放策略选择帧，再组合本帧的变换
//
// dt 以秒为单位；附加动画的相位按 speed*系数*dt 推进。
func (g *Gif) Tick(dt float64, p Pointer) Transform {
	g.selectFrame(dt, p)
	g.transform = g.compose(dt)
	g.passes++
	return g.transform
}

func (g *Gif) selectFrame(dt float64, p Pointer) {
	n := len(g.frames)
	if n <= 1 {
		g.currentFrame = 0
		return
	}

	s := g.snap()
	switch s.Playback {
	case PlaybackStill:
		g.currentFrame = utils.ClampInt(s.FrameOffset, 0, n-1)
	case PlaybackSimulateButton:
		step := 0
		if p.Hovered {
			step = 1
			if p.Pressed {
				step = 2
			}
		}
		g.currentFrame = utils.ClampInt(s.FrameOffset+step, 0, n-1)
	case PlaybackMouseOver:
		if !p.Hovered {
			g.currentFrame = 0
			g.frameTimer = 0
			return
		}
		g.advance(dt, n)
	default:
		g.advance(dt, n)
	}
}

func (g *Gif) advance(dt float64, n int) {
	if g.fps <= 0 {
		return
	}
	if g.currentFrame < 0 || g.currentFrame >= n {
		g.currentFrame = 0
	}
	interval := 1 / float64(g.fps)
	g.frameTimer += dt
	for g.frameTimer >= interval {
		g.frameTimer -= interval
		g.currentFrame = (g.currentFrame + 1) % n
	}
}

// compose 以图像中心为原点组合镜像、翻转、3D 翻转与摆动/旋转
func (g *Gif) compose(dt float64) Transform {
	s := g.snap()
	t := Identity()

	if s.Mirrored {
		t = t.Scale(-1, 1)
	}
	if s.Flipped {
		t = t.Scale(1, -1)
	}
	if s.Flip3DX.Enabled {
		g.phaseX += float64(s.Flip3DX.Speed) * flip3DFactor * dt
		t = t.Scale(math.Sin(g.phaseX), 1)
	}
	if s.Flip3DY.Enabled {
		g.phaseY += float64(s.Flip3DY.Speed) * flip3DFactor * dt
		t = t.Scale(1, math.Sin(g.phaseY))
	}
	switch s.Turn {
	case TurnSwing:
		g.phaseTurn += float64(s.TurnSpeed) * swingFactor * dt
		t = t.Rotate(utils.DegToRad(math.Sin(g.phaseTurn) * swingDegrees))
	case TurnSpin:
		g.phaseTurn += float64(s.TurnSpeed) * spinFactor * dt
		t = t.Rotate(g.phaseTurn)
	}
	if s.Fade.Enabled {
		g.phaseFade += float64(s.Fade.Speed) * fadeFactor * dt
	}
	return t
}

// AnimationTransform 最近一次 Tick 得到的动画变换（以图像中心为原点）
func (g *Gif) AnimationTransform() Transform { return g.transform }

// TransformPasses Tick 的累计次数
func (g *Gif) TransformPasses() int { return g.passes }

// Alpha 当前不透明度，淡入淡出关闭时为 1
func (g *Gif) Alpha() float64 {
	if !g.snap().Fade.Enabled {
		return 1
	}
	return 0.5 + 0.5*math.Cos(g.phaseFade)
}

// FrameSize 当前帧尺寸，没有帧时为 0
func (g *Gif) FrameSize() (int, int) {
	img, ok := g.CurrentFrame()
	if !ok {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// WorldTransform 将当前帧的像素坐标映射到页面坐标
//
// 顺序：移到中心 → 动画变换 → 旋转 → 缩放 → 移回并平移到 (X, Y)。
func (g *Gif) WorldTransform() Transform {
	s := g.snap()
	w, h := g.FrameSize()
	cx, cy := float64(w)/2, float64(h)/2

	return Identity().
		Translate(-cx, -cy).
		Concat(g.transform).
		Rotate(utils.DegToRad(float64(s.Rotation))).
		Scale(s.Scale, s.Scale).
		Translate(float64(s.X)+cx, float64(s.Y)+cy)
}

// Bounds 当前帧在页面上的包围盒
func (g *Gif) Bounds() Rect {
	w, h := g.FrameSize()
	if w == 0 || h == 0 {
		return Rect{}
	}
	return g.WorldTransform().BoundsOf(float64(w), float64(h))
}

// Contains 页面坐标点是否落在当前帧的包围盒内
func (g *Gif) Contains(x, y float64) bool {
	return g.Bounds().Contains(x, y)
}
