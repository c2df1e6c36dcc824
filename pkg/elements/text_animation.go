package elements

import "math"

// 打字机计时器的重置值
const (
	typewriterStep  = 100.0
	typewriterPause = 800.0
)

// Tick 推进一帧文本动画
//
// dt 为经过的秒数；60 Hz 时钟下每次为 1/60。
// 各模式的增量按“每帧”定义，dt 换算为帧数后乘上。
func (t *Text) Tick(dt float64) {
	frames := dt * TickRate
	s := t.snap()

	switch s.Animation {
	case AnimTypeWriter:
		t.tickTypewriter(frames, len([]rune(s.String)))
	case AnimFloating:
		t.floating += float64(s.AnimationSpeed) * 0.4 * frames
	case AnimMarquee:
		t.marquee -= float64(s.AnimationSpeed) / 10 * frames
		lines := t.Layout()
		half := float64(t.RenderedWidth()) / 2
		if len(lines) > 0 && t.marquee < -half-float64(lines[0].Width) {
			// 整条文字移出左边缘后，从右边缘外重新开始
			t.marquee = half
		}
	}

	t.fade.Tick(frames)
	t.Layout()
}

func (t *Text) tickTypewriter(frames float64, length int) {
	before := math.Floor(t.typewriterProgress)

	t.typewriterTimer -= float64(t.snap().AnimationSpeed) * frames
	if t.typewriterTimer < 0 {
		t.typewriterProgress += float64(t.typewriterDirection)

		switch {
		case t.typewriterProgress >= float64(length) && t.typewriterDirection > 0:
			t.typewriterTimer = typewriterPause
			t.typewriterDirection = -1
		case t.typewriterProgress < 0 && t.typewriterDirection < 0:
			t.typewriterTimer = typewriterPause
			t.typewriterDirection = 1
		default:
			t.typewriterTimer = typewriterStep
		}
	}

	t.typewriterProgress = math.Max(0, math.Min(t.typewriterProgress, float64(length)))
	if math.Floor(t.typewriterProgress) != before {
		t.layoutDirty = true
	}
}

// TypewriterProgress 打字机进度（已显示的字符数）
func (t *Text) TypewriterProgress() float64 { return t.typewriterProgress }

// TypewriterDirection 打字机方向：1 为输入，-1 为删除
func (t *Text) TypewriterDirection() int { return t.typewriterDirection }

// Floating 漂浮动画相位（角度）
func (t *Text) Floating() float64 { return t.floating }

// Marquee 跑马灯水平偏移
func (t *Text) Marquee() float64 { return t.marquee }
