package elements

import (
	"image"
	"log"

	"github.com/decker502/hspedit/pkg/assets"
	"github.com/decker502/hspedit/pkg/event"
	"github.com/decker502/hspedit/pkg/types"
	"github.com/decker502/hspedit/pkg/utils"
)

// Playback 帧播放策略（互斥）
type Playback int

// 文件中的编码值
const (
	PlaybackLoop           Playback = 0
	PlaybackMouseOver      Playback = 1
	PlaybackStill          Playback = -1
	PlaybackSimulateButton Playback = -2
)

// ParsePlayback 读取文件中的整数，未知值视为循环播放
func ParsePlayback(v int) Playback {
	switch Playback(v) {
	case PlaybackMouseOver, PlaybackStill, PlaybackSimulateButton:
		return Playback(v)
	default:
		return PlaybackLoop
	}
}

func (p Playback) String() string {
	switch p {
	case PlaybackMouseOver:
		return "MouseOver"
	case PlaybackStill:
		return "Still"
	case PlaybackSimulateButton:
		return "SimulateButton"
	default:
		return "Loop"
	}
}

// Turn 摆动/旋转子模式
type Turn int

const (
	TurnNone  Turn = 0
	TurnSwing Turn = 1
	TurnSpin  Turn = 2
)

// ParseTurn 读取文件中的整数，未知值视为 TurnNone
func ParseTurn(v int) Turn {
	switch Turn(v) {
	case TurnSwing, TurnSpin:
		return Turn(v)
	default:
		return TurnNone
	}
}

// SecondaryAnim 可独立开关的附加动画（3D 翻转、淡入淡出）
// 文件中编码为速度值，-1 表示关闭；关闭时速度不会被保存
type SecondaryAnim struct {
	Enabled bool
	Speed   int
}

// GifSnapshot Gif 元素在一个事件下的全部属性
type GifSnapshot struct {
	X, Y        int
	H, S, L     int // 色相旋转 / 饱和度 / 亮度，均为百分比
	ImageName   string
	Scale       float64
	Rotation    int // 角度
	Mirrored    bool
	Flipped     bool
	Flip3DX     SecondaryAnim
	Flip3DY     SecondaryAnim
	Fade        SecondaryAnim
	Turn        Turn
	TurnSpeed   int
	FrameOffset int
	Sync        bool
	Playback    Playback
}

// Clone 快照只包含值类型字段，直接复制即可
func (s GifSnapshot) Clone() GifSnapshot { return s }

// DefaultGifSnapshot 新建图片元素时的默认值
func DefaultGifSnapshot() GifSnapshot {
	return GifSnapshot{S: 100, L: 100, Scale: 1}
}

// FrameLoader 按名称加载源帧（由 assets.Resolver 实现）
type FrameLoader interface {
	LoadFrames(name string, frameOffset int) (assets.FrameSet, error)
}

// Gif 动画/静态图片元素
type Gif struct {
	base
	events *event.Store[GifSnapshot]
	loader FrameLoader

	// 以下为运行时状态，不属于任何快照
	sources      []image.Image // 原始帧
	frames       []image.Image // 经 HSL 调整后的帧
	fps          int
	frameTimer   float64
	currentFrame int
	phaseX       float64
	phaseY       float64
	phaseTurn    float64
	phaseFade    float64
	transform    Transform
	passes       int
}

// NewGif 以给定快照作为 DEFAULT 事件创建图片元素
func NewGif(id int, name string, initial GifSnapshot) *Gif {
	return &Gif{
		base:      newBase(id, name),
		events:    event.NewStore(initial),
		transform: Identity(),
	}
}

// Kind 元素类型
func (g *Gif) Kind() types.ElementKind { return types.KindGif }

func (g *Gif) snap() *GifSnapshot { return g.events.Active() }

// Snapshot 返回当前事件快照的副本
func (g *Gif) Snapshot() GifSnapshot { return *g.snap() }

// SnapshotOf 返回指定事件快照的副本
func (g *Gif) SnapshotOf(name string) (GifSnapshot, bool) { return g.events.Get(name) }

// EachEvent 按顺序遍历所有事件快照（整页序列化使用）
func (g *Gif) EachEvent(fn func(name string, s GifSnapshot)) { g.events.Each(fn) }

// BindLoader 设置帧加载器并立即刷新
func (g *Gif) BindLoader(loader FrameLoader) {
	g.loader = loader
	g.Refresh()
}

// SetEvent 切换激活事件
func (g *Gif) SetEvent(name string) {
	if g.events.SetActive(name) {
		g.dirty.Mark()
	}
	g.Refresh()
}

// ClearEvent 删除事件
func (g *Gif) ClearEvent(name string) bool {
	if !g.events.Clear(name) {
		return false
	}
	g.dirty.Mark()
	g.Refresh()
	return true
}

// Events 按创建顺序返回事件名
func (g *Gif) Events() []string { return g.events.Events() }

// ActiveEvent 当前激活的事件名
func (g *Gif) ActiveEvent() string { return g.events.ActiveName() }

// MoveEvent 调整事件顺序
func (g *Gif) MoveEvent(from, to int) bool {
	if !g.events.Move(from, to) {
		return false
	}
	g.dirty.Mark()
	return true
}

// Refresh 按当前快照重新加载源帧并重建运行时状态
// 未绑定加载器时保留已有源帧，只重新着色
//
// 找不到图片时元素保留全部属性，只是没有可渲染的帧。
// 只有一帧时关闭播放计时器，并立即做一次变换，使镜像/翻转等修改马上可见。
func (g *Gif) Refresh() {
	s := g.snap()
	if g.loader != nil {
		g.sources = nil
		g.fps = 0
		if s.ImageName != "" {
			set, err := g.loader.LoadFrames(s.ImageName, s.FrameOffset)
			if err != nil {
				log.Printf("[Gif] %d (%s): %v", g.id, g.name, err)
			}
			g.sources = set.Frames
			g.fps = set.FPS
		}
	}

	g.recolor()
	g.resetProgress()
	g.pokeSingleFrame()
}

// SetFrames 直接设置源帧与帧率（不经过资源加载）
func (g *Gif) SetFrames(frames []image.Image, fps int) {
	g.sources = frames
	g.fps = fps
	g.recolor()
	g.resetProgress()
	g.pokeSingleFrame()
}

func (g *Gif) pokeSingleFrame() {
	if len(g.sources) == 1 {
		g.fps = 0
		g.Tick(0, Pointer{})
	}
}

func (g *Gif) recolor() {
	s := g.snap()
	g.frames = make([]image.Image, len(g.sources))
	identity := s.H == 0 && s.S == 100 && s.L == 100
	for i, src := range g.sources {
		if identity {
			g.frames[i] = src
			continue
		}
		g.frames[i] = utils.ChangeHSL(src, float64(s.H)/100, float64(s.S)/100, float64(s.L)/100)
	}
}

func (g *Gif) resetAnimations() {
	g.phaseX = 0
	g.phaseY = 0
	g.phaseTurn = 0
	g.phaseFade = 0
}

func (g *Gif) resetProgress() {
	g.resetAnimations()
	if g.fps > 0 {
		g.currentFrame = 0
	}
	g.frameTimer = 0
}

// ========== 属性读写（作用于当前激活事件） ==========

// SetPosition 设置页面坐标
func (g *Gif) SetPosition(x, y int) {
	s := g.snap()
	s.X = x
	s.Y = y
	g.dirty.Mark()
}

// Position 页面坐标
func (g *Gif) Position() (int, int) {
	s := g.snap()
	return s.X, s.Y
}

// SetHSL 设置色相/饱和度/亮度并重新着色所有源帧
func (g *Gif) SetHSL(h, s, l int) {
	snap := g.snap()
	snap.H, snap.S, snap.L = h, s, l
	g.recolor()
	if len(g.frames) == 1 {
		g.Tick(0, Pointer{})
	}
	g.dirty.Mark()
}

// HSL 色相/饱和度/亮度
func (g *Gif) HSL() (int, int, int) {
	s := g.snap()
	return s.H, s.S, s.L
}

// SetImageName 设置图片名并重新加载
func (g *Gif) SetImageName(name string) {
	g.snap().ImageName = name
	g.dirty.Mark()
	g.Refresh()
}

// ImageName 图片名
func (g *Gif) ImageName() string { return g.snap().ImageName }

// SetFrameOffset 设置帧偏移（静止帧下标或艺术字字符下标）
func (g *Gif) SetFrameOffset(f int) {
	g.snap().FrameOffset = f
	g.dirty.Mark()
	g.Refresh()
	if len(g.sources) > 1 {
		g.currentFrame = utils.ClampInt(f, 0, len(g.sources)-1)
	} else {
		g.currentFrame = 0
	}
}

// FrameOffset 帧偏移
func (g *Gif) FrameOffset() int { return g.snap().FrameOffset }

// SetScale 设置统一缩放
func (g *Gif) SetScale(scale float64) {
	g.snap().Scale = scale
	g.dirty.Mark()
}

// Scale 统一缩放
func (g *Gif) Scale() float64 { return g.snap().Scale }

// SetRotation 设置旋转角度
func (g *Gif) SetRotation(deg int) {
	g.snap().Rotation = deg
	g.dirty.Mark()
}

// Rotation 旋转角度
func (g *Gif) Rotation() int { return g.snap().Rotation }

// SetMirrored 水平镜像
func (g *Gif) SetMirrored(b bool) {
	g.snap().Mirrored = b
	g.pokeIfStill()
	g.dirty.Mark()
}

// Mirrored 是否水平镜像
func (g *Gif) Mirrored() bool { return g.snap().Mirrored }

// SetFlipped 垂直翻转
func (g *Gif) SetFlipped(b bool) {
	g.snap().Flipped = b
	g.pokeIfStill()
	g.dirty.Mark()
}

// Flipped 是否垂直翻转
func (g *Gif) Flipped() bool { return g.snap().Flipped }

func (g *Gif) pokeIfStill() {
	if len(g.frames) == 1 {
		g.Tick(0, Pointer{})
	}
}

// SetFlip3DX 开关 X 轴 3D 翻转
func (g *Gif) SetFlip3DX(enabled bool) {
	g.snap().Flip3DX.Enabled = enabled
	g.resetAnimations()
	g.dirty.Mark()
}

// SetFlip3DXSpeed 设置 X 轴 3D 翻转速度
func (g *Gif) SetFlip3DXSpeed(speed int) {
	g.snap().Flip3DX.Speed = speed
	g.resetAnimations()
	g.dirty.Mark()
}

// Flip3DX X 轴 3D 翻转
func (g *Gif) Flip3DX() SecondaryAnim { return g.snap().Flip3DX }

// SetFlip3DY 开关 Y 轴 3D 翻转
func (g *Gif) SetFlip3DY(enabled bool) {
	g.snap().Flip3DY.Enabled = enabled
	g.resetAnimations()
	g.dirty.Mark()
}

// SetFlip3DYSpeed 设置 Y 轴 3D 翻转速度
func (g *Gif) SetFlip3DYSpeed(speed int) {
	g.snap().Flip3DY.Speed = speed
	g.resetAnimations()
	g.dirty.Mark()
}

// Flip3DY Y 轴 3D 翻转
func (g *Gif) Flip3DY() SecondaryAnim { return g.snap().Flip3DY }

// SetFade 开关淡入淡出
func (g *Gif) SetFade(enabled bool) {
	g.snap().Fade.Enabled = enabled
	g.resetAnimations()
	g.dirty.Mark()
}

// SetFadeSpeed 设置淡入淡出速度
func (g *Gif) SetFadeSpeed(speed int) {
	g.snap().Fade.Speed = speed
	g.resetAnimations()
	g.dirty.Mark()
}

// Fade 淡入淡出
func (g *Gif) Fade() SecondaryAnim { return g.snap().Fade }

// SetTurn 设置摆动/旋转子模式
func (g *Gif) SetTurn(turn Turn) {
	g.snap().Turn = turn
	g.resetAnimations()
	g.dirty.Mark()
}

// Turn 摆动/旋转子模式
func (g *Gif) Turn() Turn { return g.snap().Turn }

// SetTurnSpeed 设置摆动/旋转速度
func (g *Gif) SetTurnSpeed(speed int) {
	g.snap().TurnSpeed = speed
	g.resetAnimations()
	g.dirty.Mark()
}

// TurnSpeed 摆动/旋转速度
func (g *Gif) TurnSpeed() int { return g.snap().TurnSpeed }

// SetSync 设置同步标记
func (g *Gif) SetSync(b bool) {
	g.snap().Sync = b
	g.resetAnimations()
	g.dirty.Mark()
}

// Sync 同步标记
func (g *Gif) Sync() bool { return g.snap().Sync }

// SetPlayback 设置播放策略
func (g *Gif) SetPlayback(p Playback) {
	g.snap().Playback = p
	g.resetAnimations()
	g.dirty.Mark()
}

// Playback 播放策略
func (g *Gif) Playback() Playback { return g.snap().Playback }

// SetFPS 设置帧率，0 表示不播放
func (g *Gif) SetFPS(fps int) {
	g.fps = fps
	g.frameTimer = 0
}

// FPS 帧率
func (g *Gif) FPS() int { return g.fps }

// FrameCount 可渲染的帧数
func (g *Gif) FrameCount() int { return len(g.frames) }

// CurrentFrameIndex 当前帧下标
func (g *Gif) CurrentFrameIndex() int { return g.currentFrame }

// CurrentFrame 当前帧图像；没有帧时返回 false
func (g *Gif) CurrentFrame() (image.Image, bool) {
	if len(g.frames) == 0 {
		return nil, false
	}
	idx := g.currentFrame
	if idx < 0 || idx >= len(g.frames) {
		idx = 0
	}
	return g.frames[idx], true
}

// ResetAnimations 重置所有附加动画相位（用于同步多个元素）
func (g *Gif) ResetAnimations() { g.resetAnimations() }
