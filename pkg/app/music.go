package app

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"

	"github.com/decker502/hspedit/pkg/assets"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// musicVolume 页面音乐的预览音量
const musicVolume = 0.5

type loopSource interface {
	io.ReadSeeker
	Length() int64
}

// decodeMusic 按扩展名解码音乐数据，支持 .mp3 与 .ogg
func decodeMusic(path string, data []byte) (loopSource, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}
}

// MusicPlayer 循环播放页面背景音乐
// 同一时间只播放一首；页面音乐字段变化时切换
type MusicPlayer struct {
	ctx      *audio.Context
	resolver *assets.Resolver
	players  map[string]*audio.Player
	current  *audio.Player
	name     string
	muted    bool
}

// NewMusicPlayer 创建音乐播放器；ctx 或 resolver 为 nil 时所有操作都是空操作
func NewMusicPlayer(ctx *audio.Context, resolver *assets.Resolver, muted bool) *MusicPlayer {
	return &MusicPlayer{
		ctx:      ctx,
		resolver: resolver,
		players:  make(map[string]*audio.Player),
		muted:    muted,
	}
}

func (m *MusicPlayer) load(name string) (*audio.Player, error) {
	if p, ok := m.players[name]; ok {
		return p, nil
	}

	path, err := m.resolver.FindFile(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	stream, err := decodeMusic(path, data)
	if err != nil {
		return nil, err
	}

	player, err := m.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	player.SetVolume(musicVolume)
	m.players[name] = player
	return player, nil
}

// Sync 让正在播放的音乐与页面当前的音乐字段一致
func (m *MusicPlayer) Sync(name string) {
	if name == m.name {
		return
	}
	m.Stop()
	m.name = name
	if name == "" || m.ctx == nil || m.resolver == nil {
		return
	}

	player, err := m.load(name)
	if err != nil {
		log.Printf("[MusicPlayer] Music %s unavailable: %v", name, err)
		return
	}
	m.current = player
	if err := player.Rewind(); err != nil {
		log.Printf("[MusicPlayer] Warning: Failed to rewind music %s: %v", name, err)
	}
	if !m.muted {
		player.Play()
	}
}

// Stop 停止当前音乐
func (m *MusicPlayer) Stop() {
	if m.current != nil {
		m.current.Pause()
	}
	m.current = nil
	m.name = ""
}

// SetMuted 静音或恢复播放
func (m *MusicPlayer) SetMuted(muted bool) {
	m.muted = muted
	if m.current == nil {
		return
	}
	if muted {
		m.current.Pause()
	} else {
		m.current.Play()
	}
}

// Muted 是否静音
func (m *MusicPlayer) Muted() bool { return m.muted }

// Playing 当前音乐名，未播放时为空
func (m *MusicPlayer) Playing() string { return m.name }
