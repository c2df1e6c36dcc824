package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/hspedit/pkg/assets"
)

// MaxRecentFiles 最近打开文件列表的长度上限
const MaxRecentFiles = 10

// ErrNoRootPath 尚未设置游戏根目录
var ErrNoRootPath = errors.New("game root path is not set")

// EditorSettings 用户设置
type EditorSettings struct {
	RootPath    string   `yaml:"rootPath"`    // 游戏安装目录（包含 images/）
	EnabledMods []string `yaml:"enabledMods"` // 启用的 mod，靠前的优先
	RecentFiles []string `yaml:"recentFiles"` // 最近打开的页面文件，最新的在前
	Strict      bool     `yaml:"strict"`      // 开发模式：解码遇到格式错误立即失败
	MuteMusic   bool     `yaml:"muteMusic"`   // 预览时不播放页面音乐
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EditorSettings {
	return &EditorSettings{}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EditorSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "editor"
)

// NewSettingsManager 创建设置管理器
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 打开应用的 gdata 存储；失败时退回降级模式
func OpenSettingsManager(appName string) *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(m)
}

// Load 从 gdata 加载设置，存储不可用或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded EditorSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata；降级模式下不报错
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *EditorSettings {
	return sm.settings
}

// RootPath 游戏根目录；未设置时返回 ErrNoRootPath
func (sm *SettingsManager) RootPath() (string, error) {
	if sm.settings.RootPath == "" {
		return "", ErrNoRootPath
	}
	return sm.settings.RootPath, nil
}

// SetRootPath 设置游戏根目录
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetRootPath(path string) {
	sm.settings.RootPath = path
}

// SetEnabledMods 设置启用的 mod 列表
func (sm *SettingsManager) SetEnabledMods(mods []string) {
	sm.settings.EnabledMods = slices.Clone(mods)
}

// EnabledMods 启用的 mod 列表
func (sm *SettingsManager) EnabledMods() []string {
	return slices.Clone(sm.settings.EnabledMods)
}

// AddRecentFile 把文件放到最近列表最前面，去重并截断
func (sm *SettingsManager) AddRecentFile(path string) {
	recent := slices.DeleteFunc(slices.Clone(sm.settings.RecentFiles), func(p string) bool { return p == path })
	recent = slices.Insert(recent, 0, path)
	if len(recent) > MaxRecentFiles {
		recent = recent[:MaxRecentFiles]
	}
	sm.settings.RecentFiles = recent
}

// RecentFiles 最近打开的文件
func (sm *SettingsManager) RecentFiles() []string {
	return slices.Clone(sm.settings.RecentFiles)
}

// SetStrict 设置开发模式
func (sm *SettingsManager) SetStrict(strict bool) {
	sm.settings.Strict = strict
}

// SetMuteMusic 设置是否静音页面音乐
func (sm *SettingsManager) SetMuteMusic(mute bool) {
	sm.settings.MuteMusic = mute
}

// Resolver 根据当前设置构建资源查找器（启用的 mod 优先，根目录最后）
func (sm *SettingsManager) Resolver(modsDir string) (*assets.Resolver, error) {
	root, err := sm.RootPath()
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(modsDir) {
		modsDir = filepath.Join(root, modsDir)
	}
	return assets.NewResolver(root, modsDir, sm.settings.EnabledMods), nil
}
