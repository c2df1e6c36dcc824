// Package assets 负责在多个搜索根目录中定位游戏资源
//
// 搜索顺序：已启用的 mod（按启用顺序）优先，最后是游戏安装目录。
// 原编辑器把搜索路径放在全局单例里，这里改为显式构造并传递的 Resolver。
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// 资源子目录
const (
	DirFonts   = "images/fonts"
	DirGifs    = "images/gifs"
	DirStatic  = "images/static"
	DirShapes  = "images/shapes"
	DirWordArt = "images/wordart"
	DirBgs     = "images/bgs"
)

// ErrNotFound 在所有搜索根目录中都找不到资源
var ErrNotFound = errors.New("asset not found")

// Resolver 在有序的搜索根目录中查找资源
type Resolver struct {
	roots []string
}

// NewResolver 创建资源定位器
//
// 参数：
//   - root: 游戏安装目录中的 data 目录
//   - modsDir: mod 根目录
//   - enabledMods: 已启用的 mod 名称（按优先级排序）
func NewResolver(root, modsDir string, enabledMods []string) *Resolver {
	roots := make([]string, 0, len(enabledMods)+1)
	for _, mod := range enabledMods {
		if mod == "" {
			continue
		}
		roots = append(roots, filepath.Join(modsDir, mod))
	}
	if root != "" {
		roots = append(roots, root)
	}
	return &Resolver{roots: roots}
}

// NewResolverFromRoots 直接使用给定的搜索根目录（测试与命令行工具使用）
func NewResolverFromRoots(roots ...string) *Resolver {
	return &Resolver{roots: append([]string(nil), roots...)}
}

// Roots 返回搜索根目录（按优先级）
func (r *Resolver) Roots() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.roots...)
}

// FindFile 返回第一个存在的常规文件路径
func (r *Resolver) FindFile(rel string) (string, error) {
	return r.find(rel, false)
}

// FindDir 返回第一个存在的目录路径
func (r *Resolver) FindDir(rel string) (string, error) {
	return r.find(rel, true)
}

func (r *Resolver) find(rel string, wantDir bool) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	rel = strings.TrimPrefix(filepath.FromSlash(rel), string(filepath.Separator))
	for _, root := range r.roots {
		candidate := filepath.Join(root, rel)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.IsDir() == wantDir {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
}

// ListMods 列出 mod 目录中所有包含 config.ini 的子目录（按名称排序）
func ListMods(modsDir string) ([]string, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read mods directory: %w", err)
	}

	var mods []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(modsDir, entry.Name(), "config.ini")); err == nil {
			mods = append(mods, entry.Name())
		}
	}
	sort.Strings(mods)
	return mods, nil
}
