package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// WordArtSymbols 艺术字字符表
// Gif 的帧偏移量在艺术字资源中作为该表的下标
var WordArtSymbols = [41]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
	"k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
	"u", "v", "w", "x", "y", "z", "zz0exclam",
	"zz1quest", "zz2apost", "zz3colon", "zz4quote",
}

// FrameSource 帧来源
type FrameSource int

const (
	SourceNone FrameSource = iota
	SourceGif
	SourceStatic
	SourceShape
	SourceWordArt
)

func (s FrameSource) String() string {
	switch s {
	case SourceGif:
		return "gif"
	case SourceStatic:
		return "static"
	case SourceShape:
		return "shape"
	case SourceWordArt:
		return "wordart"
	default:
		return "none"
	}
}

// FrameSet 一个 Gif 元素解析出的全部源帧
type FrameSet struct {
	Frames []image.Image
	FPS    int // 来自 <n>.speed 文件，0 表示不播放
	Source FrameSource
}

// LoadFrames 按名称加载 Gif 元素的源帧
//
// 每个搜索根目录依次尝试：
//   - images/gifs/<name>/      多帧动画（按文件名排序，<n>.speed 指定帧率）
//   - images/static/<name>.png 静态图
//   - images/shapes/<name>.png 形状
//   - images/wordart/<name>/   艺术字，frameOffset 为 WordArtSymbols 下标
//
// 所有根目录都找不到时返回空 FrameSet 和 ErrNotFound，
// 调用方应保留元素属性并且不渲染任何内容。
func (r *Resolver) LoadFrames(name string, frameOffset int) (FrameSet, error) {
	name = strings.ToLower(name)
	if name == "" || r == nil {
		return FrameSet{}, fmt.Errorf("%w: empty image name", ErrNotFound)
	}

	for _, root := range r.roots {
		if dir := filepath.Join(root, DirGifs, name); isDir(dir) {
			return loadGifDir(dir)
		}
		if file := filepath.Join(root, DirStatic, name+".png"); isFile(file) {
			return loadSingle(file, SourceStatic)
		}
		if file := filepath.Join(root, DirShapes, name+".png"); isFile(file) {
			return loadSingle(file, SourceShape)
		}
		if dir := filepath.Join(root, DirWordArt, name); isDir(dir) {
			letter := "0"
			if frameOffset > 0 && frameOffset < len(WordArtSymbols) {
				candidate := WordArtSymbols[frameOffset]
				if isFile(filepath.Join(dir, candidate+".png")) {
					letter = candidate
				}
			}
			return loadSingle(filepath.Join(dir, letter+".png"), SourceWordArt)
		}
	}

	return FrameSet{}, fmt.Errorf("%w: image %q", ErrNotFound, name)
}

// LoadBackground 加载页面背景图（images/bgs/<name>）
func (r *Resolver) LoadBackground(name string) (image.Image, error) {
	path, err := r.FindFile(filepath.Join(DirBgs, name))
	if err != nil {
		return nil, err
	}
	return DecodeImage(path)
}

func loadGifDir(dir string) (FrameSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FrameSet{}, fmt.Errorf("failed to read gif directory '%s': %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	set := FrameSet{Source: SourceGif}
	for _, fileName := range names {
		ext := filepath.Ext(fileName)
		if ext == ".speed" {
			fps, err := strconv.Atoi(strings.TrimSuffix(fileName, ext))
			if err != nil {
				log.Printf("[Assets] Ignoring malformed speed file %s", fileName)
				continue
			}
			set.FPS = fps
			continue
		}

		img, err := DecodeImage(filepath.Join(dir, fileName))
		if err != nil {
			log.Printf("[Assets] Skipping frame %s: %v", fileName, err)
			continue
		}
		set.Frames = append(set.Frames, img)
	}
	return set, nil
}

func loadSingle(path string, source FrameSource) (FrameSet, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return FrameSet{}, err
	}
	return FrameSet{Frames: []image.Image{img}, Source: source}, nil
}

// DecodeImage 读取并解码一张图片（PNG、GIF 或 JPEG）
func DecodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}
	return img, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
