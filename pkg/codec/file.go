package codec

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/hspedit/pkg/page"
)

// DefaultExtension 页面文件扩展名
const DefaultExtension = ".hsp"

// ErrNoPath 保存时没有给出路径
var ErrNoPath = errors.New("no file path")

// WithExtension 路径没有扩展名 ext 时追加它（不区分大小写）
func WithExtension(path, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// Save 编码页面并写入文件，返回实际写入的路径
//
// 先写入同目录下的临时文件再改名，写入失败时原文件保持不变。
// 成功后页面关联到该路径并清除修改标记。
func Save(path string, p *page.Page, ext string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	path = WithExtension(path, ext)

	data, err := Encode(p)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", path, err)
	}

	p.SetPath(path)
	p.MarkClean()
	log.Printf("[Codec] Saved page to %s (%d bytes)", path, len(data))
	return path, nil
}

// Load 读取并解码页面文件；失败时不返回任何页面
func Load(path string, opts Options) (*page.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", path, err)
	}
	p, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page %s: %w", path, err)
	}
	p.SetPath(path)
	p.MarkClean()
	return p, nil
}
