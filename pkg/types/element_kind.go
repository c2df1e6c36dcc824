// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ElementKind 定义页面元素的类型
type ElementKind int

const (
	// KindWebpage 页面本身（第 0 行）
	KindWebpage ElementKind = iota
	// KindText 文本块
	KindText
	// KindGif 动画/静态图片
	KindGif
)

// 文件中使用的类型标签
const (
	TagWebpage = "Webpage"
	TagText    = "Text"
	TagGif     = "Gif"
)

// String 返回元素类型在文件中的标签
func (k ElementKind) String() string {
	switch k {
	case KindWebpage:
		return TagWebpage
	case KindText:
		return TagText
	case KindGif:
		return TagGif
	default:
		return "Unknown"
	}
}

// ParseElementKind 将文件中的类型标签转换为 ElementKind
// 返回 false 表示无法识别的标签
func ParseElementKind(tag string) (ElementKind, bool) {
	switch tag {
	case TagWebpage:
		return KindWebpage, true
	case TagText:
		return KindText, true
	case TagGif:
		return KindGif, true
	default:
		return 0, false
	}
}

// Alignment 文本水平对齐方式（文件中编码为 0/1/2）
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCentre
	AlignRight
)

// ParseAlignment 将整数转换为对齐方式，超出范围时返回 AlignLeft
func ParseAlignment(v int) Alignment {
	switch Alignment(v) {
	case AlignCentre:
		return AlignCentre
	case AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}
