package types

// Optional 显式的可空值
//
// 文件格式里 case tag、脚本和法规代码用 "0"/"-1" 表示“缺省”，
// 与合法的数值 0 混在一起。内存中统一用 Optional 表示，
// 哨兵字符串只在编解码边界出现。
type Optional[T any] struct {
	value T
	set   bool
}

// Some 构造一个有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None 构造一个空 Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get 返回值以及是否存在
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet 是否有值
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse 有值时返回值，否则返回 fallback
func (o Optional[T]) OrElse(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}
