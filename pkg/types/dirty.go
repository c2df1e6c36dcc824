package types

// Dirty 页面“未保存修改”标记
// 由页面持有并以指针形式传给各元素，nil 指针上的调用是安全的
type Dirty struct {
	dirty bool
}

// Mark 标记为已修改
func (d *Dirty) Mark() {
	if d != nil {
		d.dirty = true
	}
}

// Clear 清除标记（保存或加载完成后调用）
func (d *Dirty) Clear() {
	if d != nil {
		d.dirty = false
	}
}

// IsDirty 是否存在未保存的修改
func (d *Dirty) IsDirty() bool {
	return d != nil && d.dirty
}
