package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/decker502/hspedit/pkg/elements"
	"github.com/decker502/hspedit/pkg/types"
)

func newText(id int) elements.Element {
	return elements.NewText(id, "text", elements.DefaultTextSnapshot())
}

func newFilled(t *testing.T, ids ...int) *Registry {
	t.Helper()
	r := New()
	for _, id := range ids {
		if err := r.Add(newText(id)); err != nil {
			t.Fatalf("Add(%d) error = %v", id, err)
		}
	}
	return r
}

func TestAddAndGet(t *testing.T) {
	r := newFilled(t, 10, 20, 30)

	if got := r.Order(); !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Errorf("Order() = %v", got)
	}
	if el, ok := r.Get(20); !ok || el.ID() != 20 {
		t.Errorf("Get(20) = %v, %v", el, ok)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestAddRejects(t *testing.T) {
	r := newFilled(t, 10)

	tests := []struct {
		name string
		el   elements.Element
		want error
	}{
		{"重复 id", newText(10), ErrDuplicateID},
		{"id 为零", newText(0), ErrInvalidID},
		{"页面元素", elements.NewWebpage(1, "page", elements.DefaultPageSnapshot()), ErrPageElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Add(tt.el); !errors.Is(err, tt.want) {
				t.Errorf("Add() error = %v, want %v", err, tt.want)
			}
		})
	}
	if r.Len() != 1 {
		t.Errorf("rejected elements must not be registered, Len() = %d", r.Len())
	}
}

func TestNextIDNeverReused(t *testing.T) {
	r := New()
	if got := r.NextID(); got != 10 {
		t.Fatalf("first NextID() = %d, want 10", got)
	}

	r = newFilled(t, 10, 45)
	if got := r.NextID(); got != 55 {
		t.Errorf("NextID() = %d, want 55", got)
	}

	r.Remove(45)
	if got := r.NextID(); got != 55 {
		t.Errorf("NextID() after remove = %d, want 55", got)
	}
}

func TestZOrderOperations(t *testing.T) {
	tests := []struct {
		name string
		op   func(r *Registry) error
		want []int
	}{
		{"上移", func(r *Registry) error { return r.MoveUp(30) }, []int{10, 30, 20, 40}},
		{"最前元素上移不变", func(r *Registry) error { return r.MoveUp(10) }, []int{10, 20, 30, 40}},
		{"下移", func(r *Registry) error { return r.MoveDown(10) }, []int{20, 10, 30, 40}},
		{"最后元素下移不变", func(r *Registry) error { return r.MoveDown(40) }, []int{10, 20, 30, 40}},
		{"移到最前", func(r *Registry) error { return r.MoveToTop(40) }, []int{40, 10, 20, 30}},
		{"移到最后", func(r *Registry) error { return r.MoveToBottom(10) }, []int{20, 30, 40, 10}},
		{"移动到指定位置", func(r *Registry) error { return r.Move(20, 3) }, []int{10, 30, 40, 20}},
		{"越界位置夹到末尾", func(r *Registry) error { return r.Move(10, 99) }, []int{20, 30, 40, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFilled(t, 10, 20, 30, 40)
			if err := tt.op(r); err != nil {
				t.Fatalf("op error = %v", err)
			}
			if got := r.Order(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
			if err := r.Check(); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestMoveUnknown(t *testing.T) {
	r := newFilled(t, 10)
	for _, err := range []error{r.MoveUp(99), r.MoveDown(99), r.MoveToTop(99), r.Move(99, 0)} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	}
}

func TestZValue(t *testing.T) {
	r := newFilled(t, 10, 20, 30)
	for i, id := range []int{10, 20, 30} {
		z, ok := r.ZValue(id)
		if !ok || z != -i {
			t.Errorf("ZValue(%d) = %d, %v, want %d", id, z, ok, -i)
		}
	}
	if _, ok := r.ZValue(99); ok {
		t.Error("ZValue of unknown id should report false")
	}
}

func TestRemoveKeepsLockStep(t *testing.T) {
	r := newFilled(t, 10, 20, 30)

	el, ok := r.Remove(20)
	if !ok || el.ID() != 20 {
		t.Fatalf("Remove(20) = %v, %v", el, ok)
	}
	if _, ok := r.Remove(20); ok {
		t.Error("second Remove should report false")
	}
	if _, ok := r.Get(20); ok {
		t.Error("removed element still indexed")
	}
	if got := r.Order(); !reflect.DeepEqual(got, []int{10, 30}) {
		t.Errorf("Order() = %v", got)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestInsertAndDirty(t *testing.T) {
	var d types.Dirty
	r := New()
	r.BindDirty(&d)

	if err := r.Add(newText(10)); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(newText(20), 0); err != nil {
		t.Fatal(err)
	}
	if got := r.Order(); !reflect.DeepEqual(got, []int{20, 10}) {
		t.Errorf("Order() = %v", got)
	}
	if !d.IsDirty() {
		t.Error("registry changes should mark the page dirty")
	}

	d.Clear()
	el, _ := r.Get(10)
	el.SetName("renamed")
	if !d.IsDirty() {
		t.Error("registered elements should share the page dirty flag")
	}
}
