package iterator

import (
	"github.com/opdss/addressbook/contracts/iterator"
	"github.com/opdss/addressbook/vector"
)

var _ iterator.Iterator[any] = (*SliceIterator[any])(nil)

// SliceIterator 数组数据迭代器
type SliceIterator[T any] struct {
	index int
	data  []T
}

func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		data:  data,
		index: 0,
	}
}

// NewVectorIterator 遍历 v 当前内容的快照，之后对 v 的修改不影响迭代
func NewVectorIterator[T any](v *vector.Vector[T]) *SliceIterator[T] {
	return NewSliceIterator(v.Slice())
}

func (dp *SliceIterator[T]) Next() bool {
	return dp.index < len(dp.data)
}

func (dp *SliceIterator[T]) Value() T {
	defer func() {
		dp.index++
	}()
	if dp.index < len(dp.data) {
		return dp.data[dp.index]
	}
	var v T
	return v
}

// Map 把 T 类型迭代器转换为 R 类型
func Map[T, R any](it iterator.Iterator[T], fn func(T) R) iterator.Iterator[R] {
	return &mapIterator[T, R]{it: it, fn: fn}
}

type mapIterator[T, R any] struct {
	it iterator.Iterator[T]
	fn func(T) R
}

func (m *mapIterator[T, R]) Next() bool {
	return m.it.Next()
}

func (m *mapIterator[T, R]) Value() R {
	return m.fn(m.it.Value())
}

// Collect 读完迭代器并追加到 v
func Collect[T any](it iterator.Iterator[T], v *vector.Vector[T]) error {
	for it.Next() {
		if err := v.PushBack(it.Value()); err != nil {
			return err
		}
	}
	return nil
}
