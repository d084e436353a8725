// Package vector 提供连续存储、按倍数扩容的泛型动态数组及其随机访问迭代器。
//
// Vector 不是并发安全的，调用方需要自行加锁。
package vector

import (
	"fmt"
	"slices"
	"unsafe"
)

// growFactor 扩容倍数
const growFactor = 2

// maxAllocBytes 单次分配的字节上限，超过直接返回 ErrAllocation
const maxAllocBytes = 1 << 40

// Vector 连续存储的动态数组，零值即为空数组
type Vector[T any] struct {
	elements   []T    // len(elements) 即容量
	size       int    // 有效元素数量
	generation uint64 // 每次重新分配存储时递增
}

// New 创建空数组，不分配存储
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewSized 预分配 n 个零值元素，size 和容量都为 n
func NewSized[T any](n int) (*Vector[T], error) {
	v := &Vector[T]{}
	if n == 0 {
		return v, nil
	}
	if err := v.realloc(n); err != nil {
		return nil, err
	}
	v.size = n
	return v, nil
}

// From 按顺序拷贝 values 构建数组
func From[T any](values ...T) *Vector[T] {
	v := &Vector[T]{}
	if len(values) == 0 {
		return v
	}
	v.elements = make([]T, len(values))
	copy(v.elements, values)
	v.size = len(values)
	return v
}

// Len 有效元素数量
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap 已分配的槽位数量
func (v *Vector[T]) Cap() int {
	return len(v.elements)
}

// Empty 是否为空
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Generation 当前存储代数，存储被替换后递增
func (v *Vector[T]) Generation() uint64 {
	return v.generation
}

// At 读取下标 i 的元素
func (v *Vector[T]) At(i int) (T, error) {
	p, err := v.Ref(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Ref 返回下标 i 的元素指针，存储重新分配后指针失效
func (v *Vector[T]) Ref(i int) (*T, error) {
	if i < 0 || i >= v.size {
		return nil, outOfRange(i, v.size)
	}
	return &v.elements[i], nil
}

// Set 覆盖下标 i 的元素
func (v *Vector[T]) Set(i int, value T) error {
	p, err := v.Ref(i)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Front 第一个元素
func (v *Vector[T]) Front() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, Error.Wrap(ErrEmptyContainer)
	}
	return v.elements[0], nil
}

// Back 最后一个元素
func (v *Vector[T]) Back() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, Error.Wrap(ErrEmptyContainer)
	}
	return v.elements[v.size-1], nil
}

// PushBack 追加元素，容量不足时按 max(1, size+1)*2 扩容
func (v *Vector[T]) PushBack(value T) error {
	if v.size+1 > len(v.elements) {
		if err := v.realloc(max(1, v.size+1) * growFactor); err != nil {
			return err
		}
	}
	v.elements[v.size] = value
	v.size++
	return nil
}

// PopBack 移除并返回最后一个元素，不会缩容
func (v *Vector[T]) PopBack() (T, error) {
	var zero T
	if v.size == 0 {
		return zero, Error.Wrap(ErrEmptyContainer)
	}
	v.size--
	last := v.elements[v.size]
	v.elements[v.size] = zero
	return last, nil
}

// Erase 删除迭代器所指元素，之后的元素整体前移一位
func (v *Vector[T]) Erase(pos Iterator[T]) error {
	if pos.owner != v {
		return Error.Wrap(ErrIteratorMismatch)
	}
	if pos.generation != v.generation {
		return Error.Wrap(ErrStaleIterator)
	}
	return v.EraseAt(pos.pos)
}

// EraseAt 删除下标 i 的元素，保持其余元素相对顺序
func (v *Vector[T]) EraseAt(i int) error {
	if i < 0 || i >= v.size {
		return outOfRange(i, v.size)
	}
	copy(v.elements[i:v.size], v.elements[i+1:v.size])
	v.size--
	var zero T
	v.elements[v.size] = zero
	return nil
}

// Reserve 保证容量不小于 n，只扩不缩
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return Error.Wrap(fmt.Errorf("%w: negative capacity %d", ErrAllocation, n))
	}
	if n <= len(v.elements) {
		return nil
	}
	return v.realloc(n)
}

// Clear 释放所有元素和存储，可重复调用
func (v *Vector[T]) Clear() {
	if v.elements == nil && v.size == 0 {
		return
	}
	v.elements = nil
	v.size = 0
	v.generation++
}

// Clone 逐个赋值拷贝，得到独立存储的新数组
func (v *Vector[T]) Clone() *Vector[T] {
	return v.CloneFunc(nil)
}

// CloneFunc 用 fn 拷贝每个元素，元素本身持有引用时用它做深拷贝
func (v *Vector[T]) CloneFunc(fn func(T) T) *Vector[T] {
	c := &Vector[T]{}
	if v.size == 0 {
		return c
	}
	c.elements = make([]T, v.size)
	for i := 0; i < v.size; i++ {
		if fn != nil {
			c.elements[i] = fn(v.elements[i])
		} else {
			c.elements[i] = v.elements[i]
		}
	}
	c.size = v.size
	return c
}

// CopyFrom 用 other 的内容替换当前内容，other 可以是自身，nil 等同于 Clear
func (v *Vector[T]) CopyFrom(other *Vector[T]) {
	if other == v {
		return
	}
	if other == nil {
		v.Clear()
		return
	}
	c := other.Clone()
	v.elements = c.elements
	v.size = c.size
	v.generation++
}

// EqualFunc 长度相同且逐个元素 eq 为真，other 为 nil 时返回 false
func (v *Vector[T]) EqualFunc(other *Vector[T], eq func(a, b T) bool) bool {
	if other == nil || v.size != other.size {
		return false
	}
	for i := 0; i < v.size; i++ {
		if !eq(v.elements[i], other.elements[i]) {
			return false
		}
	}
	return true
}

// Equal 比较两个元素可比较的数组，nil 只与 nil 相等
func Equal[T comparable](a, b *Vector[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.EqualFunc(b, func(x, y T) bool {
		return x == y
	})
}

// Begin 指向第一个元素的迭代器
func (v *Vector[T]) Begin() Iterator[T] {
	return Iterator[T]{owner: v, pos: 0, generation: v.generation}
}

// End 指向最后一个元素之后的位置，不可解引用
func (v *Vector[T]) End() Iterator[T] {
	return Iterator[T]{owner: v, pos: v.size, generation: v.generation}
}

// IteratorAt 指向下标 i 的迭代器，i 可以等于 Len()
func (v *Vector[T]) IteratorAt(i int) (Iterator[T], error) {
	if i < 0 || i > v.size {
		return Iterator[T]{}, outOfRange(i, v.size)
	}
	return Iterator[T]{owner: v, pos: i, generation: v.generation}, nil
}

// Find 返回第一个满足 pred 的元素位置，没找到返回 End()
func (v *Vector[T]) Find(pred func(T) bool) Iterator[T] {
	for i := 0; i < v.size; i++ {
		if pred(v.elements[i]) {
			return Iterator[T]{owner: v, pos: i, generation: v.generation}
		}
	}
	return v.End()
}

// SortFunc 按 cmp 稳定排序有效区间
func (v *Vector[T]) SortFunc(cmp func(a, b T) int) {
	slices.SortStableFunc(v.elements[:v.size], cmp)
}

// Each 按顺序遍历，fn 返回 false 时停止
func (v *Vector[T]) Each(fn func(i int, value T) bool) {
	for i := 0; i < v.size; i++ {
		if !fn(i, v.elements[i]) {
			return
		}
	}
}

// Slice 返回有效区间的拷贝
func (v *Vector[T]) Slice() []T {
	s := make([]T, v.size)
	copy(s, v.elements[:v.size])
	return s
}

// realloc 分配容量为 capacity 的新存储并按顺序搬移有效元素，失败时数组保持不变
func (v *Vector[T]) realloc(capacity int) (err error) {
	if capacity < v.size {
		return Error.Wrap(fmt.Errorf("%w: capacity %d below size %d", ErrAllocation, capacity, v.size))
	}
	var zero T
	if sz := unsafe.Sizeof(zero); sz > 0 && uint64(capacity) > maxAllocBytes/uint64(sz) {
		return Error.Wrap(fmt.Errorf("%w: %d elements of %d bytes", ErrAllocation, capacity, sz))
	}
	defer func() {
		if r := recover(); r != nil {
			err = Error.Wrap(fmt.Errorf("%w: %v", ErrAllocation, r))
		}
	}()
	elements := make([]T, capacity)
	copy(elements, v.elements[:v.size])
	// 旧存储可能仍被过期指针引用，清空后不再持有元素
	clear(v.elements[:v.size])
	v.elements = elements
	v.generation++
	return nil
}
