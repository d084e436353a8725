package vector

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"
)

// Error 动态数组错误类
var Error = errs.Class("vector")

var (
	// ErrOutOfRange 下标或迭代器位置越界
	ErrOutOfRange = errors.New("index out of range")
	// ErrEmptyContainer 对空数组执行 Front/Back/PopBack
	ErrEmptyContainer = errors.New("empty container")
	// ErrAllocation 扩容失败
	ErrAllocation = errors.New("allocation failure")
	// ErrStaleIterator 迭代器所指存储已被重新分配或释放
	ErrStaleIterator = errors.New("stale iterator")
	// ErrIteratorMismatch 迭代器不属于当前数组
	ErrIteratorMismatch = errors.New("iterator mismatch")
)

func outOfRange(i, size int) error {
	return Error.Wrap(fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, size))
}
