package vector

// Iterator Vector 的随机访问游标，不持有存储。
// 所属数组重新分配存储后迭代器失效，解引用返回 ErrStaleIterator。
type Iterator[T any] struct {
	owner      *Vector[T]
	pos        int
	generation uint64
}

// Valid 迭代器属于某个数组、存储未被替换且位置在 [Begin, End] 内
func (it Iterator[T]) Valid() bool {
	return it.owner != nil &&
		it.generation == it.owner.generation &&
		it.pos >= 0 && it.pos <= it.owner.size
}

// Index 迭代器对应的下标
func (it Iterator[T]) Index() int {
	return it.pos
}

// Get 解引用
func (it Iterator[T]) Get() (T, error) {
	p, err := it.Ref()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Ref 返回所指元素的指针
func (it Iterator[T]) Ref() (*T, error) {
	if it.owner == nil {
		return nil, Error.Wrap(ErrIteratorMismatch)
	}
	if it.generation != it.owner.generation {
		return nil, Error.Wrap(ErrStaleIterator)
	}
	return it.owner.Ref(it.pos)
}

// Set 覆盖所指元素
func (it Iterator[T]) Set(value T) error {
	p, err := it.Ref()
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Inc 前移一位
func (it *Iterator[T]) Inc() {
	it.pos++
}

// Dec 后退一位
func (it *Iterator[T]) Dec() {
	it.pos--
}

// Next 返回后一位置的迭代器
func (it Iterator[T]) Next() Iterator[T] {
	return it.Add(1)
}

// Prev 返回前一位置的迭代器
func (it Iterator[T]) Prev() Iterator[T] {
	return it.Add(-1)
}

// Add 偏移 n 个位置，越界由调用方负责
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.pos += n
	return it
}

// Sub 反向偏移 n 个位置
func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.pos -= n
	return it
}

// Diff 两个迭代器之间的元素个数 it - other
func (it Iterator[T]) Diff(other Iterator[T]) (int, error) {
	if !it.comparable(other) {
		return 0, Error.Wrap(ErrIteratorMismatch)
	}
	return it.pos - other.pos, nil
}

// Equal 同一数组同一代存储上位置相同
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.comparable(other) && it.pos == other.pos
}

// Less 同一数组同一代存储上位置更靠前
func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.comparable(other) && it.pos < other.pos
}

func (it Iterator[T]) comparable(other Iterator[T]) bool {
	return it.owner != nil && it.owner == other.owner && it.generation == other.generation
}
