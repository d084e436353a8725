package iterator

// Iterator 单向只读迭代器
type Iterator[T any] interface {
	//Next 是否有下一条数据
	Next() bool
	//Value 获取下一条数据
	Value() T
}
