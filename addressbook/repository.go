package addressbook

import "context"

// Repository 通讯录的持久化位置
type Repository interface {
	// Load 读取完整通讯录，数据不存在时返回空通讯录
	Load(ctx context.Context) (*Book, error)
	// Save 用 book 整体替换已保存的内容
	Save(ctx context.Context, book *Book) error
}
