// Package repository 通讯录的持久化实现：文件存储中的 csv 对象或数据库表。
package repository

import (
	"errors"

	"github.com/zeebo/errs"
)

// Error 仓库错误类
var Error = errs.Class("repository")

// ErrNotText 通讯录文件不是文本
var ErrNotText = errors.New("addressbook file is not text")
