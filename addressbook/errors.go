package addressbook

import (
	"errors"

	"github.com/zeebo/errs"
)

// Error 通讯录错误类
var Error = errs.Class("addressbook")

var (
	// ErrMalformedRecord csv 行字段不足
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNotFound 联系人不存在
	ErrNotFound = errors.New("contact not found")
	// ErrEmptyName 联系人名字为空
	ErrEmptyName = errors.New("contact name is empty")
)
