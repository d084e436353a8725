package storage

import (
	"github.com/zeebo/errs"

	"github.com/opdss/addressbook/contracts/storage"
)

// ErrStorage 存储错误类
var ErrStorage = errs.Class("storage")

const (
	DriverLocal = "local"
	DriverS3    = "s3"
	DriverOss   = "oss"
	DriverCos   = "cos"
)

// Config 通讯录文件存储配置
type Config struct {
	Driver string      `help:"存储驱动,可选[local|s3|oss|cos]" default:"local"`
	Local  LocalConfig `help:"本地存储"`
	S3     S3Config    `help:"S3兼容存储"`
	Oss    OssConfig   `help:"阿里云OSS"`
	Cos    CosConfig   `help:"腾讯云COS"`
}

// New 按驱动创建文件存储
func New(conf Config) (storage.FileSystem, error) {
	switch conf.Driver {
	case DriverLocal, "":
		return NewLocal(conf.Local)
	case DriverS3:
		return NewS3(conf.S3)
	case DriverOss:
		return NewOss(conf.Oss)
	case DriverCos:
		return NewCos(conf.Cos)
	default:
		return nil, ErrStorage.New("unknown driver %q", conf.Driver)
	}
}
