package export

import (
	"context"
	"io"

	"github.com/opdss/addressbook/contracts/storage"
)

// Exporter 导出接口
type Exporter interface {
	// Export 导出到本地文件，返回本地文件路径
	Export(ctx context.Context, filename string) (string, error)
	// ExportTo 导出到io.Writer
	ExportTo(ctx context.Context, w io.Writer) (int64, error)
	// ExportToStorage 导出到文件存储，返回下载地址
	ExportToStorage(ctx context.Context, fs storage.FileSystem, fileKey string) (string, error)
}
