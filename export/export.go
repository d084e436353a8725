package export

import (
	"context"
	"errors"
	"io"

	"github.com/zeebo/errs"

	"github.com/opdss/addressbook/contracts/storage"
)

// Error 导出错误类
var Error = errs.Class("export")

var ErrMaximumLimit = errors.New("export quantity exceeds maximum limit")

const TagName = "export" // export 导出字段的tag
const MaxRows = 1000000  //最大导出数据,防止dataProvider出错无限数据导出

// ExcelSuffix CsvSuffix 导出文件后缀
const ExcelSuffix = "xlsx"
const CsvSuffix = "csv"

// ToCsvStream 导出csv的快捷方法
func ToCsvStream(ctx context.Context, h Headers, dp DataProvider, w io.Writer, opt ...Option) (int64, error) {
	return NewCsv(h, dp, opt...).ExportTo(ctx, w)
}

// ToExcelStream 导出excel的快捷方法
func ToExcelStream(ctx context.Context, h Headers, dp DataProvider, w io.Writer, opt ...Option) (int64, error) {
	return NewExcel(h, dp, opt...).ExportTo(ctx, w)
}

// ToStorage 通过 pipe 把导出内容写入文件存储，返回下载地址
func ToStorage(ctx context.Context, writeTo func(ctx context.Context, w io.Writer) (int64, error), fs storage.FileSystem, fileKey string) (string, error) {
	fr, fw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		_, err := writeTo(ctx, fw)
		_ = fw.CloseWithError(err)
		done <- err
	}()
	putErr := fs.PutStream(ctx, fileKey, fr)
	_ = fr.CloseWithError(putErr)
	if err := errs.Combine(<-done, putErr); err != nil {
		return "", Error.Wrap(err)
	}
	return fs.Url(fileKey), nil
}
