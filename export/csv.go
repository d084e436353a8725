package export

import (
	"context"
	"encoding/csv"
	"io"
	"reflect"

	"github.com/spf13/cast"

	"github.com/opdss/addressbook/contracts/export"
	"github.com/opdss/addressbook/contracts/storage"
)

var _ export.Exporter = (*Csv)(nil)

type Csv struct {
	dp      DataProvider
	options *options
	columns *columns
	total   int
}

func NewCsv(h Headers, dp DataProvider, opts ...Option) *Csv {
	return &Csv{
		dp:      dp,
		columns: newColumns(h),
		options: newOptions(opts...),
	}
}

// Export 导出到本地文件，返回本地文件路径
func (c *Csv) Export(ctx context.Context, filename string) (string, error) {
	return exportFile(ctx, getFilename(filename, CsvSuffix), c.ExportTo)
}

// ExportTo 导出到io.Writer
func (c *Csv) ExportTo(ctx context.Context, w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	fw := csv.NewWriter(cw)
	// 写入CSV头部
	if err := fw.Write(c.columns.titles); err != nil {
		return cw.n, Error.Wrap(err)
	}
	row := 1
	var err error
	for c.dp.Next() {
		//检查是否超过最大导出限制,超出的行不写入
		if c.total >= c.options.maxRows {
			err = ErrMaximumLimit
			break
		}
		row++
		_v := c.dp.Value()
		values := c.columns.processRow(reflect.ValueOf(_v), _v, row, 0)
		if err = fw.Write(toStrings(values)); err != nil {
			break
		}
		c.total++
		//收到取消导出信号
		if err = ctx.Err(); err != nil {
			break
		}
	}
	fw.Flush()
	if err == nil {
		err = fw.Error()
	}
	return cw.n, Error.Wrap(err)
}

// ExportToStorage 导出到文件存储，返回下载地址
func (c *Csv) ExportToStorage(ctx context.Context, fs storage.FileSystem, fileKey string) (string, error) {
	return ToStorage(ctx, c.ExportTo, fs, fileKey)
}

func toStrings(values []any) []string {
	res := make([]string, len(values))
	for i := range values {
		res[i] = cast.ToString(values[i])
	}
	return res
}
