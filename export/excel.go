package export

import (
	"context"
	"io"
	"reflect"

	"github.com/xuri/excelize/v2"

	"github.com/opdss/addressbook/contracts/export"
	"github.com/opdss/addressbook/contracts/storage"
)

// DefaultSheetName 默认操作表
const DefaultSheetName = "Sheet1"

var _ export.Exporter = (*Excel)(nil)

type Excel struct {
	options *options
	columns *columns
	dp      DataProvider
	total   int
}

func NewExcel(h Headers, dp DataProvider, opts ...Option) *Excel {
	return &Excel{
		dp:      dp,
		columns: newColumns(h),
		options: newOptions(opts...),
	}
}

// Export 导出到本地文件，返回本地文件路径
func (e *Excel) Export(ctx context.Context, filename string) (string, error) {
	return exportFile(ctx, getFilename(filename, ExcelSuffix), e.ExportTo)
}

// ExportTo 导出到io.Writer
func (e *Excel) ExportTo(ctx context.Context, w io.Writer) (int64, error) {
	fp := excelize.NewFile()
	defer func() {
		_ = fp.Close()
	}()
	if e.options.sheetName != DefaultSheetName {
		if err := fp.SetSheetName(DefaultSheetName, e.options.sheetName); err != nil {
			return 0, Error.Wrap(err)
		}
	}
	if err := e.exportToExcelize(ctx, fp); err != nil {
		return 0, Error.Wrap(err)
	}
	n, err := fp.WriteTo(w)
	return n, Error.Wrap(err)
}

// ExportToStorage 导出到文件存储，返回下载地址
func (e *Excel) ExportToStorage(ctx context.Context, fs storage.FileSystem, fileKey string) (string, error) {
	return ToStorage(ctx, e.ExportTo, fs, fileKey)
}

func (e *Excel) exportToExcelize(ctx context.Context, fp *excelize.File) (err error) {
	row := e.options.rowStart + 1
	col := e.options.colStart + 1

	//设置列相关属性
	if err = e.setColStyle(col, fp); err != nil {
		return err
	}

	fw, err := fp.NewStreamWriter(e.options.sheetName)
	if err != nil {
		return err
	}
	//设置导出表头
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err = fw.SetRow(cell, e.columns.getTitleToAny()); err != nil {
		return err
	}
	//开始写入数据
	for e.dp.Next() {
		//检查是否超过最大导出限制,超出的行不写入
		if e.total >= e.options.maxRows {
			err = ErrMaximumLimit
			break
		}
		row++
		_v := e.dp.Value()
		values := e.columns.processRow(reflect.ValueOf(_v), _v, row, e.options.colStart)
		if cell, err = excelize.CoordinatesToCellName(col, row); err != nil {
			break
		}
		if err = fw.SetRow(cell, values); err != nil {
			break
		}
		e.total++
		//收到取消导出信号
		if err = ctx.Err(); err != nil {
			break
		}
	}
	if flushErr := fw.Flush(); err == nil {
		err = flushErr
	}
	return err
}

// setColStyle 设置列相关属性
func (e *Excel) setColStyle(colStart int, fp *excelize.File) error {
	for i, h := range e.columns.headers {
		colName, err := excelize.ColumnNumberToName(colStart + i)
		if err != nil {
			return err
		}
		//设置宽度
		if h.ColWidth > 0 {
			if err = fp.SetColWidth(e.options.sheetName, colName, colName, h.ColWidth); err != nil {
				return err
			}
		}
		//设置列样式
		if h.ColStyle != nil {
			styleId, err := fp.NewStyle(h.ColStyle)
			if err != nil {
				return err
			}
			if err = fp.SetColStyle(e.options.sheetName, colName, styleId); err != nil {
				return err
			}
		}
	}
	return nil
}
