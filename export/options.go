package export

type Option func(opt *options)

// WithMaxRows 最大数据行数，超过会报异常
func WithMaxRows(n int) Option {
	return func(opt *options) {
		if n > 0 && n < MaxRows {
			opt.maxRows = n
		}
	}
}

// WithRowStart 设置数据从第几行开始写入，导出excel生效
func WithRowStart(n int) Option {
	return func(opt *options) {
		if n >= 0 {
			opt.rowStart = n
		}
	}
}

// WithColStart 设置数据从第几列开始写入，导出excel生效
func WithColStart(n int) Option {
	return func(opt *options) {
		if n >= 0 {
			opt.colStart = n
		}
	}
}

// WithSheetName 设置工作表名，导出excel生效
func WithSheetName(name string) Option {
	return func(opt *options) {
		if name != "" {
			opt.sheetName = name
		}
	}
}

type options struct {
	maxRows   int    //导出最大数量，避免数据提供商出错无限数据
	rowStart  int    //从第几行开始写数据，仅导出 excel支持
	colStart  int    //从第几列开始写数据，仅导出 excel支持
	sheetName string //工作表名，仅导出 excel支持
}

func newOptions(opts ...Option) *options {
	o := &options{
		maxRows:   MaxRows,
		rowStart:  0,
		colStart:  0,
		sheetName: DefaultSheetName,
	}
	for i := range opts {
		opts[i](o)
	}
	return o
}
