package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/addressbook"
	contract "github.com/opdss/addressbook/contracts/export"
	"github.com/opdss/addressbook/export"
	"github.com/opdss/addressbook/process"
)

// ExportConfig 导出参数
type ExportConfig struct {
	Format    string `help:"导出格式,可选[csv|xlsx]" default:"xlsx"`
	Output    string `help:"本地输出文件,没有后缀时自动补全" default:"addressbook"`
	UploadKey string `help:"不为空时上传到文件存储的该路径,而不是写本地文件" default:""`
	SheetName string `help:"xlsx 工作表名称" default:"Contacts"`
	RowStart  int    `help:"xlsx 从第几行开始写入" default:"0"`
	ColStart  int    `help:"xlsx 从第几列开始写入" default:"0"`
	MaxRows   int    `help:"最大导出行数" default:"1000000"`
}

var (
	exportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Export the sorted address book as csv or xlsx",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmdExport,
	}

	exportCfg struct {
		RepoConfig
		Export ExportConfig
	}
)

func init() {
	rootCmd.AddCommand(exportCmd)
	process.Bind(exportCmd, &exportCfg, bindOpts()...)
}

func cmdExport(cmd *cobra.Command, args []string) (err error) {
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	ctx := process.Ctx(cmd)
	log := zap.L()

	repo, closeRepo, err := openRepository(ctx, log, exportCfg.RepoConfig, file)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, closeRepo()) }()

	book, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	book.Sort()

	exporter, err := newExporter(exportCfg.Export, book)
	if err != nil {
		return err
	}

	var location string
	if key := exportCfg.Export.UploadKey; key != "" {
		fs, err := openStorage(exportCfg.RepoConfig)
		if err != nil {
			return err
		}
		location, err = exporter.ExportToStorage(ctx, fs, key)
		if err != nil {
			return err
		}
	} else {
		location, err = exporter.Export(ctx, exportCfg.Export.Output)
		if err != nil {
			return err
		}
	}
	log.Info("addressbook exported", zap.String("location", location), zap.Int("contacts", book.Len()))
	fmt.Println(location)
	return nil
}

func newExporter(conf ExportConfig, book *addressbook.Book) (contract.Exporter, error) {
	switch conf.Format {
	case export.CsvSuffix:
		return export.NewCsv(addressbook.Headers, book.Rows(), export.WithMaxRows(conf.MaxRows)), nil
	case export.ExcelSuffix:
		return export.NewExcel(addressbook.Headers, book.Rows(),
			export.WithMaxRows(conf.MaxRows),
			export.WithSheetName(conf.SheetName),
			export.WithRowStart(conf.RowStart),
			export.WithColStart(conf.ColStart),
		), nil
	default:
		return nil, errs.New("unsupported export format %q", conf.Format)
	}
}
