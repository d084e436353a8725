package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/errs"
	"golang.org/x/exp/rand"
)

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// exportFile 导出到本地文件，失败时删除半成品
func exportFile(ctx context.Context, filename string, writeTo func(ctx context.Context, w io.Writer) (int64, error)) (_ string, err error) {
	if err = os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return "", Error.Wrap(err)
	}
	fp, err := os.Create(filename)
	if err != nil {
		return "", Error.Wrap(err)
	}
	defer func() {
		err = errs.Combine(err, Error.Wrap(fp.Close()))
		if err != nil {
			_ = os.Remove(filename)
		}
	}()
	if _, err = writeTo(ctx, fp); err != nil {
		return "", err
	}
	return filename, nil
}

// getFilename 生成导出文件名,没有后缀时自动加上
func getFilename(filename string, suf string) string {
	if filename == "" {
		return filepath.Join(os.TempDir(),
			fmt.Sprintf("export_%s_%d.%s",
				time.Now().Format("20060102_150405"),
				randInt(1000, 9999),
				suf))
	}
	if !strings.EqualFold(strings.TrimPrefix(filepath.Ext(filename), "."), suf) {
		filename += "." + suf
	}
	return filename
}

func randInt(min, max int) int {
	return rand.Intn(max-min) + min
}
