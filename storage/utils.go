package storage

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// CsvMime 通讯录文件的 Content-Type
const CsvMime = "text/csv"

// detectMime 读出全部内容并识别类型，csv 后缀的纯文本统一按 text/csv 处理
func detectMime(file string, rs io.Reader) ([]byte, string, error) {
	content, err := io.ReadAll(rs)
	if err != nil {
		return nil, "", err
	}
	mtype := mimetype.Detect(content)
	if strings.HasSuffix(strings.ToLower(file), ".csv") && IsText(mtype.String()) {
		return content, CsvMime, nil
	}
	return content, mtype.String(), nil
}

// IsText 判断 mime 是否属于文本类型
func IsText(mime string) bool {
	if mime == "" {
		return false
	}
	if m := mimetype.Lookup(stripParams(mime)); m != nil {
		for ; m != nil; m = m.Parent() {
			if m.Is("text/plain") {
				return true
			}
		}
	}
	return strings.HasPrefix(mime, "text/")
}

// DetectReader 识别流的类型，返回可以从头重新读取的 reader。空流按纯文本处理
func DetectReader(rs io.Reader) (io.Reader, string, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(rs, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", err
	}
	head = head[:n]
	if n == 0 {
		return bytes.NewReader(head), "text/plain", nil
	}
	return io.MultiReader(bytes.NewReader(head), rs), mimetype.Detect(head).String(), nil
}

func stripParams(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		return strings.TrimSpace(mime[:i])
	}
	return mime
}

func validPath(path string) string {
	realPath := strings.TrimPrefix(path, "./")
	realPath = strings.TrimPrefix(realPath, "/")
	return realPath
}
