package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/opdss/addressbook/contracts/storage"
)

type LocalConfig struct {
	Endpoint string `help:"访问地址" default:"file://" json:"endpoint"`
	Root     string `help:"根目录,为空时使用当前目录" default:"" json:"root"`
}

var _ storage.FileSystem = (*Local)(nil)

// defaultFileMode 新建文件的权限，覆盖已有文件时沿用原权限
const defaultFileMode os.FileMode = 0644

// Local 本地磁盘存储，写入先落临时文件再 rename
type Local struct {
	root     string
	endpoint string
}

func NewLocal(config LocalConfig) (*Local, error) {
	return &Local{
		root:     os.ExpandEnv(config.Root),
		endpoint: strings.TrimSuffix(config.Endpoint, "/"),
	}, nil
}

func (r *Local) Exists(ctx context.Context, file string) bool {
	info, err := os.Stat(r.fullPath(file))
	return err == nil && !info.IsDir()
}

func (r *Local) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	f, err := os.Open(r.fullPath(file))
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return f, nil
}

func (r *Local) MimeType(ctx context.Context, file string) (string, error) {
	mtype, err := mimetype.DetectFile(r.fullPath(file))
	if err != nil {
		return "", ErrStorage.Wrap(err)
	}
	return mtype.String(), nil
}

func (r *Local) PutStream(ctx context.Context, file string, rs io.Reader) (err error) {
	file = r.fullPath(file)
	if err = os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return ErrStorage.Wrap(err)
	}
	fh, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".*.tmp")
	if err != nil {
		return ErrStorage.Wrap(err)
	}
	needsRemove := true
	defer func() {
		if needsRemove {
			_ = os.Remove(fh.Name())
		}
	}()
	if _, err = io.Copy(fh, rs); err != nil {
		_ = fh.Close()
		return ErrStorage.Wrap(err)
	}
	mode := defaultFileMode
	if info, statErr := os.Stat(file); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = fh.Chmod(mode); err != nil {
		_ = fh.Close()
		return ErrStorage.Wrap(err)
	}
	if err = fh.Close(); err != nil {
		return ErrStorage.Wrap(err)
	}
	if err = os.Rename(fh.Name(), file); err != nil {
		return ErrStorage.Wrap(err)
	}
	needsRemove = false
	return nil
}

func (r *Local) Url(file string) string {
	return r.endpoint + "/" + strings.TrimPrefix(filepath.ToSlash(r.fullPath(file)), "/")
}

func (r *Local) fullPath(path string) string {
	if filepath.IsAbs(path) || r.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(r.root, filepath.Clean(path))
}
