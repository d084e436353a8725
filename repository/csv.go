package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/addressbook"
	"github.com/opdss/addressbook/contracts/storage"
	fs "github.com/opdss/addressbook/storage"
)

var _ addressbook.Repository = (*Csv)(nil)

// Csv 以 csv 文件保存在文件存储中的通讯录
type Csv struct {
	log     *zap.Logger
	storage storage.FileSystem
	key     string
}

func NewCsv(log *zap.Logger, storage storage.FileSystem, key string) *Csv {
	return &Csv{
		log:     log.Named("csv").With(zap.String("key", key)),
		storage: storage,
		key:     key,
	}
}

// Load 文件不存在或为空时返回空通讯录
func (r *Csv) Load(ctx context.Context) (_ *addressbook.Book, err error) {
	book := addressbook.New()
	if !r.storage.Exists(ctx, r.key) {
		r.log.Info("addressbook file not found, starting empty")
		return book, nil
	}
	rc, err := r.storage.GetStream(ctx, r.key)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(rc.Close())) }()

	reader, mime, err := fs.DetectReader(rc)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if !fs.IsText(mime) {
		return nil, Error.Wrap(fmt.Errorf("%w: %s", ErrNotText, mime))
	}
	if err = book.Load(reader); err != nil {
		return nil, err
	}
	r.log.Debug("addressbook loaded", zap.Int("contacts", book.Len()))
	return book, nil
}

// Save 整体覆盖存储中的文件
func (r *Csv) Save(ctx context.Context, book *addressbook.Book) error {
	var buf bytes.Buffer
	if err := book.Save(ctx, &buf); err != nil {
		return err
	}
	size := buf.Len()
	if err := r.storage.PutStream(ctx, r.key, &buf); err != nil {
		return Error.Wrap(err)
	}
	r.log.Debug("addressbook saved", zap.Int("contacts", book.Len()), zap.Int("bytes", size))
	return nil
}
