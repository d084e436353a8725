package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opdss/addressbook/addressbook"
	"github.com/opdss/addressbook/db"
	"github.com/opdss/addressbook/iterator"
	"github.com/opdss/addressbook/vector"
)

var _ addressbook.Repository = (*Gorm)(nil)

const defaultBatchSize = 500

// ContactRow contacts 表的一行，一个号码一行，id 顺序即通讯录顺序
type ContactRow struct {
	Id    uint64 `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null;index"`
	Phone string `gorm:"size:255;not null"`
}

func (ContactRow) TableName() string {
	return "contacts"
}

type GormOption func(*Gorm)

// WithBatchSize 读取和写入的批量大小
func WithBatchSize(n int) GormOption {
	return func(r *Gorm) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// Gorm 保存在数据库中的通讯录，读走从库，写走主库
type Gorm struct {
	log       *zap.Logger
	db        *db.MsDb
	batchSize int
}

func NewGorm(log *zap.Logger, msdb *db.MsDb, opts ...GormOption) *Gorm {
	r := &Gorm{
		log:       log.Named("gorm"),
		db:        msdb,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Migrate 创建或更新 contacts 表
func (r *Gorm) Migrate(ctx context.Context) error {
	return Error.Wrap(r.db.Master().WithContext(ctx).AutoMigrate(&ContactRow{}))
}

// Load 按 id 顺序分批读取全部号码
func (r *Gorm) Load(ctx context.Context) (*addressbook.Book, error) {
	book := addressbook.New()
	it := iterator.NewFlowQueryIterator(ctx, func(ctx context.Context, last ContactRow, limit int) ([]ContactRow, error) {
		var list []ContactRow
		err := r.db.Slave().WithContext(ctx).
			Where("id > ?", last.Id).
			Order("id").
			Limit(limit).
			Find(&list).Error
		return list, err
	}, iterator.WithFlowQueryIteratorLimit[ContactRow](r.batchSize))
	for it.Next() {
		row := it.Value()
		if err := book.Add(row.Name, row.Phone); err != nil {
			return nil, err
		}
	}
	if err := it.Err(); err != nil {
		return nil, Error.Wrap(err)
	}
	r.log.Debug("addressbook loaded", zap.Int("contacts", book.Len()))
	return book, nil
}

// Save 在一个事务里清空并重写 contacts 表
func (r *Gorm) Save(ctx context.Context, book *addressbook.Book) error {
	rows := vector.New[ContactRow]()
	toRow := func(v any) ContactRow {
		row := v.(addressbook.Row)
		return ContactRow{Name: row.Name, Phone: row.Phone}
	}
	if err := iterator.Collect(iterator.Map[any, ContactRow](book.Rows(), toRow), rows); err != nil {
		return Error.Wrap(err)
	}
	err := r.db.Master().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ContactRow{}).Error; err != nil {
			return err
		}
		if rows.Empty() {
			return nil
		}
		return tx.CreateInBatches(rows.Slice(), r.batchSize).Error
	})
	if err != nil {
		return Error.Wrap(err)
	}
	r.log.Debug("addressbook saved", zap.Int("contacts", book.Len()), zap.Int("rows", rows.Len()))
	return nil
}
