// Package addressbook 通讯录：联系人模型、csv 读写以及按名字查找、删除、排序。
package addressbook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opdss/addressbook/export"
	"github.com/opdss/addressbook/vector"
)

const (
	HeaderName  = "Name"
	HeaderPhone = "Phone"
)

// Headers csv 文件列定义
var Headers = export.Headers{
	{Field: "name", Title: HeaderName, ColWidth: 24},
	{Field: "phone", Title: HeaderPhone, ColWidth: 20},
}

// Book 通讯录，联系人按首次出现顺序连续存储
type Book struct {
	contacts vector.Vector[Contact]
}

func New() *Book {
	return &Book{}
}

// Load 读取 csv，第一行为表头。同名联系人的号码合并到第一次出现的联系人上
func (b *Book) Load(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	// skip header
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return Error.Wrap(err)
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return Error.Wrap(err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) < 2 {
			return Error.Wrap(fmt.Errorf("%w: line %d: %q", ErrMalformedRecord, line, strings.Join(record, ",")))
		}
		if err = b.Add(record[0], strings.Join(record[1:], ",")); err != nil {
			return Error.Wrap(fmt.Errorf("line %d: %w", line, err))
		}
	}
}

// Save 写出 csv，每个号码一行
func (b *Book) Save(ctx context.Context, w io.Writer) error {
	_, err := export.ToCsvStream(ctx, Headers, b.Rows(), w)
	return Error.Wrap(err)
}

// Add 追加号码，联系人不存在时新建
func (b *Book) Add(name, number string) error {
	if name == "" {
		return Error.Wrap(ErrEmptyName)
	}
	it := b.find(name)
	if it.Equal(b.contacts.End()) {
		contact, err := NewContact(name, number)
		if err != nil {
			return err
		}
		return Error.Wrap(b.contacts.PushBack(contact))
	}
	contact, err := it.Ref()
	if err != nil {
		return Error.Wrap(err)
	}
	return contact.AddNumber(number)
}

// Sort 按名字稳定排序
func (b *Book) Sort() {
	b.contacts.SortFunc(func(x, y Contact) int {
		return strings.Compare(x.name, y.name)
	})
}

// Find 按名字查找，返回联系人的拷贝
func (b *Book) Find(name string) (Contact, bool) {
	it := b.find(name)
	contact, err := it.Ref()
	if err != nil {
		return Contact{}, false
	}
	return contact.Clone(), true
}

// Delete 按名字删除联系人
func (b *Book) Delete(name string) bool {
	it := b.find(name)
	if it.Equal(b.contacts.End()) {
		return false
	}
	return b.contacts.Erase(it) == nil
}

// Print 按当前顺序输出全部联系人
func (b *Book) Print(w io.Writer) error {
	for i := 0; i < b.contacts.Len(); i++ {
		contact, err := b.contacts.Ref(i)
		if err != nil {
			return Error.Wrap(err)
		}
		if err = contact.Print(w); err != nil {
			return err
		}
	}
	return nil
}

// Contacts 联系人列表，调用方只读
func (b *Book) Contacts() *vector.Vector[Contact] {
	return &b.contacts
}

func (b *Book) Len() int {
	return b.contacts.Len()
}

// Clone 深拷贝整个通讯录
func (b *Book) Clone() *Book {
	return &Book{
		contacts: *b.contacts.CloneFunc(func(c Contact) Contact {
			return c.Clone()
		}),
	}
}

func (b *Book) find(name string) vector.Iterator[Contact] {
	return b.contacts.Find(func(c Contact) bool {
		return c.name == name
	})
}
