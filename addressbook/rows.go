package addressbook

import (
	"github.com/opdss/addressbook/export"
	"github.com/opdss/addressbook/vector"
)

// Row csv 中的一行
type Row struct {
	Name  string `export:"name" json:"name"`
	Phone string `export:"phone" json:"phone"`
}

var _ export.DataProvider = (*rows)(nil)

// rows 按 (联系人, 号码) 展开通讯录，遍历期间通讯录不能被修改
type rows struct {
	contact vector.Iterator[Contact]
	end     vector.Iterator[Contact]
	number  int
}

// Rows 返回逐行遍历通讯录的数据提供者
func (b *Book) Rows() export.DataProvider {
	return &rows{
		contact: b.contacts.Begin(),
		end:     b.contacts.End(),
	}
}

func (r *rows) Next() bool {
	for r.contact.Less(r.end) {
		c, err := r.contact.Ref()
		if err != nil {
			return false
		}
		if r.number < c.numbers.Len() {
			return true
		}
		r.contact.Inc()
		r.number = 0
	}
	return false
}

func (r *rows) Value() any {
	c, err := r.contact.Ref()
	if err != nil {
		return nil
	}
	number, err := c.numbers.At(r.number)
	if err != nil {
		return nil
	}
	r.number++
	return Row{Name: c.name, Phone: number}
}
