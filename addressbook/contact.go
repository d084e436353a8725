package addressbook

import (
	"fmt"
	"io"

	"github.com/opdss/addressbook/vector"
)

// Contact 联系人，一个名字对应多个号码
type Contact struct {
	name    string
	numbers vector.Vector[string]
}

// NewContact 创建带一个号码的联系人
func NewContact(name, number string) (Contact, error) {
	c := Contact{name: name}
	if err := c.AddNumber(number); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (c *Contact) Name() string {
	return c.name
}

// Numbers 号码列表，调用方只读
func (c *Contact) Numbers() *vector.Vector[string] {
	return &c.numbers
}

func (c *Contact) AddNumber(number string) error {
	return Error.Wrap(c.numbers.PushBack(number))
}

// Clone 深拷贝，号码列表不与原联系人共享存储
func (c *Contact) Clone() Contact {
	return Contact{
		name:    c.name,
		numbers: *c.numbers.Clone(),
	}
}

// Equal 名字相同且号码按顺序相同
func (c *Contact) Equal(o *Contact) bool {
	return c.name == o.name && vector.Equal(&c.numbers, &o.numbers)
}

// Print 输出联系人详情
func (c *Contact) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Name: %s\nNumbers: \n", c.name); err != nil {
		return err
	}
	var err error
	c.numbers.Each(func(_ int, number string) bool {
		_, err = fmt.Fprintln(w, number)
		return err == nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
