package cli

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/opdss/addressbook/addressbook"
	"github.com/opdss/addressbook/vector"
)

const fixture = "Name,Phone\n" +
	"Nicholas,(420)798-1076\n" +
	"Nicholas,(347)725-4471\n" +
	"Barry,(580)776-2009\n"

// selfTests 内置自检用例，按名字顺序执行
var selfTests = map[string]func() bool{
	"Use case A": useCaseLoadMerge,
	"Use case B": useCaseSortPrint,
	"Use case C": useCaseFind,
	"Use case D": useCaseDelete,
}

// unitTest 逐个执行自检，遇到失败立即停止
func (c *Cli) unitTest(ctx context.Context, _ []string) error {
	names := maps.Keys(selfTests)
	slices.Sort(names)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("Running [" + name + "] test")
		if !selfTests[name]() {
			c.println("Result: failure")
			c.println()
			return nil
		}
		c.println("Result: success")
		c.println()
	}
	c.println("All unit tests completed successfully")
	c.println()
	return nil
}

func loadFixture() (*addressbook.Book, bool) {
	book := addressbook.New()
	if err := book.Load(strings.NewReader(fixture)); err != nil {
		return nil, false
	}
	return book, true
}

func useCaseLoadMerge() bool {
	book, ok := loadFixture()
	if !ok {
		return false
	}
	contact, ok := book.Find("Nicholas")
	return ok && vector.Equal(contact.Numbers(), vector.From("(420)798-1076", "(347)725-4471"))
}

func useCaseSortPrint() bool {
	book, ok := loadFixture()
	if !ok {
		return false
	}
	book.Sort()
	var out bytes.Buffer
	if err := book.Print(&out); err != nil {
		return false
	}
	s := out.String()
	barry, nicholas := strings.Index(s, "Barry"), strings.Index(s, "Nicholas")
	return barry >= 0 && nicholas >= 0 && barry < nicholas
}

func useCaseFind() bool {
	book, ok := loadFixture()
	if !ok {
		return false
	}
	c1, ok1 := book.Find("Nicholas")
	_, ok2 := book.Find("Nicholas231")
	return ok1 && !ok2 && c1.Name() == "Nicholas"
}

func useCaseDelete() bool {
	book, ok := loadFixture()
	if !ok {
		return false
	}
	book.Delete("Nicholas")
	_, nicholas := book.Find("Nicholas")
	_, barry := book.Find("Barry")
	return !nicholas && barry
}
