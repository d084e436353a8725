// Package cli 通讯录交互式命令行
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/addressbook"
)

const HelpText = "Commands: list, search [name], delete [name], add [name] [number], unittest, quit"

const (
	MsgDeleted        = "Deleted contact"
	MsgDeleteNotFound = "Unable to find contact"
	MsgNotFound       = "Contact not found"
	MsgAdded          = "Added contact"
)

type handler func(ctx context.Context, args []string) error

// Cli 逐行读取命令并作用在同一个通讯录上
type Cli struct {
	log      *zap.Logger
	book     *addressbook.Book
	in       io.Reader
	out      io.Writer
	commands map[string]handler
}

func New(log *zap.Logger, book *addressbook.Book, in io.Reader, out io.Writer) *Cli {
	c := &Cli{
		log:  log.Named("cli"),
		book: book,
		in:   in,
		out:  out,
	}
	c.commands = map[string]handler{
		"list":     c.list,
		"search":   c.search,
		"delete":   c.delete,
		"add":      c.add,
		"unittest": c.unitTest,
	}
	return c
}

// Run 打印帮助后进入命令循环，quit、exit 或输入结束时返回
func (c *Cli) Run(ctx context.Context) error {
	c.println(HelpText)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			c.println("Error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		name := strings.ToLower(args[0])
		c.log.Debug("command", zap.String("name", name), zap.Strings("args", args[1:]))
		switch name {
		case "quit", "exit":
			return nil
		case "help":
			c.println(HelpText)
			continue
		}
		h, ok := c.commands[name]
		if !ok {
			c.println(HelpText)
			continue
		}
		if err = h(ctx, args[1:]); err != nil {
			c.log.Warn("command failed", zap.String("name", name), zap.Error(err))
			c.println("Error:", err)
		}
	}
	return scanner.Err()
}

func (c *Cli) list(_ context.Context, _ []string) error {
	c.book.Sort()
	return c.book.Print(c.out)
}

func (c *Cli) search(_ context.Context, args []string) error {
	if len(args) == 0 {
		c.println(HelpText)
		return nil
	}
	contact, ok := c.book.Find(strings.Join(args, " "))
	if !ok {
		c.println(MsgNotFound)
		return nil
	}
	return contact.Print(c.out)
}

func (c *Cli) delete(_ context.Context, args []string) error {
	if len(args) == 0 {
		c.println(HelpText)
		return nil
	}
	if c.book.Delete(strings.Join(args, " ")) {
		c.println(MsgDeleted)
	} else {
		c.println(MsgDeleteNotFound)
	}
	return nil
}

// add 最后一个参数是号码，其余参数拼成名字
func (c *Cli) add(_ context.Context, args []string) error {
	if len(args) < 2 {
		c.println(HelpText)
		return nil
	}
	name := strings.Join(args[:len(args)-1], " ")
	if err := c.book.Add(name, args[len(args)-1]); err != nil {
		return err
	}
	c.println(MsgAdded)
	return nil
}

func (c *Cli) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}
