// Package api 通讯录 http 接口
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/addressbook"
	"github.com/opdss/addressbook/iterator"
	"github.com/opdss/addressbook/vector"
)

// ContactView 联系人的 json 表示
type ContactView struct {
	Name    string   `json:"name"`
	Numbers []string `json:"numbers"`
}

type addRequest struct {
	Name   string `json:"name" binding:"required"`
	Number string `json:"number" binding:"required"`
}

// Handler 通讯录接口，所有修改在写锁内完成并立即保存
type Handler struct {
	log  *zap.Logger
	repo addressbook.Repository
	mu   sync.RWMutex
	book *addressbook.Book
}

func NewHandler(log *zap.Logger, book *addressbook.Book, repo addressbook.Repository) *Handler {
	return &Handler{
		log:  log.Named("api"),
		repo: repo,
		book: book,
	}
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/contacts", h.List)
	r.GET("/contacts/:name", h.Get)
	r.POST("/contacts", h.Add)
	r.DELETE("/contacts/:name", h.Delete)
}

// List 按名字排序返回全部联系人
func (h *Handler) List(c *gin.Context) {
	h.mu.RLock()
	book := h.book.Clone()
	h.mu.RUnlock()

	book.Sort()
	list := vector.New[ContactView]()
	views := iterator.Map[addressbook.Contact, ContactView](iterator.NewVectorIterator(book.Contacts()), func(contact addressbook.Contact) ContactView {
		return toView(&contact)
	})
	if err := iterator.Collect(views, list); err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, list.Slice())
}

func (h *Handler) Get(c *gin.Context) {
	h.mu.RLock()
	contact, ok := h.book.Find(c.Param("name"))
	h.mu.RUnlock()
	if !ok {
		abort(c, http.StatusNotFound, addressbook.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toView(&contact))
}

// Add 追加号码，联系人不存在时新建
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	var contact addressbook.Contact
	err := h.mutate(c.Request.Context(), func(book *addressbook.Book) error {
		if err := book.Add(req.Name, req.Number); err != nil {
			return err
		}
		contact, _ = book.Find(req.Name)
		return nil
	})
	if err != nil {
		h.log.Warn("add contact", zap.String("name", req.Name), zap.Error(err))
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toView(&contact))
}

func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("name")
	found := true
	err := h.mutate(c.Request.Context(), func(book *addressbook.Book) error {
		if !book.Delete(name) {
			found = false
			return addressbook.ErrNotFound
		}
		return nil
	})
	switch {
	case !found:
		abort(c, http.StatusNotFound, err)
	case err != nil:
		h.log.Warn("delete contact", zap.String("name", name), zap.Error(err))
		abort(c, http.StatusInternalServerError, err)
	default:
		c.Status(http.StatusNoContent)
	}
}

// mutate 在副本上执行修改，保存成功后替换当前通讯录
func (h *Handler) mutate(ctx context.Context, fn func(book *addressbook.Book) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	book := h.book.Clone()
	if err := fn(book); err != nil {
		return err
	}
	if err := h.repo.Save(ctx, book); err != nil {
		return err
	}
	h.book = book
	return nil
}

func toView(c *addressbook.Contact) ContactView {
	return ContactView{Name: c.Name(), Numbers: c.Numbers().Slice()}
}

func abort(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
