package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/opdss/addressbook/contracts/locker"
)

var ErrTimeout = errors.New("try lock time out")
var ErrFailure = errors.New("get lock failure")
var ErrNotHeld = errors.New("lock not held")

const delLua = `if redis.call("get",KEYS[1]) == ARGV[1] then return redis.call("del",KEYS[1]) end return 0`
const expireLua = `if redis.call("get",KEYS[1]) == ARGV[1] then return redis.call("pexpire",KEYS[1],ARGV[2]) end return 0`

var _ locker.Locker = (*Locker)(nil)

// Locker 基于redis实现的分布式锁，同一个通讯录同时只允许一个编辑者
type Locker struct {
	client       *redis.Client
	unlockScript *redis.Script
	renewScript  *redis.Script
	key          string
	token        string
	deadline     time.Time
}

func NewLocker(key string, rdb *redis.Client) *Locker {
	return &Locker{
		client:       rdb,
		key:          key,
		token:        uuid.New().String(),
		unlockScript: redis.NewScript(delLua),
		renewScript:  redis.NewScript(expireLua),
	}
}

// Lock 非阻塞锁
func (l *Locker) Lock(exp time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), exp)
	defer cancel()
	ok, err := l.client.SetNX(ctx, l.key, l.token, exp).Result()
	if err != nil {
		return Error.Wrap(err)
	}
	if !ok {
		return Error.Wrap(ErrFailure)
	}
	l.deadline = time.Now().Add(exp)
	return nil
}

// TryLock 自旋锁，等待时间同时作为锁的过期时间
func (l *Locker) TryLock(wait time.Duration) error {
	return l.TryLockFor(wait, wait)
}

// TryLockFor 最多自旋 wait，拿到的锁 exp 后过期
func (l *Locker) TryLockFor(wait, exp time.Duration) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	var ok bool
	for ctx.Err() == nil {
		ok, err = l.client.SetNX(ctx, l.key, l.token, exp).Result()
		if err != nil {
			time.Sleep(time.Millisecond * 50)
			continue
		}
		if !ok {
			time.Sleep(time.Millisecond * 10)
			continue
		}
		l.deadline = time.Now().Add(exp)
		return nil
	}
	if err != nil {
		return Error.Wrap(fmt.Errorf("%w: %v", ErrTimeout, err))
	}
	return Error.Wrap(ErrTimeout)
}

// Refresh 把自己持有的锁的过期时间重置为 exp，锁已过期或被他人持有时返回 ErrNotHeld
func (l *Locker) Refresh(exp time.Duration) error {
	if l.deadline.IsZero() {
		return Error.Wrap(ErrNotHeld)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	n, err := l.renewScript.Run(ctx, l.client, []string{l.key}, l.token, exp.Milliseconds()).Int()
	if err != nil {
		return Error.Wrap(err)
	}
	if n == 0 {
		return Error.Wrap(ErrNotHeld)
	}
	l.deadline = time.Now().Add(exp)
	return nil
}

// Unlock 只删除自己持有的锁，锁已过期时返回 ErrNotHeld
func (l *Locker) Unlock() error {
	if l.deadline.IsZero() {
		return Error.Wrap(ErrNotHeld)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	l.deadline = time.Time{}
	n, err := l.unlockScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return Error.Wrap(err)
	}
	if n == 0 {
		return Error.Wrap(ErrNotHeld)
	}
	return nil
}
