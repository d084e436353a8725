package main

import (
	"context"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opdss/addressbook/addressbook"
	contract "github.com/opdss/addressbook/contracts/storage"
	"github.com/opdss/addressbook/db"
	"github.com/opdss/addressbook/redis"
	"github.com/opdss/addressbook/repository"
	"github.com/opdss/addressbook/storage"
)

// RepoConfig 通讯录保存位置，配置了 db.driver 时使用数据库，否则使用文件存储
type RepoConfig struct {
	Storage storage.Config
	Db      db.Config
	Replica db.Config `help:"只读从库,为空时读写都走主库"`
}

// LockConfig 编辑锁，防止多个进程同时编辑同一个通讯录
type LockConfig struct {
	Enabled bool          `help:"编辑通讯录前获取redis锁" default:"false"`
	Prefix  string        `help:"锁的键前缀" default:"addressbook:lock:"`
	Wait    time.Duration `help:"等待锁的时间,为0时获取不到立即失败" default:"0"`
	Expire  time.Duration `help:"锁的过期时间" default:"24h"`
}

// openRepository 按配置创建仓库，返回的 closer 释放底层连接
func openRepository(ctx context.Context, log *zap.Logger, conf RepoConfig, file string) (addressbook.Repository, func() error, error) {
	if conf.Db.Enabled() {
		msdb, err := db.NewMsDB(log, db.MsConfig{Master: conf.Db, Slave: conf.Replica})
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewGorm(log, msdb)
		if err = repo.Migrate(ctx); err != nil {
			return nil, nil, errs.Combine(err, msdb.Close())
		}
		return repo, msdb.Close, nil
	}
	if file == "" {
		return nil, nil, errs.New("missing file")
	}
	fs, err := storage.New(conf.Storage)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewCsv(log, fs, file), func() error { return nil }, nil
}

// openStorage 导出上传使用的文件存储
func openStorage(conf RepoConfig) (contract.FileSystem, error) {
	return storage.New(conf.Storage)
}

// lockKey 锁的键，数据库模式下所有进程共用同一个键
func lockKey(conf RepoConfig, lock LockConfig, file string) string {
	if conf.Db.Enabled() {
		return lock.Prefix + conf.Db.Driver
	}
	return lock.Prefix + conf.Storage.Driver + ":" + file
}

// editLock 持有中的编辑锁，未开启时所有方法都是空操作
type editLock struct {
	log     *zap.Logger
	locker  *redis.Locker
	expire  time.Duration
	release func() error
}

// acquireLock 按配置获取编辑锁
func acquireLock(log *zap.Logger, lock LockConfig, rc redis.Config, key string) (*editLock, error) {
	if !lock.Enabled {
		return &editLock{log: log, release: func() error { return nil }}, nil
	}
	client, err := redis.NewRedis(rc)
	if err != nil {
		return nil, err
	}
	locker := redis.NewLocker(key, client)
	if lock.Wait > 0 {
		err = locker.TryLockFor(lock.Wait, lock.Expire)
	} else {
		err = locker.Lock(lock.Expire)
	}
	if err != nil {
		return nil, errs.Combine(err, client.Close())
	}
	log.Debug("edit lock acquired", zap.String("key", key))
	return &editLock{
		log:    log.With(zap.String("key", key)),
		locker: locker,
		expire: lock.Expire,
		release: func() error {
			return errs.Combine(locker.Unlock(), client.Close())
		},
	}, nil
}

// Release 释放锁并关闭 redis 连接
func (l *editLock) Release() error {
	return l.release()
}

// Keep 每隔 expire/3 续期一次直到 ctx 结束，续期失败说明锁已丢失
func (l *editLock) Keep(ctx context.Context) error {
	if l.locker == nil || l.expire <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(max(l.expire/3, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.locker.Refresh(l.expire); err != nil {
				l.log.Error("edit lock lost", zap.Error(err))
				return err
			}
			l.log.Debug("edit lock renewed")
		}
	}
}

// holdLock 在 fn 运行期间持续续期编辑锁，锁丢失时取消 fn 的 ctx 并返回续期错误
func holdLock(ctx context.Context, lock *editLock, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return lock.Keep(gctx)
	})
	group.Go(func() error {
		defer cancel()
		return fn(gctx)
	})
	return group.Wait()
}
