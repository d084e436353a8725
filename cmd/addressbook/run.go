package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/cli"
	"github.com/opdss/addressbook/process"
	"github.com/opdss/addressbook/redis"
	"github.com/opdss/addressbook/repository"
	"github.com/opdss/addressbook/storage"
)

const (
	usage           = "Usage: addressbook [options] file"
	invalidFilename = "Invalid filename"
)

var runCfg struct {
	RepoConfig
	Lock  LockConfig
	Redis redis.Config
}

func init() {
	process.Bind(rootCmd, &runCfg, bindOpts()...)
}

// cmdRun 加载通讯录，进入交互循环，退出时保存
func cmdRun(cmd *cobra.Command, args []string) (err error) {
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	if file == "" && !runCfg.Db.Enabled() {
		fmt.Println(usage)
		return nil
	}
	ctx := process.Ctx(cmd)
	log := zap.L()

	if runCfg.Storage.Driver == storage.DriverLocal || runCfg.Storage.Driver == "" {
		if info, statErr := os.Stat(file); statErr == nil && info.IsDir() {
			fmt.Println(invalidFilename)
			return errs.New("%s is a directory", file)
		}
	}

	repo, closeRepo, err := openRepository(ctx, log, runCfg.RepoConfig, file)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, closeRepo()) }()

	lock, err := acquireLock(log, runCfg.Lock, runCfg.Redis, lockKey(runCfg.RepoConfig, runCfg.Lock, file))
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, lock.Release()) }()

	book, err := repo.Load(ctx)
	if err != nil {
		if invalidFile(err) {
			fmt.Println(invalidFilename)
		}
		return err
	}

	return holdLock(ctx, lock, func(ctx context.Context) error {
		if err := cli.New(log, book, os.Stdin, os.Stdout).Run(ctx); err != nil {
			return err
		}
		return repo.Save(ctx, book)
	})
}

// invalidFile 文件本身无法作为通讯录打开，格式错误和存储故障不算
func invalidFile(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) || errors.Is(err, repository.ErrNotText)
}
