package main

import (
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/opdss/addressbook/api"
	"github.com/opdss/addressbook/jwt"
	"github.com/opdss/addressbook/process"
	"github.com/opdss/addressbook/redis"
	"github.com/opdss/addressbook/server/http"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the address book over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmdServe,
	}

	serveCfg struct {
		RepoConfig
		Lock  LockConfig
		Redis redis.Config
		Jwt   jwt.Config
		Http  http.Config
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
	process.Bind(serveCmd, &serveCfg, bindOpts()...)
}

func cmdServe(cmd *cobra.Command, args []string) (err error) {
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	ctx := process.Ctx(cmd)
	log := zap.L()

	repo, closeRepo, err := openRepository(ctx, log, serveCfg.RepoConfig, file)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, closeRepo()) }()

	lock, err := acquireLock(log, serveCfg.Lock, serveCfg.Redis, lockKey(serveCfg.RepoConfig, serveCfg.Lock, file))
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, lock.Release()) }()

	book, err := repo.Load(ctx)
	if err != nil {
		return err
	}

	engine := http.NewEngine(log)
	group := engine.Group("/")
	if serveCfg.Jwt.Key != "" {
		group.Use(api.Auth(jwt.NewJwt(serveCfg.Jwt)))
	} else {
		log.Warn("jwt.key is empty, http api is not authenticated")
	}
	api.NewHandler(log, book, repo).Register(group)

	server := http.NewServer(engine, log, serveCfg.Http)
	return holdLock(ctx, lock, server.Start)
}
