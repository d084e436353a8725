package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/opdss/addressbook/jwt"
	"github.com/opdss/addressbook/process"
	"github.com/opdss/addressbook/redis"
	"github.com/opdss/addressbook/server/http"
)

var (
	setupCmd = &cobra.Command{
		Use:         "setup",
		Short:       "Create a default config file",
		Args:        cobra.NoArgs,
		RunE:        cmdSetup,
		Annotations: map[string]string{"type": "setup"},
	}

	setupCfg struct {
		RepoConfig
		Lock      LockConfig
		Redis     redis.Config
		Jwt       jwt.Config
		Http      http.Config
		Export    ExportConfig
		Overwrite bool `help:"覆盖已存在的配置文件" default:"false" internal:"true"`
	}
)

func init() {
	rootCmd.AddCommand(setupCmd)
	process.Bind(setupCmd, &setupCfg, bindOpts()...)
}

func cmdSetup(cmd *cobra.Command, args []string) error {
	path, err := process.ConfigPath(cmd)
	if err != nil {
		return err
	}
	if process.FileExists(path) && !setupCfg.Overwrite {
		return errs.New("config file %s already exists, use --overwrite", path)
	}
	if err = process.SaveConfig(cmd, path, nil); err != nil {
		return err
	}
	fmt.Println("config written to", path)
	return nil
}
