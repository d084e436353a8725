package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/opdss/addressbook/jwt"
	"github.com/opdss/addressbook/process"
)

var (
	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  cmdToken,
	}

	tokenCfg struct {
		Jwt     jwt.Config
		User    string `help:"令牌中的用户名" default:"admin"`
		UserId  int64  `help:"令牌中的用户id" default:"1"`
		Refresh bool   `help:"签发刷新令牌" default:"false"`
	}
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	process.Bind(tokenCmd, &tokenCfg, bindOpts()...)
}

func cmdToken(cmd *cobra.Command, args []string) error {
	if tokenCfg.Jwt.Key == "" {
		return errs.New("jwt.key is required")
	}
	j := jwt.NewJwt(tokenCfg.Jwt)
	payload := jwt.TokenPayload{UserId: tokenCfg.UserId, Username: tokenCfg.User}
	issue := j.CreateToken
	if tokenCfg.Refresh {
		issue = j.CreateRefreshToken
	}
	token, expiresAt, err := issue(payload)
	if err != nil {
		return err
	}
	fmt.Println(token)
	fmt.Println("expires:", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
