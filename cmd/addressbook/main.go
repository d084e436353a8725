package main

import (
	"github.com/spf13/cobra"

	"github.com/opdss/addressbook/cfgstruct"
	"github.com/opdss/addressbook/process"
)

const defaultConfDir = "$HOME/.addressbook"

var (
	rootCmd = &cobra.Command{
		Use:   "addressbook [file]",
		Short: "Interactive address book editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmdRun,
	}

	confDir string
)

func main() {
	rootCmd.PersistentFlags().StringVar(&confDir, "config-dir", defaultConfDir, "main directory for addressbook configuration")
	process.Exec(rootCmd, process.Options{BindOpts: bindOpts()})
}

func bindOpts() []cfgstruct.BindOpt {
	return []cfgstruct.BindOpt{
		cfgstruct.ConfDir(defaultConfDir),
		cfgstruct.Root(defaultConfDir),
	}
}
