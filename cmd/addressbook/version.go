package main

import (
	"fmt"

	"github.com/opdss/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print build information",
	Args:        cobra.NoArgs,
	RunE:        cmdVersion,
	Annotations: map[string]string{"type": "setup"},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func cmdVersion(cmd *cobra.Command, args []string) error {
	fmt.Println(version.Build)
	return nil
}
