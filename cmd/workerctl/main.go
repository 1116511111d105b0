// Package main provides workerctl, a terminal client for managed workers.
//
// Run without arguments it opens an interactive UI: a main menu, a step by step
// wizard that creates a managed worker from a GitHub repository, and a list of
// the tenant's workers. Subcommands cover the same ground non-interactively
// for scripts and CI.
package main

import (
	"fmt"
	"os"

	"workerctl/internal/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintln(os.Stderr, "could not open debug log:", err)
	}
	defer utils.SyncLogger()

	if err := newRootCmd().Execute(); err != nil {
		utils.Logger().Error(err.Error())
		fmt.Fprintln(os.Stderr, "Error:", err)
		utils.SyncLogger()
		os.Exit(1)
	}
}
