package main

import (
	"fmt"

	"workerctl/internal/ui/components"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "workerctl %s\n", components.VersionString())
			fmt.Fprintf(out, "  commit: %s\n", components.GitCommit)
			fmt.Fprintf(out, "  built:  %s\n", components.BuildTime)
		},
	}
}
