package main

import (
	"workerctl/internal/config"
	"workerctl/internal/ui/components"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		SilenceErrors: true,
		SilenceUsage:  true,
		Use:           "workerctl",
		Short:         "Create and manage managed workers",
		Long: `Create and manage managed workers: hosted workers built from a GitHub
repository and run with the region, replicas and machine type you choose.

Without a subcommand an interactive terminal UI is started.

Configuration is read from the environment or a .env file:
  WORKERCTL_API_TOKEN   API token (required)
  WORKERCTL_TENANT_ID   tenant the workers belong to
  WORKERCTL_BASE_URL    API base URL (default https://cloud.onhatchet.run)`,
		Version: components.VersionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(config.Load())
		},
	}

	rootCmd.AddCommand(
		newCreateCmd(),
		newInitCmd(),
		newListCmd(),
		newDeleteCmd(),
		newMachineTypesCmd(),
		newRegionsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
