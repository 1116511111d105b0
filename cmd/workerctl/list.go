package main

import (
	"fmt"
	"strconv"

	"workerctl/internal/config"
	"workerctl/internal/workerform"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the managed workers of the tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()
			if err := settings.Validate(); err != nil {
				return err
			}

			resp, err := settings.NewClient().ManagedWorkers.List(cmd.Context(), settings.TenantID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Rows) == 0 {
				fmt.Fprintln(out, "No managed workers")
				return nil
			}

			t := newTable("ID", "NAME", "REPOSITORY", "BRANCH", "RUNTIME")
			for _, w := range resp.Rows {
				runtime := "infra-as-code"
				if !w.IsIac {
					runtime = ""
					for _, rc := range w.RuntimeConfigs {
						if runtime != "" {
							runtime += ", "
						}
						runtime += fmt.Sprintf("%dx %d CPU %s/%d MB %s", rc.NumReplicas, rc.CPUs, rc.CPUKind, rc.MemoryMB, rc.Region)
					}
				}
				t.Row(w.Metadata.ID, w.Name, w.BuildConfig.GithubRepository.FullName(), w.BuildConfig.GithubRepositoryBranch, runtime)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <worker-id>",
		Short: "Delete a managed worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()
			if settings.APIToken == "" {
				return config.ErrMissingToken
			}

			if err := settings.NewClient().ManagedWorkers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newMachineTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "machine-types",
		Short: "List the available machine types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			t := newTable("MACHINE TYPE", "CPU KIND", "CPUS", "MEMORY (MB)")
			for _, mt := range workerform.MachineTypes() {
				t.Row(mt.Title, string(mt.CPUKind), strconv.Itoa(mt.CPUs), strconv.Itoa(mt.MemoryMB))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the available regions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			t := newTable("CODE", "REGION")
			for _, r := range workerform.Regions() {
				code := string(r.Code)
				if r.Code == workerform.DefaultRegion {
					code += " (default)"
				}
				t.Row(code, r.DisplayName)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}
