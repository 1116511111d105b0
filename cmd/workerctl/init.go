package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"workerctl/internal/config"
	"workerctl/internal/utils"
	"workerctl/internal/workerform"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a worker request file with default values",
		Long: `Writes a worker request file with the default build and runtime settings.
Repository and branch are taken from the git checkout in the current
directory, and the installation from the first linked GitHub account when an
API token is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.WorkerFileExists(output) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", output)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			form := workerform.New(workerform.Options{})
			form.Dispatch(workerform.NameChanged{Name: filepath.Base(cwd)})

			if repo, err := utils.DetectGitRepo(cmd.Context(), cwd); err == nil {
				form.Dispatch(
					workerform.NameChanged{Name: repo.Name},
					workerform.RepositorySelected{Owner: repo.Owner, Name: repo.Name},
					workerform.BranchSelected{Branch: repo.Branch},
				)
			} else {
				utils.Logger().Debug("no git repository detected", zap.Error(err))
			}

			settings := config.Load()
			if settings.APIToken != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()

				resp, err := settings.NewClient().Github.ListInstallations(ctx)
				if err != nil {
					utils.Logger().Warn("could not list installations", zap.Error(err))
				} else {
					// Selecting an installation clears the repository, so restore it afterwards
					s := form.State()
					form.Dispatch(
						workerform.InstallationsLoaded{Installations: resp.Rows},
						workerform.RepositorySelected{Owner: s.RepoOwner, Name: s.RepoName},
						workerform.BranchSelected{Branch: s.Branch},
					)
				}
			}

			req := form.State().Request()
			if err := config.SaveWorkerFile(output, &req); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", output)
			if errs := workerform.Validate(req); len(errs) > 0 {
				fmt.Fprintln(out, "Fill in the remaining fields before running \"workerctl create\":")
				printFieldErrors(out, errs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultWorkerFile, "file to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
