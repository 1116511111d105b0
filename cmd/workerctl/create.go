package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"workerctl/internal/config"
	"workerctl/internal/ui/components"
	"workerctl/internal/utils"
	"workerctl/internal/workerform"
	cloud "workerctl/sdk"
	"workerctl/sdk/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateCmd() *cobra.Command {
	var file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a managed worker from a request file",
		Long: `Reads a worker request file (see "workerctl init"), validates it and
creates the managed worker. With --dry-run the request is only validated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.LoadWorkerFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if errs := workerform.Validate(*req); len(errs) > 0 {
				printFieldErrors(out, errs)
				return &workerform.ValidationError{Fields: errs}
			}

			if dryRun {
				fmt.Fprintf(out, "%s is valid\n", file)
				return nil
			}

			settings := config.Load()
			if err := settings.Validate(); err != nil {
				return err
			}

			worker, err := createFromRequest(cmd.Context(), settings.NewClient(), settings.TenantID, *req)
			if err != nil {
				var apiErr *cloud.APIError
				if errors.As(err, &apiErr) && len(apiErr.FieldErrors()) > 0 {
					printFieldErrors(out, apiErr.FieldErrors())
				}
				return err
			}

			fmt.Fprintln(out, components.SuccessStyle.Render("✓ Worker created"))
			fmt.Fprintf(out, "  name: %s\n  id:   %s\n", worker.Name, worker.Metadata.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", config.DefaultWorkerFile, "worker request file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the request without creating the worker")

	return cmd
}

func createFromRequest(ctx context.Context, client *cloud.Client, tenantID string, req models.CreateManagedWorkerRequest) (*models.ManagedWorker, error) {
	utils.Logger().Info("creating managed worker",
		zap.String("name", req.Name),
		zap.String("repository", req.BuildConfig.GithubRepositoryOwner+"/"+req.BuildConfig.GithubRepositoryName),
		zap.String("tenant", tenantID))

	worker, err := client.ManagedWorkers.Create(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("could not create worker: %w", err)
	}
	return worker, nil
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	fieldErrs := workerform.FieldErrors(errs)
	for _, field := range fieldErrs.Fields() {
		fmt.Fprintf(out, "%s %s: %s\n", components.ErrorStyle.Render("✗"), field, fieldErrs[field])
	}
}
