// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"bizcoach-workers/pkg/registry"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "registry-updater",
		Short:         "Inspect and edit the worker activity registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "Path to registry file")

	cmd.AddCommand(
		newListCmd(&path),
		newAddCmd(&path),
		newUpdateCmd(&path),
		newValidateCmd(&path),
		newExportCmd(&path),
	)
	return cmd
}

func newListCmd(path *string) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderActivities(reg, category))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only show this category")
	return cmd
}

func newAddCmd(path *string) *cobra.Command {
	a := registry.Activity{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				if !os.IsNotExist(err) {
					return fmt.Errorf("failed to load registry: %w", err)
				}
				reg = &registry.ActivityRegistry{Version: "1.0.0"}
			}
			if a.TaskType == "" {
				a.TaskType = a.ID
			}
			if err := reg.Add(a); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", a.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.ID, "id", "", "Activity ID (e.g. compute-health-score)")
	cmd.Flags().StringVar(&a.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&a.Description, "description", "", "Description")
	cmd.Flags().StringVar(&a.Category, "category", "", "Category (connectors, analytics, planning, notifications)")
	cmd.Flags().StringVar(&a.TaskType, "task-type", "", "Zeebe job type; defaults to the ID")
	cmd.Flags().StringVar(&a.Version, "version", "1.0.0", "Version")
	cmd.Flags().StringVar(&a.ImplementationStatus, "status", registry.StatusPlanned, "Implementation status")
	cmd.Flags().StringVar(&a.Timeout, "timeout", "10s", "Job timeout")
	cmd.Flags().IntVar(&a.Retries, "retries", 0, "Retry budget")
	cmd.Flags().StringSliceVar(&a.ErrorCodes, "error-codes", nil, "Error codes the worker may raise")
	cmd.Flags().StringSliceVar(&a.Tags, "tags", nil, "Tags")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("display-name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newUpdateCmd(path *string) *cobra.Command {
	var id, field, value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Activity ID to update")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (status, version, displayName, description, category, timeout, retries)")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	}
}

func newExportCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the registry as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if reg.LastUpdated == "" {
				reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(reg)
		},
	}
}
