// cmd/tools/worker-generator/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"bizcoach-workers/pkg/registry"

	"github.com/spf13/cobra"
)

// WorkerData feeds the file templates.
type WorkerData struct {
	TaskType    string
	PackageName string
	Category    string
	DisplayName string
	Description string
	Timeout     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		registryPath string
		outputDir    string
		force        bool
	)

	cmd := &cobra.Command{
		Use:           "worker-generator <activity-id>",
		Short:         "Scaffold a worker package for a registered activity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			var activity *registry.Activity
			for i := range reg.Activities {
				if reg.Activities[i].ID == args[0] {
					activity = &reg.Activities[i]
				}
			}
			if activity == nil {
				return fmt.Errorf("activity %s not found in %s", args[0], registryPath)
			}

			dir := filepath.Join(outputDir, activity.Category, activity.ID)
			written, err := generate(dir, dataFor(activity), force)
			if err != nil {
				return err
			}
			for _, f := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "Path to the activity registry")
	cmd.Flags().StringVar(&outputDir, "output", "internal/workers", "Root directory for worker packages")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func dataFor(a *registry.Activity) WorkerData {
	timeout := a.Timeout
	if timeout == "" {
		timeout = "10s"
	}
	return WorkerData{
		TaskType:    a.TaskType,
		PackageName: strings.ReplaceAll(a.ID, "-", ""),
		Category:    a.Category,
		DisplayName: a.DisplayName,
		Description: a.Description,
		Timeout:     timeout,
	}
}

// generate writes the four package files into dir and returns their paths.
// Existing files are kept unless force is set.
func generate(dir string, data WorkerData, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s exists; pass --force to overwrite", path)
		}

		tmpl, err := template.New(name).Parse(templates[name])
		if err != nil {
			return written, fmt.Errorf("parse template %s: %w", name, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return written, err
		}
		err = tmpl.Execute(f, data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("render %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
