package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go-object-inspector/internal/gen"
	"go-object-inspector/internal/log"
)

type Options struct {
	Dir           string
	Output        string
	InspectorPath string
	DryRun        bool
}

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand returns the command generating inspector registrations for Go
// packages.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect-gen [packages]",
		Short: "Generates inspector registrations for constructors, interfaces and unexported methods.",
		Long: `Scans Go packages for New... constructors, interface assertions such as
var _ I = (*T)(nil), embedded interfaces and unexported methods, and writes a
file registering them with the inspector.`,
		SilenceUsage: true,
	}

	opts := Options{
		Dir:           ".",
		Output:        gen.DefaultOutput,
		InspectorPath: gen.DefaultInspectorPath,
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", opts.Dir, "Directory the package patterns are resolved from")
	cmd.Flags().StringVar(&opts.Output, "output", opts.Output, "Name of the generated file in each package")
	cmd.Flags().StringVar(&opts.InspectorPath, "inspector-path", opts.InspectorPath, "Import path of the inspector package")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", opts.DryRun, "Print the generated code instead of writing it")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		absDir, err := filepath.Abs(opts.Dir)
		if err != nil {
			return err
		}
		log.Info("Loading packages", "dir", absDir)
		pkgs, err := gen.Load(absDir, args...)
		if err != nil {
			log.Error(err, "Failed to load packages")
			return err
		}
		for _, pkg := range pkgs {
			if opts.DryRun {
				if pkg.Empty() {
					continue
				}
				src, err := gen.Render(pkg, opts.InspectorPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", filepath.Join(pkg.Dir, opts.Output), src)
				continue
			}
			target, err := gen.Write(pkg, opts.Output, opts.InspectorPath)
			if err != nil {
				log.Error(err, "Failed to write registrations", "package", pkg.Path)
				return err
			}
			if target != "" {
				log.Info("Wrote registrations", "file", target)
			}
		}
		return nil
	}
	return cmd
}
