// cmd/inspect-cli/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-object-inspector/internal/catalog"
	"go-object-inspector/internal/config"
	"go-object-inspector/internal/fixtures"
	"go-object-inspector/internal/inspector"
	"go-object-inspector/internal/log"
	"go-object-inspector/internal/output"
)

const description string = `
Prints a report describing one of the built-in demo objects: its type name,
embedded parent type, declared interfaces, constructors, methods and fields
with their current values.

With --recursive, each field value is inspected in turn, up to three levels
deep. Use --list to see the available objects.
`

type Options struct {
	ConfigFile     string
	Recursive      bool
	Color          bool
	List           bool
	NoForceAccess  bool
	CycleDetection bool
}

func main() {
	if err := NewCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand returns the command printing inspection reports to out.
func NewCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect-cli [object]",
		Short:        "Prints an inspection report for a demo object.",
		Long:         description,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	opts := Options{}
	cmd.Flags().StringVar(&opts.ConfigFile, "config", opts.ConfigFile, "Path to a yaml, json or toml config file")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", opts.Recursive, "Inspect field values too")
	cmd.Flags().BoolVar(&opts.Color, "color", opts.Color, "Highlight class names and section headers")
	cmd.Flags().BoolVar(&opts.List, "list", opts.List, "List the available objects and exit")
	cmd.Flags().BoolVar(&opts.NoForceAccess, "no-force-access", opts.NoForceAccess, "Fail on unexported fields instead of reading them")
	cmd.Flags().BoolVar(&opts.CycleDetection, "cycle-detection", opts.CycleDetection, "Do not descend again into an object already being inspected")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		if opts.ConfigFile != "" {
			loaded, err := config.Load(opts.ConfigFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		flags := cmd.Flags()
		if flags.Changed("recursive") {
			cfg.Inspect.Recursive = opts.Recursive
		}
		if flags.Changed("color") {
			cfg.Output.Color = opts.Color
		}
		if flags.Changed("no-force-access") {
			cfg.Inspect.ForceAccess = !opts.NoForceAccess
		}
		if flags.Changed("cycle-detection") {
			cfg.Inspect.CycleDetection = opts.CycleDetection
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log.SetLogger(log.New(cfg.Log.Level, cfg.Log.Development))

		objects := catalog.New()
		if err := fixtures.Register(objects); err != nil {
			return err
		}
		if opts.List || len(args) == 0 {
			for _, name := range objects.Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		obj, ok := objects.Get(args[0])
		if !ok {
			return errors.Errorf("unknown object %q, use --list to see the available ones", args[0])
		}
		in := inspector.New(
			inspector.WithOutput(output.NewColorWriter(out, cfg.Output.Color)),
			inspector.WithLogger(log.Log),
			inspector.WithForceAccess(cfg.Inspect.ForceAccess),
			inspector.WithCycleDetection(cfg.Inspect.CycleDetection),
		)
		return in.Inspect(obj, cfg.Inspect.Recursive)
	}
	return cmd
}
