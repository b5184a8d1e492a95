package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vsinha/production/pkg/interfaces/cli/commands"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "production",
		Short:         "Production order engine: BOM assembly and disassembly",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDisassembleCommand(), newServeCommand(), newImportCommand())
	return root
}

func newDisassembleCommand() *cobra.Command {
	var config commands.Config

	cmd := &cobra.Command{
		Use:   "disassemble [numbers...]",
		Short: "Disassemble the production orders of a CSV scenario",
		Long: `Loads a scenario directory (uoms, companies, locations, warehouses,
products, boms, productions and optional config CSV files), validates its BOMs
and disassembles the given orders, or every order when none are given.`,
		Example: `  production disassemble -s example/widget
  production disassemble -s example/widget MO-0003 --dry-run
  production disassemble -s example/widget -f xlsx -o results/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Numbers = args
			return commands.NewDisassembleCommand(config).Execute(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.ScenarioDir, "scenario", "s", "", "Path to scenario directory containing CSV files")
	flags.BoolVar(&config.DryRun, "dry-run", false, "Preview the moves without saving them")
	flags.StringVarP(&config.OutputDir, "output", "o", "", "Output directory for results (optional)")
	flags.StringVarP(&config.Format, "format", "f", "text", "Output format: text, json, csv, xlsx")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&config.LogLevel, "log-level", "warn", "Log level")
	flags.StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func newServeCommand() *cobra.Command {
	var config commands.ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the production HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewServeCommand(config).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringSliceVar(&config.ConfigDirs, "config-dir", nil, "Directories searched for .env and config.yaml")
	cmd.Flags().StringVarP(&config.ScenarioDir, "scenario", "s", "", "Seed in-memory storage from a scenario directory")

	return cmd
}

func newImportCommand() *cobra.Command {
	var config commands.ImportConfig

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a CSV scenario into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewImportCommand(config).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&config.ScenarioDir, "scenario", "s", "", "Path to scenario directory containing CSV files")
	cmd.Flags().StringSliceVar(&config.ConfigDirs, "config-dir", nil, "Directories searched for .env and config.yaml")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}
