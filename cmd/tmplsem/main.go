package main

import (
	"context"
	"encoding/json"
	"os"
	rdebug "runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	semantic_tokens "github.com/walteh/tmplsem/cmd/tmplsem/semantic-tokens"
	show_tooltip "github.com/walteh/tmplsem/cmd/tmplsem/show-tooltip"
	"github.com/walteh/tmplsem/pkg/debug"
	"github.com/walteh/tmplsem/pkg/lsp"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var debugLogging bool

	rootCmd := &cobra.Command{
		Use:          "tmplsem",
		Short:        "semantic highlighting and tooltips for component templates",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if debugLogging {
			level = zerolog.DebugLevel
		}
		logger := debug.NewLogger(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd()))
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	cmdLegend := &cobra.Command{
		Use:   "legend",
		Short: "print the semantic token legend as JSON",
		RunE: func(cmdz *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmdz.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(lsp.Legend()); err != nil {
				return errors.Errorf("encoding legend: %w", err)
			}
			return nil
		},
	}

	fs := afero.NewOsFs()

	rootCmd.AddCommand(cmdVersion)
	rootCmd.AddCommand(cmdLegend)
	rootCmd.AddCommand(semantic_tokens.NewSemanticTokensCommand(fs))
	rootCmd.AddCommand(show_tooltip.NewShowTooltipCommand(fs))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
