// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the vsearch command line interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	search "github.com/go-a2a/vertexai-search"
	"github.com/go-a2a/vertexai-search/pkg/logging"
	"github.com/go-a2a/vertexai-search/staging"
)

// cli holds the state shared by every command.
type cli struct {
	flags  globalFlags
	out    io.Writer
	errOut io.Writer

	newClient   func(ctx context.Context, cfg *search.Config) (*search.Client, error)
	newUploader func(ctx context.Context, cfg *search.Config) (*staging.Uploader, error)
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{
		out:    out,
		errOut: errOut,
		newClient: func(ctx context.Context, cfg *search.Config) (*search.Client, error) {
			return search.NewClient(ctx, cfg, search.WithLogger(logging.FromContext(ctx)))
		},
		newUploader: func(ctx context.Context, cfg *search.Config) (*staging.Uploader, error) {
			return staging.FromConfig(ctx, cfg, staging.WithLogger(logging.FromContext(ctx)))
		},
	}
}

// NewRootCommand returns the vsearch root command writing to stdout and stderr.
func NewRootCommand() *cobra.Command {
	return newCLI(os.Stdout, os.Stderr).rootCommand()
}

// Execute runs the vsearch command line.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (c *cli) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vsearch",
		Short: "Manage Vertex AI Search data stores and apps",
		Long: heredoc.Doc(`
			vsearch manages Vertex AI Search (Discovery Engine) data stores and apps.

			The project and location are taken from the --project and --location flags,
			then from VSEARCH_PROJECT and VSEARCH_LOCATION, then from the config file,
			and finally from GOOGLE_CLOUD_PROJECT. The location defaults to "global".
		`),
		Version:       search.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.flags.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
			cmd.SetContext(logging.NewContext(cmd.Context(), logger))
		},
	}
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&c.flags.project, "project", "", "Google Cloud project")
	pf.StringVar(&c.flags.location, "location", "", `location of the resources, e.g. "global", "us" or "eu"`)
	pf.StringVar(&c.flags.endpoint, "endpoint", "", "API endpoint override")
	pf.StringVar(&c.flags.transport, "transport", "", `transport, "grpc" or "rest"`)
	pf.StringVar(&c.flags.configPath, "config", DefaultConfigPath(), "path of the YAML config file")
	pf.BoolVar(&c.flags.jsonOutput, "json", false, "output in JSON format")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "log API calls")

	cmd.AddCommand(c.dataStoresCommand())
	cmd.AddCommand(c.appsCommand())

	return cmd
}

// config resolves the search configuration of the current invocation.
func (c *cli) config() (*search.Config, error) {
	fc, err := LoadFileConfig(c.flags.configPath)
	if err != nil {
		return nil, err
	}
	return c.flags.resolve(fc)
}

// client returns a search client for the current invocation.
func (c *cli) client(ctx context.Context) (*search.Client, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return c.newClient(ctx, cfg)
}
