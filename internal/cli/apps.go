// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	search "github.com/go-a2a/vertexai-search"
)

func (c *cli) appsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app", "engines"},
		Short:   "Manage and query search apps",
	}
	cmd.AddCommand(
		c.appCreateCommand(),
		c.appListCommand(),
		c.appSearchCommand(),
		c.appAnswerCommand(),
		c.appDeleteCommand(),
		c.appDescribeCommand(),
	)
	return cmd
}

func (c *cli) appCreateCommand() *cobra.Command {
	var (
		displayName string
		dataStores  []string
		tier        string
		addOns      []string
	)
	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a search app",
		Long: heredoc.Doc(`
			Create a search app serving one or more data stores.

			The app inherits the industry vertical of the first data store.
		`),
		Example: heredoc.Doc(`
			vsearch apps create docs-app --data-store docs --tier enterprise --add-on llm
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var opts []search.AppOption
			if tier != "" {
				t, err := search.ParseSearchTier(tier)
				if err != nil {
					return err
				}
				opts = append(opts, search.WithSearchTier(t))
			}
			for _, a := range addOns {
				addOn, err := search.ParseSearchAddOn(a)
				if err != nil {
					return err
				}
				opts = append(opts, search.WithSearchAddOns(addOn))
			}
			if displayName == "" {
				displayName = args[0]
			}

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			stores := make([]*search.DataStore, 0, len(dataStores))
			for _, id := range dataStores {
				ds, err := client.DataStore(id)
				if err != nil {
					return err
				}
				stores = append(stores, ds)
			}

			app, err := client.CreateApp(ctx, args[0], displayName, stores, opts...)
			if err != nil {
				return err
			}
			return c.printResources([]resourceRow{appRow(app)})
		},
	}
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name; defaults to the id")
	cmd.Flags().StringSliceVar(&dataStores, "data-store", nil, "data stores served by the app")
	cmd.Flags().StringVar(&tier, "tier", "", "search tier: standard or enterprise")
	cmd.Flags().StringSliceVar(&addOns, "add-on", nil, "search add-ons, e.g. llm")
	_ = cmd.MarkFlagRequired("data-store")
	return cmd
}

func (c *cli) appListCommand() *cobra.Command {
	var (
		pageSize int32
		filter   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List search apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			var rows []resourceRow
			for app, err := range client.ListApps(ctx, search.WithListPageSize(pageSize), search.WithListFilter(filter)) {
				if err != nil {
					return err
				}
				rows = append(rows, appRow(app))
			}
			return c.printResources(rows)
		},
	}
	cmd.Flags().Int32Var(&pageSize, "page-size", 0, "apps fetched per request")
	cmd.Flags().StringVar(&filter, "filter", "", "filter expression")
	return cmd
}

func (c *cli) appSearchCommand() *cobra.Command {
	var (
		image    string
		pageSize int32
		maxPages int
		filter   string
		orderBy  string
	)
	cmd := &cobra.Command{
		Use:   "search <id> [query]",
		Short: "Search an app",
		Example: heredoc.Doc(`
			vsearch apps search docs-app "how do I rotate keys?" --page-size 5
			vsearch apps search docs-app --image diagram.png
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var query search.Query
			switch {
			case image != "" && len(args) > 1:
				return errors.New("a text query and --image are mutually exclusive")
			case image != "":
				data, err := os.ReadFile(image)
				if err != nil {
					return err
				}
				query = search.NewImageQuery(data, mime.TypeByExtension(filepath.Ext(image)))
			case len(args) > 1:
				query = search.Text(args[1])
			default:
				return search.ErrEmptyQuery
			}

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			app, err := client.App(args[0])
			if err != nil {
				return err
			}

			opts := []search.SearchOption{
				search.WithPageSize(pageSize),
				search.WithFilter(filter),
				search.WithOrderBy(orderBy),
			}
			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			if !c.flags.jsonOutput {
				fmt.Fprintln(tw, "ID\tDOCUMENT")
			}
			pages := 0
			for resp, err := range app.Search(ctx, query, opts...) {
				if err != nil {
					return err
				}
				if c.flags.jsonOutput {
					if err := writeProto(c.out, resp); err != nil {
						return err
					}
				} else {
					for _, r := range resp.GetResults() {
						fmt.Fprintf(tw, "%s\t%s\n", r.GetId(), r.GetDocument().GetName())
					}
				}
				pages++
				if maxPages > 0 && pages >= maxPages {
					break
				}
			}
			if c.flags.jsonOutput {
				return nil
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "image file to search with instead of text")
	cmd.Flags().Int32Var(&pageSize, "page-size", 10, "results per page")
	cmd.Flags().IntVar(&maxPages, "max-pages", 1, "pages to fetch; 0 fetches all")
	cmd.Flags().StringVar(&filter, "filter", "", "filter expression")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "result order, e.g. \"title desc\"")
	return cmd
}

func (c *cli) appAnswerCommand() *cobra.Command {
	var (
		session      string
		userPseudoID string
	)
	cmd := &cobra.Command{
		Use:   "answer <id> <question>...",
		Short: "Answer a question with an app",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			app, err := client.App(args[0])
			if err != nil {
				return err
			}

			var opts []search.AnswerOption
			if session != "" {
				opts = append(opts, search.WithSession(session))
			}
			if userPseudoID != "" {
				opts = append(opts, search.WithAnswerUserPseudoID(userPseudoID))
			}
			resp, err := app.Answer(ctx, strings.Join(args[1:], " "), opts...)
			if err != nil {
				return err
			}
			return c.printMessage(resp, "%s\n", resp.GetAnswer().GetAnswerText())
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "session resource name to continue")
	cmd.Flags().StringVar(&userPseudoID, "user-pseudo-id", "", "pseudonymous id of the asking user")
	return cmd
}

func (c *cli) appDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete search apps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			for _, id := range args {
				app, err := client.App(id)
				if err != nil {
					return err
				}
				if err := app.Delete(ctx); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Deleted %s\n", app.Name())
			}
			return nil
		},
	}
}

func (c *cli) appDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Show the remote description of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			app, err := client.App(args[0])
			if err != nil {
				return err
			}
			desc, err := app.Describe(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, desc)
			return err
		},
	}
}

func appRow(app *search.App) resourceRow {
	return resourceRow{ID: app.ID(), Name: app.Name(), Location: app.Location()}
}
