// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	search "github.com/go-a2a/vertexai-search"
)

func (c *cli) dataStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datastores",
		Aliases: []string{"datastore", "ds"},
		Short:   "Manage data stores",
	}
	cmd.AddCommand(
		c.dataStoreCreateCommand(),
		c.dataStoreListCommand(),
		c.dataStoreImportCommand(),
		c.dataStorePurgeCommand(),
		c.dataStoreDeleteCommand(),
		c.dataStoreDescribeCommand(),
	)
	return cmd
}

func (c *cli) dataStoreCreateCommand() *cobra.Command {
	var (
		displayName string
		dataType    string
		vertical    string
	)
	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a data store",
		Example: heredoc.Doc(`
			vsearch datastores create docs --display-name "Docs" --type unstructured
			vsearch datastores create site --type website-advanced
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			typ, err := search.ParseDataType(dataType)
			if err != nil {
				return err
			}
			var opts []search.DataStoreOption
			if vertical != "" {
				v, err := search.ParseIndustryVertical(vertical)
				if err != nil {
					return err
				}
				opts = append(opts, search.WithIndustryVertical(v))
			}
			if displayName == "" {
				displayName = args[0]
			}

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			ds, err := client.CreateDataStore(ctx, args[0], displayName, typ, opts...)
			if err != nil {
				return err
			}
			return c.printResources([]resourceRow{dataStoreRow(ds)})
		},
	}
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name; defaults to the id")
	cmd.Flags().StringVar(&dataType, "type", "unstructured", "data type: website, structured, unstructured, google-workspace or website-advanced")
	cmd.Flags().StringVar(&vertical, "industry-vertical", "", "industry vertical: generic, media or healthcare-fhir")
	return cmd
}

func (c *cli) dataStoreListCommand() *cobra.Command {
	var (
		pageSize int32
		filter   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List data stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			var rows []resourceRow
			for ds, err := range client.ListDataStores(ctx, search.WithListPageSize(pageSize), search.WithListFilter(filter)) {
				if err != nil {
					return err
				}
				rows = append(rows, dataStoreRow(ds))
			}
			return c.printResources(rows)
		},
	}
	cmd.Flags().Int32Var(&pageSize, "page-size", 0, "data stores fetched per request")
	cmd.Flags().StringVar(&filter, "filter", "", "filter expression")
	return cmd
}

func (c *cli) dataStoreImportCommand() *cobra.Command {
	var (
		gcsURIs    []string
		files      []string
		site       string
		bigquery   string
		dataSchema string
		mode       string
		idField    string
	)
	cmd := &cobra.Command{
		Use:   "import <id>",
		Short: "Import content into a data store",
		Long: heredoc.Doc(`
			Import content into a data store.

			Exactly one source is used: a crawl target (--site), Cloud Storage objects (--gcs),
			local files staged in the configured staging bucket (--file), or a BigQuery table
			(--bigquery project.dataset.table).
		`),
		Example: heredoc.Doc(`
			vsearch datastores import docs --gcs "gs://bucket/docs/*" --mode full
			vsearch datastores import docs --file report.pdf --file notes.html
			vsearch datastores import site --site "www.example.com/docs/*"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var set int
			for _, ok := range []bool{len(gcsURIs) > 0, len(files) > 0, site != "", bigquery != ""} {
				if ok {
					set++
				}
			}
			if set != 1 {
				return errors.New("exactly one of --gcs, --file, --site and --bigquery is required")
			}

			var opts []search.ImportOption
			if mode != "" {
				m, err := search.ParseReconciliationMode(mode)
				if err != nil {
					return err
				}
				opts = append(opts, search.WithReconciliationMode(m))
			}
			if idField != "" {
				opts = append(opts, search.WithIDField(idField))
			}

			cfg, err := c.config()
			if err != nil {
				return err
			}

			var src search.DataSource
			switch {
			case site != "":
				src = &search.TargetSite{URIPattern: site}
			case len(gcsURIs) > 0:
				src = &search.GCSSource{InputURIs: gcsURIs, DataSchema: dataSchema}
			case bigquery != "":
				parts := strings.Split(bigquery, ".")
				if len(parts) != 3 {
					return fmt.Errorf("invalid BigQuery table %q: want project.dataset.table", bigquery)
				}
				src = &search.BigQuerySource{ProjectID: parts[0], DatasetID: parts[1], TableID: parts[2], DataSchema: dataSchema}
			default:
				up, err := c.newUploader(ctx, cfg)
				if err != nil {
					return err
				}
				defer up.Close()
				uris, err := up.UploadFiles(ctx, files...)
				if err != nil {
					return err
				}
				gcs := up.Source(uris...)
				if dataSchema != "" {
					gcs.DataSchema = dataSchema
				}
				src = gcs
			}

			client, err := c.newClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			ds, err := client.DataStore(args[0])
			if err != nil {
				return err
			}
			res, err := ds.ImportData(ctx, src, opts...)
			if err != nil {
				return err
			}

			if res.TargetSite != nil {
				return c.printMessage(res.TargetSite, "Registered target site %s\n", res.TargetSite.GetName())
			}
			return c.printMessage(res.Documents, "Imported %s into %s (%d error samples)\n", src.Field(), ds.ID(), len(res.Documents.GetErrorSamples()))
		},
	}
	cmd.Flags().StringSliceVar(&gcsURIs, "gcs", nil, "Cloud Storage URIs to import")
	cmd.Flags().StringArrayVar(&files, "file", nil, "local files to stage and import")
	cmd.Flags().StringVar(&site, "site", "", "URI pattern to crawl")
	cmd.Flags().StringVar(&bigquery, "bigquery", "", "BigQuery table to import, as project.dataset.table")
	cmd.Flags().StringVar(&dataSchema, "data-schema", "", "data schema: document, custom, content, csv")
	cmd.Flags().StringVar(&mode, "mode", "", "reconciliation mode: incremental or full")
	cmd.Flags().StringVar(&idField, "id-field", "", "field of structured records holding the document id")
	return cmd
}

func (c *cli) dataStorePurgeCommand() *cobra.Command {
	var (
		filter string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "purge <id>",
		Short: "Delete documents of a data store",
		Long: heredoc.Doc(`
			Delete the documents of a data store selected by --filter (all by default).

			Without --force the service only reports what would be deleted.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			ds, err := client.DataStore(args[0])
			if err != nil {
				return err
			}
			resp, err := ds.Purge(ctx, filter, force)
			if err != nil {
				return err
			}
			return c.printMessage(resp, "Purged %d documents from %s\n", resp.GetPurgeCount(), ds.ID())
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "*", "filter selecting the documents")
	cmd.Flags().BoolVar(&force, "force", false, "actually delete the documents")
	return cmd
}

func (c *cli) dataStoreDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete data stores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			for _, id := range args {
				ds, err := client.DataStore(id)
				if err != nil {
					return err
				}
				if err := ds.Delete(ctx); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Deleted %s\n", ds.Name())
			}
			return nil
		},
	}
}

func (c *cli) dataStoreDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Show the remote description of a data store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.client(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			ds, err := client.DataStore(args[0])
			if err != nil {
				return err
			}
			desc, err := ds.Describe(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, desc)
			return err
		},
	}
}

func dataStoreRow(ds *search.DataStore) resourceRow {
	return resourceRow{ID: ds.ID(), Name: ds.Name(), Location: ds.Location()}
}
