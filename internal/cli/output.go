// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// resourceRow is one listed data store or app.
type resourceRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func writeJSON(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeProto(w io.Writer, m proto.Message) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func writeRows(w io.Writer, rows []resourceRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLOCATION\tNAME")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Location, r.Name)
	}
	return tw.Flush()
}

// printResources writes rows as a table, or as JSON with --json.
func (c *cli) printResources(rows []resourceRow) error {
	if c.flags.jsonOutput {
		return writeJSON(c.out, rows)
	}
	return writeRows(c.out, rows)
}

// printMessage writes a formatted summary, or m as JSON with --json.
func (c *cli) printMessage(m proto.Message, format string, args ...any) error {
	if c.flags.jsonOutput {
		return writeProto(c.out, m)
	}
	_, err := fmt.Fprintf(c.out, format, args...)
	return err
}
