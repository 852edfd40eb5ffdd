// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command vsearch manages Vertex AI Search data stores and apps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-a2a/vertexai-search/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "vsearch:", err)
		stop()
		os.Exit(1)
	}
}
