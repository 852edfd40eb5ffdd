// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	search "github.com/go-a2a/vertexai-search"
	"github.com/go-a2a/vertexai-search/discovery"
)

// Environment variables read by the CLI.
const (
	EnvProject  = "VSEARCH_PROJECT"
	EnvLocation = "VSEARCH_LOCATION"
)

// FileConfig is the YAML configuration file of the CLI.
type FileConfig struct {
	Project       string            `yaml:"project"`
	Location      string            `yaml:"location"`
	Endpoint      string            `yaml:"endpoint,omitempty"`
	Transport     string            `yaml:"transport,omitempty"`
	StagingBucket string            `yaml:"staging_bucket,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/vsearch/config.yaml, or its platform equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vsearch", "config.yaml")
}

// LoadFileConfig reads the configuration file at path. A missing file yields an empty configuration.
func LoadFileConfig(path string) (*FileConfig, error) {
	var fc FileConfig
	if path == "" {
		return &fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fc, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	project    string
	location   string
	endpoint   string
	transport  string
	configPath string
	jsonOutput bool
	verbose    bool
}

// resolve merges flags, environment and file into a search configuration.
//
// Flags win over the environment, which wins over the file.
func (g *globalFlags) resolve(fc *FileConfig) (*search.Config, error) {
	project := first(g.project, os.Getenv(EnvProject), fc.Project)
	location := first(g.location, os.Getenv(EnvLocation), fc.Location)

	var opts []search.ConfigOption
	if ep := first(g.endpoint, fc.Endpoint); ep != "" {
		opts = append(opts, search.WithAPIEndpoint(ep))
	}
	switch t := first(g.transport, fc.Transport); t {
	case "":
	case string(discovery.TransportGRPC), string(discovery.TransportREST):
		opts = append(opts, search.WithTransport(discovery.Transport(t)))
	default:
		return nil, fmt.Errorf("unknown transport %q: want grpc or rest", t)
	}
	if fc.StagingBucket != "" {
		opts = append(opts, search.WithStagingBucket(fc.StagingBucket))
	}
	if len(fc.Metadata) > 0 {
		opts = append(opts, search.WithRequestMetadata(fc.Metadata))
	}

	return search.Init(project, location, opts...)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
