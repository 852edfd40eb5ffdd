// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"

	"cloud.google.com/go/auth"
	deepcopy "github.com/tiendc/go-deepcopy"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/go-a2a/vertexai-search/discovery"
)

const (
	// DefaultLocation is the location used when none is given.
	DefaultLocation = "global"

	// SearchAPIBasePath is the host of the global Discovery Engine endpoint.
	SearchAPIBasePath = "discoveryengine.googleapis.com"

	// EnvGoogleCloudProject and EnvCloudMLProjectID name the environment variables
	// consulted, in that order, when no project is given.
	EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"
	EnvCloudMLProjectID   = "CLOUD_ML_PROJECT_ID"
)

var locationRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Config holds the defaults every handle resolves names and reaches the API with.
//
// A Config is set once, before any client is built from it. [NewClient] keeps its own
// copy, so later changes to a Config do not affect existing clients.
type Config struct {
	// Project is the default Google Cloud project.
	Project string

	// Location is the default location, e.g. "global", "us" or "eu".
	Location string

	// APIEndpoint is the API host derived from Location unless overridden.
	APIEndpoint string

	// Transport selects gRPC (default) or REST.
	Transport discovery.Transport

	// APIKey, TokenSource and Credentials override Application Default Credentials.
	APIKey      string
	TokenSource oauth2.TokenSource
	Credentials *auth.Credentials

	// RequestMetadata is sent as headers with every request.
	RequestMetadata map[string]string

	// StagingBucket is the Cloud Storage bucket local files are uploaded to before import.
	StagingBucket string

	// ClientOptions are passed to every generated client after the derived options.
	ClientOptions []option.ClientOption
}

// ConfigOption is a functional option for configuring the [Config].
type ConfigOption func(*Config)

// WithAPIEndpoint overrides the endpoint derived from the location.
func WithAPIEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.APIEndpoint = endpoint
	}
}

// WithTransport selects the wire protocol of the generated clients.
func WithTransport(transport discovery.Transport) ConfigOption {
	return func(c *Config) {
		c.Transport = transport
	}
}

// WithAPIKey authenticates with an API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTokenSource authenticates with an OAuth2 token source.
func WithTokenSource(ts oauth2.TokenSource) ConfigOption {
	return func(c *Config) {
		c.TokenSource = ts
	}
}

// WithCredentials authenticates with explicit credentials.
func WithCredentials(creds *auth.Credentials) ConfigOption {
	return func(c *Config) {
		c.Credentials = creds
	}
}

// WithRequestMetadata adds headers sent with every request.
func WithRequestMetadata(md map[string]string) ConfigOption {
	return func(c *Config) {
		if c.RequestMetadata == nil {
			c.RequestMetadata = make(map[string]string, len(md))
		}
		maps.Copy(c.RequestMetadata, md)
	}
}

// WithStagingBucket sets the bucket local files are staged in.
func WithStagingBucket(bucket string) ConfigOption {
	return func(c *Config) {
		c.StagingBucket = bucket
	}
}

// WithClientOptions appends options passed to every generated client.
func WithClientOptions(opts ...option.ClientOption) ConfigOption {
	return func(c *Config) {
		c.ClientOptions = append(c.ClientOptions, opts...)
	}
}

// Init returns the configuration for project and location.
//
// An empty project falls back to the GOOGLE_CLOUD_PROJECT and CLOUD_ML_PROJECT_ID
// environment variables. An empty location means [DefaultLocation]; any other location
// must be a lowercase host label such as "us" or "eu".
func Init(project, location string, opts ...ConfigOption) (*Config, error) {
	if project == "" {
		project = projectFromEnv()
	}
	if project == "" {
		return nil, fmt.Errorf("no project given and neither %s nor %s is set: %w", EnvGoogleCloudProject, EnvCloudMLProjectID, ErrUninitialized)
	}
	if location == "" {
		location = DefaultLocation
	}
	if !locationRe.MatchString(location) {
		return nil, fmt.Errorf("invalid location %q", location)
	}

	cfg := &Config{
		Project:     project,
		Location:    location,
		APIEndpoint: Endpoint(location),
		Transport:   discovery.TransportGRPC,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg, nil
}

// Endpoint returns the API host serving location.
func Endpoint(location string) string {
	if location == "" || location == DefaultLocation {
		return SearchAPIBasePath
	}
	return location + "-" + SearchAPIBasePath
}

func projectFromEnv() string {
	if p := os.Getenv(EnvGoogleCloudProject); p != "" {
		return p
	}
	return os.Getenv(EnvCloudMLProjectID)
}

// Initialized reports whether c carries a default project and location.
func (c *Config) Initialized() bool {
	return c != nil && c.Project != "" && c.Location != ""
}

// clone returns a copy of c that shares no maps or slices with it.
// The token source, credentials and client options are shared.
func (c *Config) clone() (*Config, error) {
	out := *c
	out.RequestMetadata = nil
	if c.RequestMetadata != nil {
		if err := deepcopy.Copy(&out.RequestMetadata, c.RequestMetadata); err != nil {
			return nil, fmt.Errorf("failed to copy request metadata: %w", err)
		}
	}
	out.ClientOptions = slices.Clone(c.ClientOptions)
	return &out, nil
}

// settings converts c into the registry settings.
func (c *Config) settings() discovery.Settings {
	return discovery.Settings{
		Endpoint:      c.APIEndpoint,
		Transport:     c.Transport,
		UserAgent:     userAgent(),
		APIKey:        c.APIKey,
		TokenSource:   c.TokenSource,
		Credentials:   c.Credentials,
		ClientOptions: c.ClientOptions,
	}
}

// headers flattens the request metadata into alternating keys and values, sorted by key.
func (c *Config) headers() []string {
	if len(c.RequestMetadata) == 0 {
		return nil
	}
	kv := make([]string, 0, 2*len(c.RequestMetadata))
	for _, k := range slices.Sorted(maps.Keys(c.RequestMetadata)) {
		kv = append(kv, k, c.RequestMetadata[k])
	}
	return kv
}
