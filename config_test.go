// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/vertexai-search/discovery"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name         string
		project      string
		location     string
		env          map[string]string
		wantProject  string
		wantLocation string
		wantEndpoint string
		wantErr      error
	}{
		{
			name:         "global location keeps base endpoint",
			project:      "proj1",
			location:     "global",
			wantProject:  "proj1",
			wantLocation: "global",
			wantEndpoint: "discoveryengine.googleapis.com",
		},
		{
			name:         "empty location defaults to global",
			project:      "proj1",
			wantProject:  "proj1",
			wantLocation: "global",
			wantEndpoint: "discoveryengine.googleapis.com",
		},
		{
			name:         "regional location prefixes endpoint",
			project:      "proj1",
			location:     "us",
			wantProject:  "proj1",
			wantLocation: "us",
			wantEndpoint: "us-discoveryengine.googleapis.com",
		},
		{
			name:         "project from GOOGLE_CLOUD_PROJECT",
			env:          map[string]string{EnvGoogleCloudProject: "env-proj", EnvCloudMLProjectID: "ml-proj"},
			location:     "eu",
			wantProject:  "env-proj",
			wantLocation: "eu",
			wantEndpoint: "eu-discoveryengine.googleapis.com",
		},
		{
			name:         "project from CLOUD_ML_PROJECT_ID",
			env:          map[string]string{EnvCloudMLProjectID: "ml-proj"},
			wantProject:  "ml-proj",
			wantLocation: "global",
			wantEndpoint: "discoveryengine.googleapis.com",
		},
		{
			name:    "no project",
			wantErr: ErrUninitialized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvGoogleCloudProject, "")
			t.Setenv(EnvCloudMLProjectID, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Init(tt.project, tt.location)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Init() error = %v", err)
			}

			if cfg.Project != tt.wantProject {
				t.Errorf("Project = %q, want %q", cfg.Project, tt.wantProject)
			}
			if cfg.Location != tt.wantLocation {
				t.Errorf("Location = %q, want %q", cfg.Location, tt.wantLocation)
			}
			if cfg.APIEndpoint != tt.wantEndpoint {
				t.Errorf("APIEndpoint = %q, want %q", cfg.APIEndpoint, tt.wantEndpoint)
			}
			if cfg.Transport != discovery.TransportGRPC {
				t.Errorf("Transport = %q, want %q", cfg.Transport, discovery.TransportGRPC)
			}
		})
	}
}

func TestInitInvalidLocation(t *testing.T) {
	for _, loc := range []string{"US", "-us", "us/central1", "eu west"} {
		if _, err := Init("proj1", loc); err == nil {
			t.Errorf("Init(%q) error = nil, want error", loc)
		}
	}
}

func TestInitOptions(t *testing.T) {
	cfg, err := Init("proj1", "us",
		WithAPIEndpoint("localhost:8080"),
		WithAPIKey("key"),
		WithTransport(discovery.TransportREST),
		WithRequestMetadata(map[string]string{"x-b": "2"}),
		WithRequestMetadata(map[string]string{"x-a": "1"}),
		WithStagingBucket("staging"),
	)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	got := cfg.settings()
	want := discovery.Settings{
		Endpoint:  "localhost:8080",
		Transport: discovery.TransportREST,
		UserAgent: "vertexai-search-go/" + Version,
		APIKey:    "key",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"x-a", "1", "x-b", "2"}, cfg.headers()); diff != "" {
		t.Errorf("headers() mismatch (-want +got):\n%s", diff)
	}
	if cfg.StagingBucket != "staging" {
		t.Errorf("StagingBucket = %q, want %q", cfg.StagingBucket, "staging")
	}
}

func TestEndpoint(t *testing.T) {
	tests := map[string]string{
		"":       SearchAPIBasePath,
		"global": SearchAPIBasePath,
		"us":     "us-" + SearchAPIBasePath,
		"eu":     "eu-" + SearchAPIBasePath,
	}
	for location, want := range tests {
		if got := Endpoint(location); got != want {
			t.Errorf("Endpoint(%q) = %q, want %q", location, got, want)
		}
	}
}

func TestNewClientCopiesConfig(t *testing.T) {
	cfg, err := Init("proj1", "global", WithRequestMetadata(map[string]string{"x-a": "1"}))
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	c, err := NewClient(t.Context(), cfg, WithProvider(&fakeProvider{api: &fakeAPI{}}))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	cfg.Project = "other"
	cfg.RequestMetadata["x-a"] = "changed"

	got := c.Config()
	if got.Project != "proj1" {
		t.Errorf("Config().Project = %q, want %q", got.Project, "proj1")
	}
	if got.RequestMetadata["x-a"] != "1" {
		t.Errorf("Config().RequestMetadata[x-a] = %q, want %q", got.RequestMetadata["x-a"], "1")
	}
}

func TestNewClientNilLogger(t *testing.T) {
	cfg, err := Init("proj1", "global")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Without a provider the client builds its own registry with the same logger.
	if _, err := NewClient(t.Context(), cfg, WithLogger(nil)); err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	api := &fakeAPI{}
	c, err := NewClient(t.Context(), cfg, WithLogger(nil), WithProvider(&fakeProvider{api: api}))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	ds, err := c.DataStore("ds")
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.Delete(t.Context()); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}
