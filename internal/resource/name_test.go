// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		input  string
		want   Triple
		wantOK bool
	}{
		{
			name:   "data store with collection",
			kind:   KindDataStore,
			input:  "projects/proj-1/locations/global/collections/default_collection/dataStores/my-store",
			want:   Triple{Project: "proj-1", Location: "global", ID: "my-store"},
			wantOK: true,
		},
		{
			name:   "data store without collection",
			kind:   KindDataStore,
			input:  "projects/proj-1/locations/us/dataStores/store_2",
			want:   Triple{Project: "proj-1", Location: "us", ID: "store_2"},
			wantOK: true,
		},
		{
			name:   "data store with custom collection",
			kind:   KindDataStore,
			input:  "projects/p/locations/eu/collections/other_collection/dataStores/s",
			want:   Triple{Project: "p", Location: "eu", ID: "s"},
			wantOK: true,
		},
		{
			name:   "engine",
			kind:   KindEngine,
			input:  "projects/p/locations/global/collections/default_collection/engines/app-1",
			want:   Triple{Project: "p", Location: "global", ID: "app-1"},
			wantOK: true,
		},
		{
			name:  "engine name is not a data store",
			kind:  KindDataStore,
			input: "projects/p/locations/global/collections/default_collection/engines/app-1",
		},
		{
			name:  "bare id",
			kind:  KindDataStore,
			input: "my-store",
		},
		{
			name:  "uppercase project",
			kind:  KindEngine,
			input: "projects/Proj/locations/global/engines/app",
		},
		{
			name:  "trailing segment",
			kind:  KindDataStore,
			input: "projects/p/locations/global/dataStores/s/branches/default_branch",
		},
		{
			name:  "unknown kind",
			kind:  Kind("schemas"),
			input: "projects/p/locations/global/schemas/s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.kind, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("full name ignores defaults", func(t *testing.T) {
		got, err := Resolve(KindDataStore, "projects/a/locations/b/dataStores/c", "x", "y")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if diff := cmp.Diff(Triple{Project: "a", Location: "b", ID: "c"}, got); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bare id uses defaults", func(t *testing.T) {
		got, err := Resolve(KindDataStore, "my-store", "proj1", "global")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := "projects/proj1/locations/global/collections/default_collection/dataStores/my-store"
		if name := got.Name(KindDataStore); name != want {
			t.Errorf("Name() = %q, want %q", name, want)
		}
	})

	t.Run("bare id without defaults", func(t *testing.T) {
		_, err := Resolve(KindEngine, "app", "", "")
		if !errors.Is(err, ErrUninitialized) {
			t.Errorf("Resolve() error = %v, want %v", err, ErrUninitialized)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"projects/p-1/locations/us-central1/collections/default_collection/dataStores/a_b-c",
		"projects/p-1/locations/global/collections/custom/dataStores/x",
		"projects/p-1/locations/global/dataStores/x",
	}
	wants := []string{
		"projects/p-1/locations/us-central1/collections/default_collection/dataStores/a_b-c",
		"projects/p-1/locations/global/collections/default_collection/dataStores/x",
		"projects/p-1/locations/global/collections/default_collection/dataStores/x",
	}
	for i, in := range inputs {
		got, err := Resolve(KindDataStore, in, "", "")
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", in, err)
		}
		if name := got.Name(KindDataStore); name != wants[i] {
			t.Errorf("Name() = %q, want %q", name, wants[i])
		}
	}
}

func TestNameBuilders(t *testing.T) {
	ds := DataStoreName("p", "l", "d")
	eng := EngineName("p", "l", "e")

	tests := []struct {
		got, want string
	}{
		{CollectionName("p", "l"), "projects/p/locations/l/collections/default_collection"},
		{ds, "projects/p/locations/l/collections/default_collection/dataStores/d"},
		{BranchName(ds), "projects/p/locations/l/collections/default_collection/dataStores/d/branches/default_branch"},
		{SiteSearchEngineName(ds), "projects/p/locations/l/collections/default_collection/dataStores/d/siteSearchEngine"},
		{eng, "projects/p/locations/l/collections/default_collection/engines/e"},
		{ServingConfigName(eng), "projects/p/locations/l/collections/default_collection/engines/e/servingConfigs/default_search"},
		{FHIRStoreName("p", "l", "ds", "fs"), "projects/p/locations/l/datasets/ds/fhirStores/fs"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
