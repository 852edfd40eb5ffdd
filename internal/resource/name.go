// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// DefaultCollection is the collection every data store and engine is addressed under.
	DefaultCollection = "default_collection"

	// DefaultBranch is the branch documents are imported into and purged from.
	DefaultBranch = "default_branch"

	// DefaultServingConfig is the serving config search and answer queries are routed through.
	DefaultServingConfig = "default_search"
)

// ErrUninitialized is returned when a bare identifier is resolved without a default project and location.
var ErrUninitialized = errors.New("search config is not initialized: call Init with a project")

// Kind selects the leaf collection of a resource name.
type Kind string

const (
	KindDataStore Kind = "dataStores"
	KindEngine    Kind = "engines"
)

var (
	dataStoreRe = compile(KindDataStore)
	engineRe    = compile(KindEngine)
)

func compile(kind Kind) *regexp.Regexp {
	return regexp.MustCompile(`^projects/(?P<project>[a-z0-9-]+)/` +
		`locations/(?P<location>[a-z0-9][a-z0-9-]*)` +
		`(?:/collections/[a-z0-9][a-z0-9-_]*)?/` +
		string(kind) + `/(?P<id>[a-z0-9][a-z0-9-_]*)$`)
}

// Triple identifies a data store or engine.
type Triple struct {
	Project  string
	Location string
	ID       string
}

// Parse matches s against the fully-qualified grammar of kind.
func Parse(kind Kind, s string) (Triple, bool) {
	var re *regexp.Regexp
	switch kind {
	case KindDataStore:
		re = dataStoreRe
	case KindEngine:
		re = engineRe
	default:
		return Triple{}, false
	}

	m := re.FindStringSubmatch(s)
	if m == nil {
		return Triple{}, false
	}
	return Triple{
		Project:  m[re.SubexpIndex("project")],
		Location: m[re.SubexpIndex("location")],
		ID:       m[re.SubexpIndex("id")],
	}, true
}

// Resolve returns the triple named by s.
//
// A string that does not match the grammar of kind is treated as a bare identifier and
// takes its project and location from the given defaults.
func Resolve(kind Kind, s, project, location string) (Triple, error) {
	if t, ok := Parse(kind, s); ok {
		return t, nil
	}
	if project == "" || location == "" {
		return Triple{}, fmt.Errorf("resolve %s %q: %w", kind, s, ErrUninitialized)
	}
	return Triple{
		Project:  project,
		Location: location,
		ID:       s,
	}, nil
}

// CollectionName returns the default collection name of project and location.
func CollectionName(project, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/%s", project, location, DefaultCollection)
}

// DataStoreName returns the full resource name of a data store.
func DataStoreName(project, location, id string) string {
	return CollectionName(project, location) + "/dataStores/" + id
}

// BranchName returns the default branch of a data store.
func BranchName(dataStore string) string {
	return dataStore + "/branches/" + DefaultBranch
}

// SiteSearchEngineName returns the site search engine of a data store.
func SiteSearchEngineName(dataStore string) string {
	return dataStore + "/siteSearchEngine"
}

// EngineName returns the full resource name of an engine.
func EngineName(project, location, id string) string {
	return CollectionName(project, location) + "/engines/" + id
}

// ServingConfigName returns the default serving config of an engine.
func ServingConfigName(engine string) string {
	return engine + "/servingConfigs/" + DefaultServingConfig
}

// FHIRStoreName returns the full resource name of a Cloud Healthcare FHIR store.
func FHIRStoreName(project, location, dataset, fhirStore string) string {
	return fmt.Sprintf("projects/%s/locations/%s/datasets/%s/fhirStores/%s", project, location, dataset, fhirStore)
}

// Name returns the canonical name of t for kind.
func (t Triple) Name(kind Kind) string {
	switch kind {
	case KindEngine:
		return EngineName(t.Project, t.Location, t.ID)
	default:
		return DataStoreName(t.Project, t.Location, t.ID)
	}
}
