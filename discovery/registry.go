// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// CloudPlatformScope is the OAuth2 scope requested for detected default credentials.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Transport selects the wire protocol of the generated clients.
type Transport string

const (
	TransportGRPC Transport = "grpc"
	TransportREST Transport = "rest"
)

// Settings configures how the registry constructs clients.
type Settings struct {
	// Endpoint is the API host, e.g. "us-discoveryengine.googleapis.com".
	// A port (gRPC) or scheme (REST) is added when missing.
	Endpoint string

	// Transport defaults to gRPC.
	Transport Transport

	// UserAgent is appended to the client's user agent.
	UserAgent string

	// APIKey, TokenSource and Credentials are mutually exclusive, checked in that order.
	// When none is set, Application Default Credentials are detected once.
	APIKey      string
	TokenSource oauth2.TokenSource
	Credentials *auth.Credentials

	// ClientOptions are appended after the options derived from the fields above.
	ClientOptions []option.ClientOption
}

func (s Settings) rest() bool {
	return s.Transport == TransportREST
}

// endpoint returns the endpoint in the form the selected transport expects.
func (s Settings) endpoint() string {
	ep := s.Endpoint
	if ep == "" {
		return ""
	}
	if s.rest() {
		if !strings.Contains(ep, "://") {
			ep = "https://" + ep
		}
		return ep
	}
	ep = strings.TrimPrefix(ep, "https://")
	if !strings.Contains(ep, ":") {
		ep += ":443"
	}
	return ep
}

// lazy holds one value constructed on first successful use.
type lazy[T any] struct {
	mu  sync.Mutex
	v   T
	set bool
}

func (l *lazy[T]) get(newFn func() (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.set {
		return l.v, nil
	}
	v, err := newFn()
	if err != nil {
		var zero T
		return zero, err
	}
	l.v, l.set = v, true
	return v, nil
}

// constructors builds the clients of each capability.
type constructors struct {
	dataStores           func(ctx context.Context, rest bool, opts ...option.ClientOption) (DataStoreAPI, error)
	siteSearchEngines    func(ctx context.Context, rest bool, opts ...option.ClientOption) (SiteSearchEngineAPI, error)
	documents            func(ctx context.Context, rest bool, opts ...option.ClientOption) (DocumentAPI, error)
	engines              func(ctx context.Context, rest bool, opts ...option.ClientOption) (EngineAPI, error)
	search               func(ctx context.Context, rest bool, opts ...option.ClientOption) (SearchAPI, error)
	conversationalSearch func(ctx context.Context, rest bool, opts ...option.ClientOption) (ConversationalSearchAPI, error)
	detectCredentials    func() (*auth.Credentials, error)
}

func gapicConstructors() constructors {
	return constructors{
		dataStores: func(ctx context.Context, rest bool, opts ...option.ClientOption) (DataStoreAPI, error) {
			return newDataStoreClient(ctx, rest, opts...)
		},
		siteSearchEngines: func(ctx context.Context, rest bool, opts ...option.ClientOption) (SiteSearchEngineAPI, error) {
			return newSiteSearchEngineClient(ctx, rest, opts...)
		},
		documents: func(ctx context.Context, rest bool, opts ...option.ClientOption) (DocumentAPI, error) {
			return newDocumentClient(ctx, rest, opts...)
		},
		engines: func(ctx context.Context, rest bool, opts ...option.ClientOption) (EngineAPI, error) {
			return newEngineClient(ctx, rest, opts...)
		},
		search: func(ctx context.Context, rest bool, opts ...option.ClientOption) (SearchAPI, error) {
			return newSearchClient(ctx, rest, opts...)
		},
		conversationalSearch: func(ctx context.Context, rest bool, opts ...option.ClientOption) (ConversationalSearchAPI, error) {
			return newConversationalSearchClient(ctx, rest, opts...)
		},
		detectCredentials: func() (*auth.Credentials, error) {
			return credentials.DetectDefault(&credentials.DetectOptions{
				Scopes: []string{CloudPlatformScope},
			})
		},
	}
}

// Registry lazily constructs and caches one generated client per capability.
//
// A client, once constructed, is never replaced; changing Settings afterwards has no effect.
type Registry struct {
	settings Settings
	logger   *slog.Logger
	ctors    constructors

	options              lazy[[]option.ClientOption]
	dataStores           lazy[DataStoreAPI]
	siteSearchEngines    lazy[SiteSearchEngineAPI]
	documents            lazy[DocumentAPI]
	engines              lazy[EngineAPI]
	search               lazy[SearchAPI]
	conversationalSearch lazy[ConversationalSearchAPI]

	mu      sync.Mutex
	closers []io.Closer
}

var _ Provider = (*Registry)(nil)

// RegistryOption is a functional option for configuring the [Registry].
type RegistryOption func(*Registry)

// WithLogger sets the logger for the [Registry].
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns a [Registry] that constructs clients with settings.
//
// No client is constructed until first requested.
func NewRegistry(settings Settings, opts ...RegistryOption) *Registry {
	r := &Registry{
		settings: settings,
		logger:   slog.Default(),
		ctors:    gapicConstructors(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// clientOptions derives the client options once; credential detection happens at most once per registry.
func (r *Registry) clientOptions() ([]option.ClientOption, error) {
	return r.options.get(func() ([]option.ClientOption, error) {
		s := r.settings

		var opts []option.ClientOption
		if ep := s.endpoint(); ep != "" {
			opts = append(opts, option.WithEndpoint(ep))
		}
		if s.UserAgent != "" {
			opts = append(opts, option.WithUserAgent(s.UserAgent))
		}

		switch {
		case s.APIKey != "":
			opts = append(opts, option.WithAPIKey(s.APIKey))
		case s.TokenSource != nil:
			opts = append(opts, option.WithTokenSource(s.TokenSource))
		case s.Credentials != nil:
			opts = append(opts, option.WithAuthCredentials(s.Credentials))
		default:
			creds, err := r.ctors.detectCredentials()
			if err != nil {
				return nil, fmt.Errorf("failed to detect default credentials: %w", err)
			}
			opts = append(opts, option.WithAuthCredentials(creds))
		}

		return append(opts, s.ClientOptions...), nil
	})
}

// construct runs one constructor with the registry's options, and remembers the result for Close.
func construct[T any](ctx context.Context, r *Registry, capability Capability, newFn func(context.Context, bool, ...option.ClientOption) (T, error)) (T, error) {
	var zero T

	opts, err := r.clientOptions()
	if err != nil {
		return zero, err
	}

	// the client outlives the call that triggered its construction
	v, err := newFn(context.WithoutCancel(ctx), r.settings.rest(), opts...)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s client: %w", capability, err)
	}

	if c, ok := any(v).(io.Closer); ok {
		r.mu.Lock()
		r.closers = append(r.closers, c)
		r.mu.Unlock()
	}

	r.logger.DebugContext(ctx, "Discovery Engine client created",
		slog.String("capability", string(capability)),
		slog.String("endpoint", r.settings.endpoint()),
		slog.String("transport", string(r.settings.Transport)),
	)

	return v, nil
}

// DataStores implements [Provider].
func (r *Registry) DataStores(ctx context.Context) (DataStoreAPI, error) {
	return r.dataStores.get(func() (DataStoreAPI, error) {
		return construct(ctx, r, CapabilityDataStore, r.ctors.dataStores)
	})
}

// SiteSearchEngines implements [Provider].
func (r *Registry) SiteSearchEngines(ctx context.Context) (SiteSearchEngineAPI, error) {
	return r.siteSearchEngines.get(func() (SiteSearchEngineAPI, error) {
		return construct(ctx, r, CapabilitySiteSearchEngine, r.ctors.siteSearchEngines)
	})
}

// Documents implements [Provider].
func (r *Registry) Documents(ctx context.Context) (DocumentAPI, error) {
	return r.documents.get(func() (DocumentAPI, error) {
		return construct(ctx, r, CapabilityDocument, r.ctors.documents)
	})
}

// Engines implements [Provider].
func (r *Registry) Engines(ctx context.Context) (EngineAPI, error) {
	return r.engines.get(func() (EngineAPI, error) {
		return construct(ctx, r, CapabilityEngine, r.ctors.engines)
	})
}

// Search implements [Provider].
func (r *Registry) Search(ctx context.Context) (SearchAPI, error) {
	return r.search.get(func() (SearchAPI, error) {
		return construct(ctx, r, CapabilitySearch, r.ctors.search)
	})
}

// ConversationalSearch implements [Provider].
func (r *Registry) ConversationalSearch(ctx context.Context) (ConversationalSearchAPI, error) {
	return r.conversationalSearch.get(func() (ConversationalSearchAPI, error) {
		return construct(ctx, r, CapabilityConversationalSearch, r.ctors.conversationalSearch)
	})
}

// Close closes every client constructed so far.
func (r *Registry) Close() error {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close Discovery Engine clients: %w", err)
	}
	return nil
}
