// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	search "github.com/go-a2a/vertexai-search"
)

// DefaultPrefix is the object name prefix of staged files.
const DefaultPrefix = "vertexai-search-staging"

// ErrNoBucket reports an uploader created without a bucket.
var ErrNoBucket = errors.New("staging bucket is not set")

// Uploader writes local content to objects of one bucket.
type Uploader struct {
	client      *storage.Client
	bucket      string
	prefix      string
	dataSchema  string
	concurrency int
	clientOpts  []option.ClientOption
	logger      *slog.Logger

	newWriter func(ctx context.Context, object, contentType string) io.WriteCloser
	newID     func() string
}

// Option is a functional option for configuring the [Uploader].
type Option func(*Uploader)

// WithPrefix sets the object name prefix; the default is [DefaultPrefix].
func WithPrefix(prefix string) Option {
	return func(u *Uploader) {
		u.prefix = prefix
	}
}

// WithDataSchema sets the data schema of the sources returned by [Uploader.Source].
func WithDataSchema(schema string) Option {
	return func(u *Uploader) {
		u.dataSchema = schema
	}
}

// WithConcurrency sets how many files [Uploader.UploadFiles] writes at once.
func WithConcurrency(n int) Option {
	return func(u *Uploader) {
		u.concurrency = n
	}
}

// WithClientOptions sets the options of the storage client.
//
// When none are given, Application Default Credentials are used.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(u *Uploader) {
		u.clientOpts = append(u.clientOpts, opts...)
	}
}

// WithLogger sets the logger for the [Uploader].
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// NewUploader returns an [Uploader] writing to bucket.
func NewUploader(ctx context.Context, bucket string, opts ...Option) (*Uploader, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}

	u := &Uploader{
		bucket:      bucket,
		prefix:      DefaultPrefix,
		dataSchema:  search.DataSchemaContent,
		concurrency: 4,
		logger:      slog.Default(),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}

	clientOpts := u.clientOpts
	if len(clientOpts) == 0 {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{storage.ScopeReadWrite},
		})
		if err != nil {
			return nil, fmt.Errorf("get credentials for storage: %w", err)
		}
		clientOpts = []option.ClientOption{option.WithAuthCredentials(creds)}
	}

	client, err := storage.NewGRPCClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	u.client = client

	bkt := client.Bucket(bucket)
	u.newWriter = func(ctx context.Context, object, contentType string) io.WriteCloser {
		w := bkt.Object(object).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}

	return u, nil
}

// FromConfig returns an [Uploader] for the staging bucket and credentials of cfg.
func FromConfig(ctx context.Context, cfg *search.Config, opts ...Option) (*Uploader, error) {
	if cfg == nil || cfg.StagingBucket == "" {
		return nil, ErrNoBucket
	}

	var clientOpts []option.ClientOption
	switch {
	case cfg.TokenSource != nil:
		clientOpts = append(clientOpts, option.WithTokenSource(cfg.TokenSource))
	case cfg.Credentials != nil:
		clientOpts = append(clientOpts, option.WithAuthCredentials(cfg.Credentials))
	}
	if len(clientOpts) > 0 {
		opts = append([]Option{WithClientOptions(clientOpts...)}, opts...)
	}

	return NewUploader(ctx, cfg.StagingBucket, opts...)
}

// Close closes the storage client.
func (u *Uploader) Close() error {
	if u.client == nil {
		return nil
	}
	return u.client.Close()
}

// objectName returns a fresh object name for a file called name.
func (u *Uploader) objectName(name string) string {
	return path.Join(u.prefix, u.newID(), filepath.Base(name))
}

// URI returns the gs:// URI of object.
func (u *Uploader) URI(object string) string {
	return "gs://" + u.bucket + "/" + object
}

// Upload writes r to a new object named after name and returns its URI.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	object := u.objectName(name)
	contentType := mime.TypeByExtension(filepath.Ext(name))

	w := u.newWriter(ctx, object, contentType)
	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	uri := u.URI(object)
	u.logger.DebugContext(ctx, "Staged file",
		slog.String("name", name),
		slog.String("uri", uri),
		slog.Int64("bytes", n),
	)

	return uri, nil
}

// UploadFile uploads the local file and returns its URI.
func (u *Uploader) UploadFile(ctx context.Context, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	return u.Upload(ctx, file, f)
}

// UploadFiles uploads the local files at paths and returns their URIs in the same order.
//
// The first failure cancels the remaining uploads.
func (u *Uploader) UploadFiles(ctx context.Context, paths ...string) ([]string, error) {
	uris := make([]string, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	if u.concurrency > 0 {
		eg.SetLimit(u.concurrency)
	}
	for i, p := range paths {
		eg.Go(func() error {
			uri, err := u.UploadFile(egctx, p)
			if err != nil {
				return err
			}
			uris[i] = uri
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "Staged files",
		slog.String("bucket", u.bucket),
		slog.Int("count", len(uris)),
	)

	return uris, nil
}

// Source returns a data source importing the objects at uris.
func (u *Uploader) Source(uris ...string) *search.GCSSource {
	return &search.GCSSource{
		InputURIs:  uris,
		DataSchema: u.dataSchema,
	}
}
