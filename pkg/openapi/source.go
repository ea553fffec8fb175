package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrRemoteDisabled is returned when a URL source is read without an HTTP
// client configured.
var ErrRemoteDisabled = errors.New("openapi: remote sources disabled")

// SourceKind identifies where a document lives.
type SourceKind int

const (
	SourceKindFile SourceKind = iota
	SourceKindFS
	SourceKindURL
)

// Source names a document location.
type Source struct {
	Kind     SourceKind
	Location string
}

// ParseSource classifies raw as a URL when it carries an http(s) scheme and
// as a file path otherwise.
func ParseSource(raw string) (Source, error) {
	loc := strings.TrimSpace(raw)
	if loc == "" {
		return Source{}, errors.New("openapi: empty source")
	}
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		if _, err := url.ParseRequestURI(loc); err != nil {
			return Source{}, fmt.Errorf("openapi: invalid URL %q: %w", loc, err)
		}
		return Source{Kind: SourceKindURL, Location: loc}, nil
	}
	return Source{Kind: SourceKindFile, Location: filepath.Clean(loc)}, nil
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithFileSystem resolves SourceKindFS locations against files.
func WithFileSystem(files fs.FS) ReaderOption {
	return func(r *Reader) {
		r.files = files
	}
}

// WithHTTPClient enables URL sources.
func WithHTTPClient(client *http.Client) ReaderOption {
	return func(r *Reader) {
		r.client = client
	}
}

// WithRequestTimeout caps remote fetches. Zero leaves the client timeout.
func WithRequestTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) {
		r.timeout = d
	}
}

// Reader fetches raw document bytes. URL sources stay disabled until an HTTP
// client is supplied.
type Reader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

// NewReader constructs a Reader.
func NewReader(options ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Read returns the document bytes for src.
func (r *Reader) Read(ctx context.Context, src Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch src.Kind {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location, err)
		}
		return data, nil
	case SourceKindFS:
		if r.files == nil {
			return nil, fmt.Errorf("openapi: no file system configured for %q", src.Location)
		}
		data, err := fs.ReadFile(r.files, src.Location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location, err)
		}
		return data, nil
	case SourceKindURL:
		return r.fetch(ctx, src.Location)
	default:
		return nil, fmt.Errorf("openapi: unknown source kind %d", src.Kind)
	}
}

func (r *Reader) fetch(ctx context.Context, location string) ([]byte, error) {
	if r.client == nil {
		return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, location)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read response: %w", err)
	}
	return data, nil
}
