// Package res loads the external resources a document refers to: local files,
// http(s) URLs and data URLs.
package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// MaxRemoteSize bounds the body read from a remote resource
const MaxRemoteSize = 32 << 20

// ErrNotFound is returned when a local resource exists neither at its path
// nor in any search path
var ErrNotFound = errors.New("resource not found")

// Kind classifies a resource by its content
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindFont
	KindStylesheet
	KindDocument
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFont:
		return "font"
	case KindStylesheet:
		return "stylesheet"
	case KindDocument:
		return "document"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Resource is the content of a loaded resource
type Resource struct {
	URL      string
	Kind     Kind
	Data     []byte
	MimeType string
}

// Reader returns a reader over the resource data
func (r *Resource) Reader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// Loader loads and caches resources. It is safe for concurrent use.
type Loader struct {
	// BaseURL is the file path or URL relative references resolve against
	BaseURL string

	cache       map[string]*Resource
	cacheLock   sync.RWMutex
	searchPaths []string
	client      *http.Client
	log         *zap.Logger
}

// NewLoader creates a loader resolving relative references against baseURL.
// A nil logger disables logging.
func NewLoader(baseURL string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		BaseURL: baseURL,
		cache:   make(map[string]*Resource),
		client:  cleanhttp.DefaultClient(),
		log:     log,
	}
}

// SetHTTPClient replaces the client used for remote resources
func (l *Loader) SetHTTPClient(c *http.Client) {
	l.client = c
}

// SetTimeout bounds each remote request, 0 means no limit
func (l *Loader) SetTimeout(d time.Duration) {
	l.client.Timeout = d
}

// AddSearchPath adds a directory to search for local resources by base name
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a file path, an http(s) URL or a data URL
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	l.cacheLock.RLock()
	res, ok := l.cache[ref]
	l.cacheLock.RUnlock()
	if ok {
		return res, nil
	}

	var err error
	switch {
	case strings.HasPrefix(ref, "data:"):
		res, err = parseDataURL(ref)
	default:
		var resolved string
		if resolved, err = l.resolve(ref); err != nil {
			break
		}
		if isRemote(resolved) {
			res, err = l.loadRemote(ctx, resolved)
		} else {
			res, err = l.loadLocal(resolved)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", abbreviate(ref), err)
	}

	l.cacheLock.Lock()
	l.cache[ref] = res
	l.cacheLock.Unlock()
	l.log.Debug("resource loaded", zap.String("url", abbreviate(res.URL)), zap.Stringer("kind", res.Kind), zap.Int("bytes", len(res.Data)))
	return res, nil
}

// LoadImage loads a resource and checks that it is an image
func (l *Loader) LoadImage(ctx context.Context, ref string) (*Resource, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if res.Kind != KindImage {
		return nil, fmt.Errorf("resource %s is a %s, not an image", abbreviate(ref), res.Kind)
	}
	return res, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// abbreviate shortens data URLs for logs and errors
func abbreviate(ref string) string {
	if strings.HasPrefix(ref, "data:") && len(ref) > 40 {
		return ref[:40] + "..."
	}
	return ref
}

// parseDataURL parses an RFC 2397 data URL such as
// data:image/png;base64,iVBOR... or data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL: missing ','")
	}

	mime := "text/plain"
	isBase64 := false
	for i, c := range strings.Split(meta, ";") {
		c = strings.TrimSpace(c)
		switch {
		case i == 0 && c != "":
			mime = c
		case strings.EqualFold(c, "base64"):
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.PathUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}

	return &Resource{URL: u, Data: data, MimeType: mime, Kind: kindOf(mime, "")}, nil
}

// resolve resolves a reference against the base URL
func (l *Loader) resolve(ref string) (string, error) {
	if isRemote(ref) || filepath.IsAbs(ref) {
		return ref, nil
	}
	if !isRemote(l.BaseURL) {
		base := l.BaseURL
		if fi, err := os.Stat(base); err != nil || !fi.IsDir() {
			base = filepath.Dir(base)
		}
		return filepath.Join(base, ref), nil
	}

	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference: %w", err)
	}
	return base.ResolveReference(rel).String(), nil
}

func (l *Loader) loadRemote(ctx context.Context, u string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxRemoteSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxRemoteSize {
		return nil, fmt.Errorf("response larger than %d bytes", MaxRemoteSize)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = sniff(u, data)
	}
	return &Resource{URL: u, Data: data, MimeType: mime, Kind: kindOf(mime, u)}, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	if err != nil {
		return nil, err
	}
	mime := sniff(path, data)
	return &Resource{URL: path, Data: data, MimeType: mime, Kind: kindOf(mime, path)}, nil
}

func (l *Loader) loadFromSearchPaths(path string) (*Resource, error) {
	name := filepath.Base(path)
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, name)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		mime := sniff(candidate, data)
		return &Resource{URL: candidate, Data: data, MimeType: mime, Kind: kindOf(mime, candidate)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// sniff determines the MIME type from the extension, falling back to the
// content
func sniff(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".css":
		return "text/css"
	case ".html", ".htm":
		return "text/html"
	}
	return http.DetectContentType(data)
}

func kindOf(mime, path string) Kind {
	mime = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage
	case strings.HasPrefix(mime, "font/"):
		return KindFont
	case mime == "text/css":
		return KindStylesheet
	case mime == "text/html":
		return KindDocument
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tiff", ".tif", ".bmp":
		return KindImage
	case ".ttf", ".otf":
		return KindFont
	case ".css":
		return KindStylesheet
	case ".html", ".htm":
		return KindDocument
	}
	return KindOther
}
