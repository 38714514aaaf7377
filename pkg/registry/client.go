// Package registry implements the HTTP client for package registries.
//
// A registry serves package metadata at GET {base}/{name}/{version}
// with a JSON body whose "dependencies" field maps dependency names to
// version-range strings. Responses are cached through a [cache.Cache]
// backend and transient transport failures are retried with backoff.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/depviz/depviz/pkg/cache"
	"github.com/depviz/depviz/pkg/errors"
)

const httpTimeout = 10 * time.Second

// PackageInfo holds the registry metadata for one package version.
//
// Dependencies maps dependency name to a version-range string. Version
// ranges are carried verbatim; depviz never resolves them to concrete
// versions. A nil map is valid and means no dependencies.
type PackageInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// DependencyNames returns the dependency names sorted lexicographically,
// giving registry-built graphs a deterministic adjacency order.
func (p *PackageInfo) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Client provides access to a package registry.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a registry client for the given base URL.
//
// Parameters:
//   - baseURL: registry endpoint, e.g. "https://registry.example.com"
//   - backend: cache backend for response caching (use cache.NewNullCache() for none)
//   - ttl: how long responses are cached
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		ttl:     ttl,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage retrieves metadata for one package version.
//
// If refresh is true the cache is bypassed and a fresh request is made.
//
// Returns:
//   - PackageInfo on success (never nil if err is nil)
//   - a PACKAGE_NOT_FOUND error for HTTP 404
//   - a NETWORK_ERROR for transport failures and other non-2xx statuses
func (c *Client) FetchPackage(ctx context.Context, name, version string, refresh bool) (*PackageInfo, error) {
	key := cache.Key("registry", c.baseURL, name, version)

	if !refresh {
		if data, hit, _ := c.cache.Get(ctx, key); hit {
			var info PackageInfo
			if err := json.Unmarshal(data, &info); err == nil {
				return &info, nil
			}
			// Corrupt entry: fall through to a fresh fetch.
		}
	}

	var info PackageInfo
	err := cache.RetryWithBackoff(ctx, func() error {
		return c.fetch(ctx, name, version, &info)
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&info); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, name, version string, info *PackageInfo) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(name), url.PathEscape(version))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "build request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", endpoint))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, name, version); err != nil {
		return err
	}

	var body struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode response for %s %s", name, version)
	}

	*info = PackageInfo{
		Name:         name,
		Version:      version,
		Dependencies: body.Dependencies,
	}
	return nil
}

func checkStatus(code int, name, version string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodePackageNotFound, "package %s version %s not found in registry", name, version)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "registry returned status %d", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "registry returned status %d", code)
	}
}
