// Package identity implements the best-effort vm_name/vm_uuid lookup
// used to populate header defaults (spec §4.8): a short-timeout HTTP GET
// against a link-local metadata service, parsed with different key-depth
// rules for uuid (any depth) and name (top-level only), cached with a
// TTL so Agent.PostEvent doesn't refetch on every event, and falling back
// to fixed placeholder strings on any failure.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/att-ves/vesagent/errdefs"
	"github.com/att-ves/vesagent/log"
)

// FetchTimeout bounds the metadata service call (spec §5: "metadata
// fetch times out after 2 seconds").
const FetchTimeout = 2 * time.Second

const (
	placeholderUUID = "Dummy VM UUID - No Metadata available"
	placeholderName = "Dummy VM name - No Metadata available"

	cacheKey        = "identity"
	cacheTTL        = 5 * time.Minute
	cacheCleanupInt = 10 * time.Minute
)

// Identity is the resolved vm_name/vm_uuid pair.
type Identity struct {
	Name string
	UUID string
}

// Source retrieves and caches the host's identity from a metadata
// service (spec §4.8). The zero value is not usable; construct with New.
type Source struct {
	metadataURL string
	client      *http.Client
	cache       *cache.Cache
}

// New constructs a Source pointed at metadataURL (empty disables lookup
// entirely and every call returns the placeholder identity).
func New(metadataURL string) *Source {
	return &Source{
		metadataURL: metadataURL,
		client:      &http.Client{Timeout: FetchTimeout},
		cache:       cache.New(cacheTTL, cacheCleanupInt),
	}
}

// VMName returns the cached or freshly fetched vm_name, or the
// placeholder on any failure.
func (s *Source) VMName(ctx context.Context) string {
	return s.get(ctx).Name
}

// VMUUID returns the cached or freshly fetched vm_uuid, or the
// placeholder on any failure.
func (s *Source) VMUUID(ctx context.Context) string {
	return s.get(ctx).UUID
}

func (s *Source) get(ctx context.Context) Identity {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(Identity)
	}

	id, err := s.fetch(ctx)
	if err != nil {
		log.Logger.Warnw("identity metadata lookup failed, using placeholders", "error", err)
		id = Identity{Name: placeholderName, UUID: placeholderUUID}
	}
	s.cache.Set(cacheKey, id, cache.DefaultExpiration)
	return id
}

func (s *Source) fetch(ctx context.Context) (Identity, error) {
	if s.metadataURL == "" {
		return Identity{}, errdefs.ErrNoMetadata
	}

	cctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, s.metadataURL, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("building metadata request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errdefs.ErrNoMetadata, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: status %d", errdefs.ErrNoMetadata, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("reading metadata response: %w", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errdefs.ErrBadMetadata, err)
	}

	id := Identity{Name: placeholderName, UUID: placeholderUUID}
	if top, ok := doc.(map[string]any); ok {
		if name, ok := top["name"].(string); ok && name != "" {
			id.Name = name
		}
	}
	if uuid, ok := findUUIDAnyDepth(doc); ok {
		id.UUID = uuid
	}
	return id, nil
}

// findUUIDAnyDepth implements the "uuid may be found at any depth" rule
// (spec §4.8), walking nested objects/arrays depth-first and returning
// the first "uuid" key found.
func findUUIDAnyDepth(node any) (string, bool) {
	switch v := node.(type) {
	case map[string]any:
		if uuid, ok := v["uuid"].(string); ok && uuid != "" {
			return uuid, true
		}
		for _, child := range v {
			if uuid, ok := findUUIDAnyDepth(child); ok {
				return uuid, true
			}
		}
	case []any:
		for _, child := range v {
			if uuid, ok := findUUIDAnyDepth(child); ok {
				return uuid, true
			}
		}
	}
	return "", false
}
