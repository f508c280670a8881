package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchUUIDAtAnyDepthNameOnlyTopLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"vnf-host-1","extensions":{"vendor":{"uuid":"nested-uuid-123"}}}`))
	}))
	defer srv.Close()

	s := New(srv.URL)
	ctx := context.Background()
	assert.Equal(t, "vnf-host-1", s.VMName(ctx))
	assert.Equal(t, "nested-uuid-123", s.VMUUID(ctx))
}

func TestNameIgnoredWhenNotTopLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"uuid":"top-uuid","nested":{"name":"should-not-be-picked"}}`))
	}))
	defer srv.Close()

	s := New(srv.URL)
	ctx := context.Background()
	assert.Equal(t, placeholderName, s.VMName(ctx))
	assert.Equal(t, "top-uuid", s.VMUUID(ctx))
}

func TestFallsBackToPlaceholdersOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := New(srv.URL)
	ctx := context.Background()
	assert.Equal(t, placeholderName, s.VMName(ctx))
	assert.Equal(t, placeholderUUID, s.VMUUID(ctx))
}

func TestEmptyURLAlwaysReturnsPlaceholders(t *testing.T) {
	s := New("")
	ctx := context.Background()
	assert.Equal(t, placeholderName, s.VMName(ctx))
	assert.Equal(t, placeholderUUID, s.VMUUID(ctx))
}

func TestResultIsCached(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"name":"vnf-host-1","uuid":"u-1"}`))
	}))
	defer srv.Close()

	s := New(srv.URL)
	ctx := context.Background()
	s.VMName(ctx)
	s.VMUUID(ctx)
	s.VMName(ctx)
	assert.Equal(t, 1, hits, "identity lookup must be cached across calls")
}
