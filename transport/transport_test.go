package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpointFor(t *testing.T, srv *httptest.Server) EndpointConfig {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return EndpointConfig{FQDN: u.Hostname(), Port: port, Username: "alice", Password: "secret"}
}

func TestEventURLShape(t *testing.T) {
	cfg := EndpointConfig{FQDN: "collector.example.com", Port: 8443, Secure: true, Path: "vendor_event_listener", Topic: "faults"}
	assert.Equal(t, "https://collector.example.com:8443/vendor_event_listener/eventListener/v5/faults", cfg.EventURL())
	assert.Equal(t, "https://collector.example.com:8443/vendor_event_listener/eventListener/v5/faults/clientThrottlingState", cfg.ThrottlingStateURL())
}

func TestPostSendsBasicAuthAndBody(t *testing.T) {
	var gotUser, gotPass string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewCollector(endpointFor(t, srv), nil)
	require.NoError(t, err)
	defer c.Close()

	status, body, err := c.Post(context.Background(), EventURL, []byte(`{"hello":true}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", string(body))
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, `{"hello":true}`, string(gotBody))
}

func TestFailoverSwitchesToBackupAfterFailure(t *testing.T) {
	primarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primarySrv.Close()

	var backupHit bool
	backupSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupHit = true
		w.WriteHeader(http.StatusOK)
	}))
	defer backupSrv.Close()

	backupCfg := endpointFor(t, backupSrv)
	c, err := NewCollector(endpointFor(t, primarySrv), &backupCfg)
	require.NoError(t, err)
	defer c.Close()

	_, _, err = c.Post(context.Background(), EventURL, []byte(`{}`))
	assert.Error(t, err, "primary's 500 must be reported as a failure")

	_, _, err = c.Post(context.Background(), EventURL, []byte(`{}`))
	assert.NoError(t, err, "second post should have failed over to the backup")
	assert.True(t, backupHit)
}

func TestNoBackupConfiguredStaysOnPrimary(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewCollector(endpointFor(t, srv), nil)
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 2; i++ {
		_, _, err := c.Post(context.Background(), EventURL, []byte(`{}`))
		assert.Error(t, err)
	}
	assert.Equal(t, 2, hits)
}
